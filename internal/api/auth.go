package api

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campuslink/campuslink/internal/models"
	"github.com/campuslink/campuslink/internal/service"
)

// sessionHeader carries the opaque session token issued at login
const sessionHeader = "X-Session-Token"

// sessionToken extracts the session token from the request, preferring
// the dedicated header over a bearer Authorization header
func sessionToken(c *gin.Context) string {
	if token := c.GetHeader(sessionHeader); token != "" {
		return token
	}
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// currentAccount resolves the request's session token to its account.
// A missing or stale token is an authorization failure.
func currentAccount(c *gin.Context, svc *service.Service) (*models.Account, error) {
	token := sessionToken(c)
	if token == "" {
		return nil, service.ErrUnauthorized
	}
	return svc.CurrentAccount(c.Request.Context(), token)
}

// parseParams decodes named JSON-RPC params into v
func parseParams(params json.RawMessage, v interface{}) error {
	if len(params) == 0 {
		return fmt.Errorf("%w: missing params object", errBadParams)
	}
	if err := json.Unmarshal(params, v); err != nil {
		return fmt.Errorf("%w: %v", errBadParams, err)
	}
	return nil
}
