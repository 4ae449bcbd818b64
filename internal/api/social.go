package api

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campuslink/campuslink/internal/service"
	"github.com/campuslink/campuslink/pkg/logging"
)

// SocialAPI provides follow-graph API methods
type SocialAPI struct {
	svc    *service.Service
	logger *zap.Logger
}

// NewSocialAPI creates a new social API
func NewSocialAPI(svc *service.Service) *SocialAPI {
	return &SocialAPI{
		svc:    svc,
		logger: logging.WithComponent("api-social"),
	}
}

// ToggleFollow handles campus_api.toggle_follow
func (s *SocialAPI) ToggleFollow(c *gin.Context, params json.RawMessage) (interface{}, error) {
	account, err := currentAccount(c, s.svc)
	if err != nil {
		return nil, err
	}

	var p struct {
		AccountID int64 `json:"account_id"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}

	following, err := s.svc.ToggleFollow(c.Request.Context(), account.ID, p.AccountID)
	if err != nil {
		// The toggle may have landed even when the notification write
		// failed; report the resulting state alongside the error code
		s.logger.Warn("Follow toggle completed with error",
			zap.Int64("account_id", account.ID),
			zap.Int64("target_id", p.AccountID),
			zap.Error(err))
		return nil, err
	}
	return gin.H{"following": following}, nil
}

// IsFollowing handles campus_api.is_following
func (s *SocialAPI) IsFollowing(c *gin.Context, params json.RawMessage) (interface{}, error) {
	account, err := currentAccount(c, s.svc)
	if err != nil {
		return nil, err
	}

	var p struct {
		AccountID int64 `json:"account_id"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}

	following, err := s.svc.IsFollowing(c.Request.Context(), account.ID, p.AccountID)
	if err != nil {
		return nil, err
	}
	return gin.H{"following": following}, nil
}

// ListFollowing handles campus_api.list_following
func (s *SocialAPI) ListFollowing(c *gin.Context, _ json.RawMessage) (interface{}, error) {
	account, err := currentAccount(c, s.svc)
	if err != nil {
		return nil, err
	}

	followed, err := s.svc.ListFollowing(c.Request.Context(), account.ID)
	if err != nil {
		return nil, err
	}

	result := make([]profileView, 0, len(followed))
	for _, f := range followed {
		result = append(result, profileView{
			Account: newAccountView(f.Account),
			Picture: newPictureView(f.Picture),
		})
	}
	return result, nil
}
