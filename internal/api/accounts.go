package api

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campuslink/campuslink/internal/service"
	"github.com/campuslink/campuslink/pkg/logging"
)

// AccountAPI provides account and session API methods
type AccountAPI struct {
	svc    *service.Service
	logger *zap.Logger
}

// NewAccountAPI creates a new account API
func NewAccountAPI(svc *service.Service) *AccountAPI {
	return &AccountAPI{
		svc:    svc,
		logger: logging.WithComponent("api-accounts"),
	}
}

// Register handles campus_api.register
func (a *AccountAPI) Register(c *gin.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}

	sess, err := a.svc.Register(c.Request.Context(), p.Email, p.Password)
	if err != nil {
		return nil, err
	}
	return sessionView{
		Account: newAccountView(sess.Account),
		Token:   sess.Token,
		IsAdmin: sess.IsAdmin,
	}, nil
}

// Login handles campus_api.login
func (a *AccountAPI) Login(c *gin.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}

	sess, err := a.svc.Login(c.Request.Context(), p.Email, p.Password)
	if err != nil {
		return nil, err
	}
	return sessionView{
		Account: newAccountView(sess.Account),
		Token:   sess.Token,
		IsAdmin: sess.IsAdmin,
	}, nil
}

// Logout handles campus_api.logout
func (a *AccountAPI) Logout(c *gin.Context, _ json.RawMessage) (interface{}, error) {
	token := sessionToken(c)
	if token == "" {
		return nil, service.ErrUnauthorized
	}
	if err := a.svc.Logout(c.Request.Context(), token); err != nil {
		return nil, err
	}
	return gin.H{"ok": true}, nil
}

// CurrentAccount handles campus_api.current_account
func (a *AccountAPI) CurrentAccount(c *gin.Context, _ json.RawMessage) (interface{}, error) {
	account, err := currentAccount(c, a.svc)
	if err != nil {
		return nil, err
	}
	return newAccountView(account), nil
}

// ChangePassword handles campus_api.change_password
func (a *AccountAPI) ChangePassword(c *gin.Context, params json.RawMessage) (interface{}, error) {
	account, err := currentAccount(c, a.svc)
	if err != nil {
		return nil, err
	}

	var p struct {
		Current string `json:"current_password"`
		New     string `json:"new_password"`
		Confirm string `json:"confirm_password"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}

	if err := a.svc.ChangePassword(c.Request.Context(), account.ID, p.Current, p.New, p.Confirm); err != nil {
		return nil, err
	}
	return gin.H{"ok": true}, nil
}

// ResetPassword handles campus_api.reset_password. The flow is
// unauthenticated: it identifies the account by email alone.
func (a *AccountAPI) ResetPassword(c *gin.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Email   string `json:"email"`
		New     string `json:"new_password"`
		Confirm string `json:"confirm_password"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}

	if err := a.svc.ResetPassword(c.Request.Context(), p.Email, p.New, p.Confirm); err != nil {
		return nil, err
	}
	return gin.H{"ok": true}, nil
}

// GetProfile handles campus_api.get_profile
func (a *AccountAPI) GetProfile(c *gin.Context, params json.RawMessage) (interface{}, error) {
	if _, err := currentAccount(c, a.svc); err != nil {
		return nil, err
	}

	var p struct {
		AccountID int64 `json:"account_id"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}

	profile, err := a.svc.GetProfile(c.Request.Context(), p.AccountID)
	if err != nil {
		return nil, err
	}
	return profileView{
		Account: newAccountView(profile.Account),
		Picture: newPictureView(profile.Picture),
	}, nil
}

// UpdateProfile handles campus_api.update_profile
func (a *AccountAPI) UpdateProfile(c *gin.Context, params json.RawMessage) (interface{}, error) {
	account, err := currentAccount(c, a.svc)
	if err != nil {
		return nil, err
	}

	var p struct {
		DisplayName    string `json:"display_name"`
		Role           string `json:"role"`
		Email          string `json:"email"`
		Summary        string `json:"summary"`
		Experience     string `json:"experience"`
		Certifications string `json:"certifications"`
		Education      string `json:"education"`
		Research       string `json:"research"`
		Interests      string `json:"interests"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}

	upd := service.ProfileUpdate{
		DisplayName:    p.DisplayName,
		Role:           p.Role,
		Email:          p.Email,
		Summary:        p.Summary,
		Experience:     p.Experience,
		Certifications: p.Certifications,
		Education:      p.Education,
		Research:       p.Research,
		Interests:      p.Interests,
	}
	if err := a.svc.UpdateProfile(c.Request.Context(), account.ID, upd); err != nil {
		return nil, err
	}
	return gin.H{"ok": true}, nil
}

// SearchUsers handles campus_api.search_users
func (a *AccountAPI) SearchUsers(c *gin.Context, params json.RawMessage) (interface{}, error) {
	if _, err := currentAccount(c, a.svc); err != nil {
		return nil, err
	}

	var p struct {
		Query string `json:"query"`
		Limit int    `json:"limit"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}

	results, err := a.svc.SearchUsers(c.Request.Context(), p.Query, p.Limit)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// UploadProfilePicture handles campus_api.upload_profile_picture
func (a *AccountAPI) UploadProfilePicture(c *gin.Context, params json.RawMessage) (interface{}, error) {
	account, err := currentAccount(c, a.svc)
	if err != nil {
		return nil, err
	}

	var p struct {
		Extension string `json:"extension"`
		Data      []byte `json:"data"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}

	if err := a.svc.UploadProfilePicture(c.Request.Context(), account.ID, p.Extension, p.Data); err != nil {
		return nil, err
	}
	return gin.H{"ok": true}, nil
}
