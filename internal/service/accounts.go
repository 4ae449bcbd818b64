package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/campuslink/campuslink/internal/models"
	"github.com/campuslink/campuslink/internal/session"
)

// Session bundles an authenticated account with its session token
type Session struct {
	Account *models.Account
	Token   string
	IsAdmin bool
}

// Register creates an account with only email and password set and opens
// a session for it. The email must not already be registered.
func (s *Service) Register(ctx context.Context, email, password string) (*Session, error) {
	existing, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, remoteErr(err)
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	salt, err := newPasswordSalt()
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		Email:        email,
		PasswordSalt: salt,
		PasswordHash: hashPassword(password, salt),
		CreatedAt:    s.now(),
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, remoteErr(err)
	}

	token, err := s.sessions.Open(ctx, account.ID)
	if err != nil {
		return nil, remoteErr(err)
	}

	s.logger.Info("Account registered", zap.Int64("account_id", account.ID))

	return &Session{Account: account, Token: token}, nil
}

// Login verifies credentials, opens a session, and reports whether the
// account holds the admin role so the caller can route accordingly.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, remoteErr(err)
	}
	if account == nil || !verifyPassword(password, account.PasswordSalt, account.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.sessions.Open(ctx, account.ID)
	if err != nil {
		return nil, remoteErr(err)
	}

	return &Session{Account: account, Token: token, IsAdmin: account.IsAdmin()}, nil
}

// Logout closes the session bound to the token
func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Close(ctx, token); err != nil {
		return remoteErr(err)
	}
	return nil
}

// CurrentAccount resolves a session token to its account
func (s *Service) CurrentAccount(ctx context.Context, token string) (*models.Account, error) {
	accountID, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return nil, ErrUnauthorized
		}
		return nil, remoteErr(err)
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, remoteErr(err)
	}
	if account == nil {
		return nil, ErrUnauthorized
	}
	return account, nil
}

// ChangePassword replaces the password after verifying the current one.
// The new password and its confirmation must match.
func (s *Service) ChangePassword(ctx context.Context, accountID int64, current, newPassword, confirm string) error {
	if newPassword != confirm {
		return ErrPasswordMismatch
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return remoteErr(err)
	}
	if account == nil || !verifyPassword(current, account.PasswordSalt, account.PasswordHash) {
		return ErrInvalidCredentials
	}

	return s.setPassword(ctx, account, newPassword)
}

// ResetPassword replaces the password of the account registered under the
// given email. No identity proof beyond the email is required, matching
// the product's self-service reset flow.
func (s *Service) ResetPassword(ctx context.Context, email, newPassword, confirm string) error {
	if newPassword != confirm {
		return ErrPasswordMismatch
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return remoteErr(err)
	}
	if account == nil {
		return ErrNotFound
	}

	return s.setPassword(ctx, account, newPassword)
}

func (s *Service) setPassword(ctx context.Context, account *models.Account, password string) error {
	salt, err := newPasswordSalt()
	if err != nil {
		return err
	}
	account.PasswordSalt = salt
	account.PasswordHash = hashPassword(password, salt)

	if err := s.accounts.Update(ctx, account); err != nil {
		return remoteErr(err)
	}
	return nil
}

// Profile is an account joined with its resolved profile picture
type Profile struct {
	Account *models.Account
	Picture *Picture
}

// GetProfile retrieves a non-admin account with its profile picture.
// Admin accounts are not exposed as profiles.
func (s *Service) GetProfile(ctx context.Context, accountID int64) (*Profile, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, remoteErr(err)
	}
	if account == nil || account.IsAdmin() {
		return nil, ErrNotFound
	}

	return &Profile{
		Account: account,
		Picture: s.ResolveProfilePicture(ctx, accountID),
	}, nil
}

// ProfileUpdate carries the editable profile fields. Empty strings clear
// the corresponding field.
type ProfileUpdate struct {
	DisplayName    string
	Role           string
	Email          string
	Summary        string
	Experience     string
	Certifications string
	Education      string
	Research       string
	Interests      string
}

// UpdateProfile overwrites the profile fields of an account
func (s *Service) UpdateProfile(ctx context.Context, accountID int64, upd ProfileUpdate) error {
	role := strings.ToLower(upd.Role)
	if role != "" && role != models.RoleStudent && role != models.RoleProfessor {
		return fmt.Errorf("invalid role %q", upd.Role)
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return remoteErr(err)
	}
	if account == nil {
		return ErrNotFound
	}

	if upd.Email != "" && upd.Email != account.Email {
		taken, err := s.accounts.GetByEmail(ctx, upd.Email)
		if err != nil {
			return remoteErr(err)
		}
		if taken != nil {
			return ErrDuplicateEmail
		}
		account.Email = upd.Email
	}

	account.DisplayName = nullString(upd.DisplayName)
	account.Role = nullString(role)
	account.Summary = nullString(upd.Summary)
	account.Experience = nullString(upd.Experience)
	account.Certifications = nullString(upd.Certifications)
	account.Education = nullString(upd.Education)
	account.Research = nullString(upd.Research)
	account.Interests = nullString(upd.Interests)

	if err := s.accounts.Update(ctx, account); err != nil {
		return remoteErr(err)
	}
	return nil
}

// AccountSummary is the projection returned by user search
type AccountSummary struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
}

// defaultSearchLimit caps search results the way the search box does
const defaultSearchLimit = 5

// SearchUsers finds non-admin accounts whose display name contains the
// query, case-insensitively. An empty query yields no results.
func (s *Service) SearchUsers(ctx context.Context, query string, limit int) ([]AccountSummary, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	accounts, err := s.accounts.Search(ctx, query, limit)
	if err != nil {
		s.logger.Error("User search failed", zap.String("query", query), zap.Error(err))
		return nil, nil
	}

	results := make([]AccountSummary, 0, len(accounts))
	for _, account := range accounts {
		results = append(results, AccountSummary{
			ID:          account.ID,
			DisplayName: account.Name(),
		})
	}
	return results, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
