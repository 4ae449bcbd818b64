package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/campuslink/campuslink/internal/models"
)

func mustRegister(t *testing.T, svc *Service, email, password string) *Session {
	t.Helper()
	sess, err := svc.Register(context.Background(), email, password)
	if err != nil {
		t.Fatalf("Register(%q) error = %v", email, err)
	}
	return sess
}

func addAccount(t *testing.T, stores *testStores, displayName, role string) *models.Account {
	t.Helper()
	account := &models.Account{
		Email:        displayName + "@example.edu",
		PasswordSalt: []byte("salt"),
		PasswordHash: []byte("hash"),
		DisplayName:  sql.NullString{String: displayName, Valid: true},
	}
	if role != "" {
		account.Role = sql.NullString{String: role, Valid: true}
	}
	if err := stores.accounts.Create(context.Background(), account); err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}
	return account
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	sess := mustRegister(t, svc, "a@x.com", "p1")
	if sess.Account.ID == 0 {
		t.Fatal("Register should assign an account id")
	}
	if sess.Token == "" {
		t.Fatal("Register should open a session")
	}

	login, err := svc.Login(ctx, "a@x.com", "p1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if login.IsAdmin {
		t.Error("fresh account should not be admin")
	}
	if login.Account.Role.Valid {
		t.Errorf("fresh account role should be unset, got %q", login.Account.Role.String)
	}

	if _, err := svc.Login(ctx, "a@x.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login with wrong password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, "missing@x.com", "p1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login with unknown email error = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	mustRegister(t, svc, "a@x.com", "p1")

	if _, err := svc.Register(ctx, "a@x.com", "p2"); !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("Register duplicate error = %v, want ErrDuplicateEmail", err)
	}

	// Matching is case-sensitive exact: a differently-cased email is new
	if _, err := svc.Register(ctx, "A@x.com", "p2"); err != nil {
		t.Errorf("Register with differently-cased email error = %v", err)
	}
}

func TestPasswordsNeverStoredPlain(t *testing.T) {
	svc, stores := newTestService()

	sess := mustRegister(t, svc, "a@x.com", "hunter2")

	account := stores.accounts.rows[sess.Account.ID]
	if string(account.PasswordHash) == "hunter2" {
		t.Fatal("password stored in plain text")
	}
	if len(account.PasswordSalt) == 0 {
		t.Fatal("password salt missing")
	}
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	sess := mustRegister(t, svc, "a@x.com", "old")
	id := sess.Account.ID

	// Mismatched confirmation leaves the stored password unchanged
	if err := svc.ChangePassword(ctx, id, "old", "new", "other"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("ChangePassword mismatch error = %v, want ErrPasswordMismatch", err)
	}
	if _, err := svc.Login(ctx, "a@x.com", "old"); err != nil {
		t.Fatalf("password should be unchanged after mismatch, login error = %v", err)
	}

	// Wrong current password
	if err := svc.ChangePassword(ctx, id, "wrong", "new", "new"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("ChangePassword wrong current error = %v, want ErrInvalidCredentials", err)
	}

	// Success path
	if err := svc.ChangePassword(ctx, id, "old", "new", "new"); err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}
	if _, err := svc.Login(ctx, "a@x.com", "old"); !errors.Is(err, ErrInvalidCredentials) {
		t.Error("old password should no longer work")
	}
	if _, err := svc.Login(ctx, "a@x.com", "new"); err != nil {
		t.Errorf("new password should work, login error = %v", err)
	}
}

func TestResetPassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	mustRegister(t, svc, "a@x.com", "old")

	if err := svc.ResetPassword(ctx, "a@x.com", "new", "other"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("ResetPassword mismatch error = %v, want ErrPasswordMismatch", err)
	}
	if err := svc.ResetPassword(ctx, "missing@x.com", "new", "new"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ResetPassword unknown email error = %v, want ErrNotFound", err)
	}

	if err := svc.ResetPassword(ctx, "a@x.com", "new", "new"); err != nil {
		t.Fatalf("ResetPassword() error = %v", err)
	}
	if _, err := svc.Login(ctx, "a@x.com", "new"); err != nil {
		t.Errorf("reset password should work, login error = %v", err)
	}
}

func TestSessions(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	sess := mustRegister(t, svc, "a@x.com", "p1")

	account, err := svc.CurrentAccount(ctx, sess.Token)
	if err != nil {
		t.Fatalf("CurrentAccount() error = %v", err)
	}
	if account.ID != sess.Account.ID {
		t.Errorf("CurrentAccount id = %d, want %d", account.ID, sess.Account.ID)
	}

	if _, err := svc.CurrentAccount(ctx, "bogus"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("CurrentAccount with bad token error = %v, want ErrUnauthorized", err)
	}

	if err := svc.Logout(ctx, sess.Token); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, err := svc.CurrentAccount(ctx, sess.Token); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("CurrentAccount after logout error = %v, want ErrUnauthorized", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	sess := mustRegister(t, svc, "a@x.com", "p1")
	other := mustRegister(t, svc, "b@x.com", "p1")
	id := sess.Account.ID

	upd := ProfileUpdate{
		DisplayName: "Ada Lovelace",
		Role:        "Professor",
		Summary:     "Analytical engines",
		Education:   "University of London",
	}
	if err := svc.UpdateProfile(ctx, id, upd); err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}

	profile, err := svc.GetProfile(ctx, id)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if got := profile.Account.DisplayName.String; got != "Ada Lovelace" {
		t.Errorf("display name = %q, want %q", got, "Ada Lovelace")
	}
	// Role is normalized to lower case
	if got := profile.Account.Role.String; got != models.RoleProfessor {
		t.Errorf("role = %q, want %q", got, models.RoleProfessor)
	}

	// Unknown roles are rejected
	if err := svc.UpdateProfile(ctx, id, ProfileUpdate{Role: "dean"}); err == nil {
		t.Error("UpdateProfile should reject unknown role")
	}

	// Changing email to a taken one fails
	if err := svc.UpdateProfile(ctx, id, ProfileUpdate{Email: other.Account.Email}); !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("UpdateProfile taken email error = %v, want ErrDuplicateEmail", err)
	}
}

func TestGetProfileExcludesAdmins(t *testing.T) {
	svc, stores := newTestService()

	admin := addAccount(t, stores, "root", models.RoleAdmin)

	if _, err := svc.GetProfile(context.Background(), admin.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetProfile(admin) error = %v, want ErrNotFound", err)
	}
}

func TestSearchUsers(t *testing.T) {
	svc, stores := newTestService()
	ctx := context.Background()

	addAccount(t, stores, "Alice Chen", models.RoleStudent)
	addAccount(t, stores, "Alicia Keys", models.RoleProfessor)
	addAccount(t, stores, "Bob Hope", models.RoleStudent)
	addAccount(t, stores, "alice admin", models.RoleAdmin)

	tests := []struct {
		name  string
		query string
		limit int
		want  int
	}{
		{"substring match", "lic", 0, 2},
		{"case-insensitive", "ALICE", 0, 1},
		{"admins excluded", "admin", 0, 0},
		{"empty query yields nothing", "   ", 0, 0},
		{"limit respected", "o", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := svc.SearchUsers(ctx, tt.query, tt.limit)
			if err != nil {
				t.Fatalf("SearchUsers() error = %v", err)
			}
			if len(results) != tt.want {
				t.Errorf("SearchUsers(%q) returned %d results, want %d", tt.query, len(results), tt.want)
			}
		})
	}
}
