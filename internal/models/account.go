package models

import (
	"database/sql"
	"time"
)

// Account represents a user or admin identity record
type Account struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex:accounts_email_ux;column:email"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`

	// Credentials. Only a salted argon2id digest is ever stored.
	PasswordSalt []byte `gorm:"type:bytea;not null;column:password_salt"`
	PasswordHash []byte `gorm:"type:bytea;not null;column:password_hash"`

	// Profile fields, populated via profile edit after registration
	DisplayName    sql.NullString `gorm:"type:varchar(100);column:display_name"`
	Role           sql.NullString `gorm:"type:varchar(16);column:role"`
	Summary        sql.NullString `gorm:"type:text;column:summary"`
	Experience     sql.NullString `gorm:"type:text;column:experience"`
	Certifications sql.NullString `gorm:"type:text;column:certifications"`
	Education      sql.NullString `gorm:"type:text;column:education"`
	Research       sql.NullString `gorm:"type:text;column:research"`
	Interests      sql.NullString `gorm:"type:text;column:interests"`
}

// TableName specifies the table name for Account
func (Account) TableName() string {
	return "accounts"
}

// Role constants
const (
	RoleAdmin     = "admin"
	RoleStudent   = "student"
	RoleProfessor = "professor"
)

// IsAdmin reports whether the account holds the admin role
func (a *Account) IsAdmin() bool {
	return a.Role.Valid && a.Role.String == RoleAdmin
}

// Name returns the display name, falling back to the email when unset
func (a *Account) Name() string {
	if a.DisplayName.Valid && a.DisplayName.String != "" {
		return a.DisplayName.String
	}
	return a.Email
}
