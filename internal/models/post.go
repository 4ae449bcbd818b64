package models

import (
	"time"
)

// Post represents a post published by an account
type Post struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Title     string    `gorm:"type:text;not null;column:title"`
	Body      string    `gorm:"type:text;not null;column:body"`
	CreatedBy int64     `gorm:"not null;index:posts_created_by_ix;column:created_by"`
	CreatedAt time.Time `gorm:"not null;index:posts_created_at_ix;column:created_at"`

	// Relationships
	Creator *Account `gorm:"foreignKey:CreatedBy;references:ID"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "posts"
}
