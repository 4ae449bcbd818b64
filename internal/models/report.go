package models

import (
	"time"
)

// Report represents a moderation flag linking a reporter to a post.
// One outstanding report per (post, reporter) pair; repeat submissions
// resolve to the existing row.
type Report struct {
	ID         int64     `gorm:"primaryKey;autoIncrement;column:id"`
	PostID     int64     `gorm:"not null;uniqueIndex:reports_post_reporter_ux;column:post_id"`
	ReporterID int64     `gorm:"not null;uniqueIndex:reports_post_reporter_ux;column:reporter_id"`
	CreatedAt  time.Time `gorm:"not null;column:created_at"`

	// Relationships
	Post     *Post    `gorm:"foreignKey:PostID;references:ID"`
	Reporter *Account `gorm:"foreignKey:ReporterID;references:ID"`
}

// TableName specifies the table name for Report
func (Report) TableName() string {
	return "reports"
}
