package models

import (
	"database/sql"
	"time"
)

// Notification represents a notification delivered to an account
type Notification struct {
	ID          int64          `gorm:"primaryKey;autoIncrement;column:id"`
	RecipientID int64          `gorm:"not null;index:notifications_recipient_ix;column:recipient_id"`
	ActorID     sql.NullInt64  `gorm:"column:actor_id"`
	Message     string         `gorm:"type:text;not null;column:message"`
	Read        bool           `gorm:"not null;default:false;column:read"`
	CreatedAt   time.Time      `gorm:"not null;column:created_at"`

	// Relationships
	Recipient *Account `gorm:"foreignKey:RecipientID;references:ID"`
	Actor     *Account `gorm:"foreignKey:ActorID;references:ID"`
}

// TableName specifies the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}

// PolicyViolationMessage is the fixed message attached to moderation removals
const PolicyViolationMessage = "Your post has been removed due to violation of platform policies."

// FollowMessage renders the notification text for a follow action
func FollowMessage(actorName string) string {
	return actorName + " has started following you."
}

// UnfollowMessage renders the notification text for an unfollow action
func UnfollowMessage(actorName string) string {
	return actorName + " has unfollowed you."
}
