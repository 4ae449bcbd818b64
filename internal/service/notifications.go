package service

import (
	"context"

	"github.com/campuslink/campuslink/internal/models"
)

// NotificationItem is a notification joined with the actor's picture
// when an actor is present
type NotificationItem struct {
	Notification *models.Notification
	ActorPicture *Picture
}

// ListUnread returns the account's unread notifications, newest first
func (s *Service) ListUnread(ctx context.Context, accountID int64) ([]NotificationItem, error) {
	notifications, err := s.notifications.ListUnread(ctx, accountID)
	if err != nil {
		return nil, remoteErr(err)
	}

	items := make([]NotificationItem, len(notifications))
	fanOut(len(notifications), func(i int) {
		items[i] = NotificationItem{Notification: notifications[i]}
		if notifications[i].ActorID.Valid {
			items[i].ActorPicture = s.ResolveProfilePicture(ctx, notifications[i].ActorID.Int64)
		}
	})
	return items, nil
}

// CountUnread returns the number of unread notifications for the account
func (s *Service) CountUnread(ctx context.Context, accountID int64) (int64, error) {
	count, err := s.notifications.CountUnread(ctx, accountID)
	if err != nil {
		return 0, remoteErr(err)
	}
	return count, nil
}

// MarkRead marks a notification read. Only the recipient may do so.
func (s *Service) MarkRead(ctx context.Context, accountID, notificationID int64) error {
	notification, err := s.notifications.GetByID(ctx, notificationID)
	if err != nil {
		return remoteErr(err)
	}
	if notification == nil {
		return ErrNotFound
	}
	if notification.RecipientID != accountID {
		return ErrUnauthorized
	}

	if err := s.notifications.MarkRead(ctx, notificationID); err != nil {
		return remoteErr(err)
	}
	return nil
}
