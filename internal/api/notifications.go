package api

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campuslink/campuslink/internal/service"
	"github.com/campuslink/campuslink/pkg/logging"
)

// NotificationAPI provides notification API methods
type NotificationAPI struct {
	svc    *service.Service
	logger *zap.Logger
}

// NewNotificationAPI creates a new notification API
func NewNotificationAPI(svc *service.Service) *NotificationAPI {
	return &NotificationAPI{
		svc:    svc,
		logger: logging.WithComponent("api-notifications"),
	}
}

// UnreadNotifications handles campus_api.unread_notifications
func (n *NotificationAPI) UnreadNotifications(c *gin.Context, _ json.RawMessage) (interface{}, error) {
	account, err := currentAccount(c, n.svc)
	if err != nil {
		return nil, err
	}

	items, err := n.svc.ListUnread(c.Request.Context(), account.ID)
	if err != nil {
		return nil, err
	}

	result := make([]notificationView, 0, len(items))
	for _, item := range items {
		result = append(result, newNotificationView(item))
	}
	return result, nil
}

// UnreadCount handles campus_api.unread_count
func (n *NotificationAPI) UnreadCount(c *gin.Context, _ json.RawMessage) (interface{}, error) {
	account, err := currentAccount(c, n.svc)
	if err != nil {
		return nil, err
	}

	count, err := n.svc.CountUnread(c.Request.Context(), account.ID)
	if err != nil {
		return nil, err
	}
	return gin.H{"count": count}, nil
}

// MarkNotificationRead handles campus_api.mark_notification_read
func (n *NotificationAPI) MarkNotificationRead(c *gin.Context, params json.RawMessage) (interface{}, error) {
	account, err := currentAccount(c, n.svc)
	if err != nil {
		return nil, err
	}

	var p struct {
		NotificationID int64 `json:"notification_id"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}

	if err := n.svc.MarkRead(c.Request.Context(), account.ID, p.NotificationID); err != nil {
		return nil, err
	}
	return gin.H{"ok": true}, nil
}
