package api

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campuslink/campuslink/internal/service"
	"github.com/campuslink/campuslink/pkg/logging"
)

// ModerationAPI provides report and moderation API methods
type ModerationAPI struct {
	svc    *service.Service
	logger *zap.Logger
}

// NewModerationAPI creates a new moderation API
func NewModerationAPI(svc *service.Service) *ModerationAPI {
	return &ModerationAPI{
		svc:    svc,
		logger: logging.WithComponent("api-moderation"),
	}
}

// SubmitReport handles campus_api.submit_report
func (m *ModerationAPI) SubmitReport(c *gin.Context, params json.RawMessage) (interface{}, error) {
	account, err := currentAccount(c, m.svc)
	if err != nil {
		return nil, err
	}

	var p struct {
		PostID int64 `json:"post_id"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}

	reportID, err := m.svc.SubmitReport(c.Request.Context(), p.PostID, account.ID)
	if err != nil {
		return nil, err
	}
	return gin.H{"report_id": reportID}, nil
}

// ListReportedPosts handles campus_api.list_reported_posts
func (m *ModerationAPI) ListReportedPosts(c *gin.Context, _ json.RawMessage) (interface{}, error) {
	account, err := currentAccount(c, m.svc)
	if err != nil {
		return nil, err
	}

	queue, dropped, err := m.svc.ListReportedPosts(c.Request.Context(), account.ID)
	if err != nil {
		return nil, err
	}
	if dropped > 0 {
		m.logger.Warn("Moderation queue assembled with dropped entries",
			zap.Int("dropped", dropped))
	}

	entries := make([]reportedPostView, 0, len(queue))
	for _, entry := range queue {
		entries = append(entries, reportedPostView{
			ReportID:   entry.Report.ID,
			ReporterID: entry.Report.ReporterID,
			ReportedAt: entry.Report.CreatedAt,
			Post:       newPostView(entry.Post),
			Creator:    newAccountView(entry.Creator),
			Picture:    newPictureView(entry.Picture),
		})
	}
	return gin.H{
		"reports": entries,
		"dropped": dropped,
	}, nil
}

// MarkSafe handles campus_api.mark_safe
func (m *ModerationAPI) MarkSafe(c *gin.Context, params json.RawMessage) (interface{}, error) {
	account, err := currentAccount(c, m.svc)
	if err != nil {
		return nil, err
	}

	var p struct {
		ReportID int64 `json:"report_id"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}

	if err := m.svc.MarkSafe(c.Request.Context(), account.ID, p.ReportID); err != nil {
		return nil, err
	}
	return gin.H{"ok": true}, nil
}

// RemoveReportedPost handles campus_api.remove_reported_post
func (m *ModerationAPI) RemoveReportedPost(c *gin.Context, params json.RawMessage) (interface{}, error) {
	account, err := currentAccount(c, m.svc)
	if err != nil {
		return nil, err
	}

	var p struct {
		PostID   int64 `json:"post_id"`
		ReportID int64 `json:"report_id"`
		OwnerID  int64 `json:"owner_id"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}

	if err := m.svc.RemoveReportedPost(c.Request.Context(), account.ID, p.PostID, p.ReportID, p.OwnerID); err != nil {
		return nil, err
	}
	return gin.H{"ok": true}, nil
}
