package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/campuslink/campuslink/internal/models"
)

// requireAdmin resolves the caller and denies access unless it holds the
// admin role. Failing the gate reveals nothing about moderation data.
func (s *Service) requireAdmin(ctx context.Context, callerID int64) error {
	account, err := s.accounts.GetByID(ctx, callerID)
	if err != nil {
		return remoteErr(err)
	}
	if account == nil || !account.IsAdmin() {
		return ErrUnauthorized
	}
	return nil
}

// SubmitReport flags a post for moderation. Repeat reports by the same
// reporter for the same post resolve to the existing report.
func (s *Service) SubmitReport(ctx context.Context, postID, reporterID int64) (int64, error) {
	existing, err := s.reports.GetByPostReporter(ctx, postID, reporterID)
	if err != nil {
		return 0, remoteErr(err)
	}
	if existing != nil {
		return existing.ID, nil
	}

	report := &models.Report{
		PostID:     postID,
		ReporterID: reporterID,
		CreatedAt:  s.now(),
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return 0, remoteErr(err)
	}
	return report.ID, nil
}

// ReportedPost is a report joined with its post, the post's creator, and
// the creator's picture
type ReportedPost struct {
	Report  *models.Report
	Post    *models.Post
	Creator *models.Account
	Picture *Picture
}

// ListReportedPosts returns the admin moderation queue. Reports whose
// post or creator lookup fails are dropped and logged; the count of
// dropped entries is returned so the admin can tell a clean queue from a
// degraded one.
func (s *Service) ListReportedPosts(ctx context.Context, adminID int64) ([]ReportedPost, int, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, 0, err
	}

	reports, err := s.reports.List(ctx)
	if err != nil {
		return nil, 0, remoteErr(err)
	}

	items := make([]*ReportedPost, len(reports))
	fanOut(len(reports), func(i int) {
		report := reports[i]
		post, err := s.posts.GetByID(ctx, report.PostID)
		if err != nil || post == nil {
			s.logger.Error("Dropping report with unresolvable post",
				zap.Int64("report_id", report.ID),
				zap.Int64("post_id", report.PostID),
				zap.Error(err))
			return
		}
		creator, err := s.accounts.GetByID(ctx, post.CreatedBy)
		if err != nil || creator == nil {
			s.logger.Error("Dropping report with unresolvable creator",
				zap.Int64("report_id", report.ID),
				zap.Int64("created_by", post.CreatedBy),
				zap.Error(err))
			return
		}
		items[i] = &ReportedPost{
			Report:  report,
			Post:    post,
			Creator: creator,
			Picture: s.ResolveProfilePicture(ctx, post.CreatedBy),
		}
	})

	queue := make([]ReportedPost, 0, len(items))
	dropped := 0
	for _, item := range items {
		if item == nil {
			dropped++
			continue
		}
		queue = append(queue, *item)
	}
	return queue, dropped, nil
}

// MarkSafe resolves a report without touching the post
func (s *Service) MarkSafe(ctx context.Context, adminID, reportID int64) error {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return err
	}
	if err := s.reports.Delete(ctx, reportID); err != nil {
		return remoteErr(err)
	}
	return nil
}

// RemoveReportedPost resolves a report by removing the post: delete the
// report, delete the post, then notify the owner with the fixed policy
// message. The three writes commit independently in that order; a
// failure aborts the remaining steps and never rolls back completed
// ones.
func (s *Service) RemoveReportedPost(ctx context.Context, adminID, postID, reportID, ownerID int64) error {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return err
	}

	if err := s.reports.Delete(ctx, reportID); err != nil {
		return remoteErr(err)
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		return remoteErr(err)
	}

	notification := &models.Notification{
		RecipientID: ownerID,
		Message:     models.PolicyViolationMessage,
		CreatedAt:   s.now(),
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		return remoteErr(err)
	}

	s.logger.Info("Reported post removed",
		zap.Int64("post_id", postID),
		zap.Int64("report_id", reportID),
		zap.Int64("owner_id", ownerID))

	return nil
}
