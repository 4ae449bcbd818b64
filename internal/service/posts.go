package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/campuslink/campuslink/internal/models"
)

// CreatePost publishes a post for the author. Title and body are stored
// as given; the product applies no content validation.
func (s *Service) CreatePost(ctx context.Context, authorID int64, title, body string) (int64, error) {
	post := &models.Post{
		Title:     title,
		Body:      body,
		CreatedBy: authorID,
		CreatedAt: s.now(),
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return 0, remoteErr(err)
	}
	return post.ID, nil
}

// UpdatePost overwrites a post's title and body. Only the creator may
// edit; the check lives here, not in any UI.
func (s *Service) UpdatePost(ctx context.Context, callerID, postID int64, title, body string) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return remoteErr(err)
	}
	if post == nil {
		return ErrNotFound
	}
	if post.CreatedBy != callerID {
		return ErrUnauthorized
	}

	post.Title = title
	post.Body = body
	if err := s.posts.Update(ctx, post); err != nil {
		return remoteErr(err)
	}
	return nil
}

// DeletePost removes a post and any reports targeting it. Only the
// creator may delete through this path; moderation removal is separate.
func (s *Service) DeletePost(ctx context.Context, callerID, postID int64) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return remoteErr(err)
	}
	if post == nil {
		return ErrNotFound
	}
	if post.CreatedBy != callerID {
		return ErrUnauthorized
	}

	// Reports go first so the admin queue never dangles on a missing post
	if err := s.reports.DeleteByPostID(ctx, postID); err != nil {
		return remoteErr(err)
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		return remoteErr(err)
	}
	return nil
}

// ListPostsByAuthor returns an account's posts, newest first
func (s *Service) ListPostsByAuthor(ctx context.Context, authorID int64) ([]*models.Post, error) {
	posts, err := s.posts.GetByCreator(ctx, authorID)
	if err != nil {
		return nil, remoteErr(err)
	}
	return posts, nil
}

// FeedItem is a post joined with its creator and the creator's picture
type FeedItem struct {
	Post    *models.Post
	Author  *models.Account
	Picture *Picture
}

// GetFeed assembles the viewer's feed: every post by a followed account,
// ordered by creation time descending, joined with the creator's current
// account and picture. Items whose creator lookup fails are dropped; the
// count of dropped items is returned alongside the feed.
func (s *Service) GetFeed(ctx context.Context, viewerID int64) ([]FeedItem, int, error) {
	follows, err := s.follows.ListByFollower(ctx, viewerID)
	if err != nil {
		return nil, 0, remoteErr(err)
	}
	if len(follows) == 0 {
		return nil, 0, nil
	}

	followeeIDs := make([]int64, 0, len(follows))
	for _, follow := range follows {
		followeeIDs = append(followeeIDs, follow.FolloweeID)
	}

	posts, err := s.posts.GetByCreators(ctx, followeeIDs)
	if err != nil {
		return nil, 0, remoteErr(err)
	}

	items := make([]*FeedItem, len(posts))
	fanOut(len(posts), func(i int) {
		post := posts[i]
		author, err := s.accounts.GetByID(ctx, post.CreatedBy)
		if err != nil || author == nil {
			s.logger.Error("Dropping feed item with unresolvable author",
				zap.Int64("post_id", post.ID),
				zap.Int64("created_by", post.CreatedBy),
				zap.Error(err))
			return
		}
		items[i] = &FeedItem{
			Post:    post,
			Author:  author,
			Picture: s.ResolveProfilePicture(ctx, post.CreatedBy),
		}
	})

	feed := make([]FeedItem, 0, len(items))
	dropped := 0
	for _, item := range items {
		if item == nil {
			dropped++
			continue
		}
		feed = append(feed, *item)
	}
	return feed, dropped, nil
}
