package api

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campuslink/campuslink/internal/service"
	"github.com/campuslink/campuslink/pkg/logging"
)

// PostAPI provides content API methods
type PostAPI struct {
	svc    *service.Service
	logger *zap.Logger
}

// NewPostAPI creates a new post API
func NewPostAPI(svc *service.Service) *PostAPI {
	return &PostAPI{
		svc:    svc,
		logger: logging.WithComponent("api-posts"),
	}
}

// CreatePost handles campus_api.create_post
func (p *PostAPI) CreatePost(c *gin.Context, params json.RawMessage) (interface{}, error) {
	account, err := currentAccount(c, p.svc)
	if err != nil {
		return nil, err
	}

	var req struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := parseParams(params, &req); err != nil {
		return nil, err
	}

	postID, err := p.svc.CreatePost(c.Request.Context(), account.ID, req.Title, req.Body)
	if err != nil {
		return nil, err
	}
	return gin.H{"post_id": postID}, nil
}

// UpdatePost handles campus_api.update_post
func (p *PostAPI) UpdatePost(c *gin.Context, params json.RawMessage) (interface{}, error) {
	account, err := currentAccount(c, p.svc)
	if err != nil {
		return nil, err
	}

	var req struct {
		PostID int64  `json:"post_id"`
		Title  string `json:"title"`
		Body   string `json:"body"`
	}
	if err := parseParams(params, &req); err != nil {
		return nil, err
	}

	if err := p.svc.UpdatePost(c.Request.Context(), account.ID, req.PostID, req.Title, req.Body); err != nil {
		return nil, err
	}
	return gin.H{"ok": true}, nil
}

// DeletePost handles campus_api.delete_post
func (p *PostAPI) DeletePost(c *gin.Context, params json.RawMessage) (interface{}, error) {
	account, err := currentAccount(c, p.svc)
	if err != nil {
		return nil, err
	}

	var req struct {
		PostID int64 `json:"post_id"`
	}
	if err := parseParams(params, &req); err != nil {
		return nil, err
	}

	if err := p.svc.DeletePost(c.Request.Context(), account.ID, req.PostID); err != nil {
		return nil, err
	}
	return gin.H{"ok": true}, nil
}

// ListPostsByAuthor handles campus_api.list_posts_by_author
func (p *PostAPI) ListPostsByAuthor(c *gin.Context, params json.RawMessage) (interface{}, error) {
	if _, err := currentAccount(c, p.svc); err != nil {
		return nil, err
	}

	var req struct {
		AuthorID int64 `json:"author_id"`
	}
	if err := parseParams(params, &req); err != nil {
		return nil, err
	}

	posts, err := p.svc.ListPostsByAuthor(c.Request.Context(), req.AuthorID)
	if err != nil {
		return nil, err
	}

	result := make([]postView, 0, len(posts))
	for _, post := range posts {
		result = append(result, newPostView(post))
	}
	return result, nil
}

// GetFeed handles campus_api.get_feed
func (p *PostAPI) GetFeed(c *gin.Context, _ json.RawMessage) (interface{}, error) {
	account, err := currentAccount(c, p.svc)
	if err != nil {
		return nil, err
	}

	feed, dropped, err := p.svc.GetFeed(c.Request.Context(), account.ID)
	if err != nil {
		return nil, err
	}
	if dropped > 0 {
		p.logger.Warn("Feed assembled with dropped items",
			zap.Int64("account_id", account.ID),
			zap.Int("dropped", dropped))
	}

	items := make([]feedItemView, 0, len(feed))
	for _, item := range feed {
		items = append(items, feedItemView{
			Post:    newPostView(item.Post),
			Author:  newAccountView(item.Author),
			Picture: newPictureView(item.Picture),
		})
	}
	return gin.H{
		"items":   items,
		"dropped": dropped,
	}, nil
}
