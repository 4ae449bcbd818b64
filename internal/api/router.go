package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campuslink/campuslink/internal/service"
	"github.com/campuslink/campuslink/pkg/logging"
)

// Router sets up API routes
type Router struct {
	handler *JSONRPCHandler
	svc     *service.Service
	logger  *zap.Logger
}

// NewRouter creates a new API router
func NewRouter(svc *service.Service) *Router {
	router := &Router{
		handler: NewJSONRPCHandler(),
		svc:     svc,
		logger:  logging.WithComponent("api-router"),
	}

	// Register all API methods
	router.registerMethods()

	return router
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	// JSON-RPC endpoint
	engine.POST("/", r.handler.Handle)
}

// registerMethods registers all API methods
func (r *Router) registerMethods() {
	accounts := NewAccountAPI(r.svc)
	social := NewSocialAPI(r.svc)
	posts := NewPostAPI(r.svc)
	moderation := NewModerationAPI(r.svc)
	notifications := NewNotificationAPI(r.svc)

	// Accounts and sessions
	r.handler.RegisterMethod("campus_api.register", accounts.Register)
	r.handler.RegisterMethod("campus_api.login", accounts.Login)
	r.handler.RegisterMethod("campus_api.logout", accounts.Logout)
	r.handler.RegisterMethod("campus_api.current_account", accounts.CurrentAccount)
	r.handler.RegisterMethod("campus_api.change_password", accounts.ChangePassword)
	r.handler.RegisterMethod("campus_api.reset_password", accounts.ResetPassword)
	r.handler.RegisterMethod("campus_api.get_profile", accounts.GetProfile)
	r.handler.RegisterMethod("campus_api.update_profile", accounts.UpdateProfile)
	r.handler.RegisterMethod("campus_api.search_users", accounts.SearchUsers)
	r.handler.RegisterMethod("campus_api.upload_profile_picture", accounts.UploadProfilePicture)

	// Follow graph
	r.handler.RegisterMethod("campus_api.toggle_follow", social.ToggleFollow)
	r.handler.RegisterMethod("campus_api.is_following", social.IsFollowing)
	r.handler.RegisterMethod("campus_api.list_following", social.ListFollowing)

	// Content
	r.handler.RegisterMethod("campus_api.create_post", posts.CreatePost)
	r.handler.RegisterMethod("campus_api.update_post", posts.UpdatePost)
	r.handler.RegisterMethod("campus_api.delete_post", posts.DeletePost)
	r.handler.RegisterMethod("campus_api.list_posts_by_author", posts.ListPostsByAuthor)
	r.handler.RegisterMethod("campus_api.get_feed", posts.GetFeed)

	// Moderation
	r.handler.RegisterMethod("campus_api.submit_report", moderation.SubmitReport)
	r.handler.RegisterMethod("campus_api.list_reported_posts", moderation.ListReportedPosts)
	r.handler.RegisterMethod("campus_api.mark_safe", moderation.MarkSafe)
	r.handler.RegisterMethod("campus_api.remove_reported_post", moderation.RemoveReportedPost)

	// Notifications
	r.handler.RegisterMethod("campus_api.unread_notifications", notifications.UnreadNotifications)
	r.handler.RegisterMethod("campus_api.unread_count", notifications.UnreadCount)
	r.handler.RegisterMethod("campus_api.mark_notification_read", notifications.MarkNotificationRead)
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "OK",
		"service": "campuslink-api",
	})
}
