// Package service implements the social graph and content operations:
// accounts and sessions, follows, posts and feed assembly, moderation,
// and notifications. All state lives in the remote stores behind the
// interfaces below; the service holds no cache.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/campuslink/campuslink/internal/models"
	"github.com/campuslink/campuslink/pkg/logging"
)

// AccountStore provides account row operations
type AccountStore interface {
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	Create(ctx context.Context, account *models.Account) error
	Update(ctx context.Context, account *models.Account) error
	Search(ctx context.Context, query string, limit int) ([]*models.Account, error)
}

// PostStore provides post row operations
type PostStore interface {
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	GetByCreator(ctx context.Context, creatorID int64) ([]*models.Post, error)
	GetByCreators(ctx context.Context, creatorIDs []int64) ([]*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id int64) error
}

// FollowStore provides follow row operations
type FollowStore interface {
	Get(ctx context.Context, followerID, followeeID int64) (*models.Follow, error)
	Create(ctx context.Context, follow *models.Follow) error
	Delete(ctx context.Context, followerID, followeeID int64) error
	ListByFollower(ctx context.Context, followerID int64) ([]*models.Follow, error)
}

// ReportStore provides report row operations
type ReportStore interface {
	GetByID(ctx context.Context, id int64) (*models.Report, error)
	GetByPostReporter(ctx context.Context, postID, reporterID int64) (*models.Report, error)
	List(ctx context.Context) ([]*models.Report, error)
	Create(ctx context.Context, report *models.Report) error
	Delete(ctx context.Context, id int64) error
	DeleteByPostID(ctx context.Context, postID int64) error
}

// NotificationStore provides notification row operations
type NotificationStore interface {
	GetByID(ctx context.Context, id int64) (*models.Notification, error)
	Create(ctx context.Context, notification *models.Notification) error
	ListUnread(ctx context.Context, recipientID int64) ([]*models.Notification, error)
	CountUnread(ctx context.Context, recipientID int64) (int64, error)
	MarkRead(ctx context.Context, id int64) error
}

// BlobStore provides key-addressed binary object storage. Download must
// return an error matching storage.ErrObjectNotFound for absent keys.
type BlobStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, error)
	Remove(ctx context.Context, keys []string) error
}

// SessionStore persists the active-session identity across restarts
type SessionStore interface {
	Open(ctx context.Context, accountID int64) (string, error)
	Resolve(ctx context.Context, token string) (int64, error)
	Close(ctx context.Context, token string) error
}

// Deps bundles the stores a Service operates over
type Deps struct {
	Accounts      AccountStore
	Posts         PostStore
	Follows       FollowStore
	Reports       ReportStore
	Notifications NotificationStore
	Blobs         BlobStore
	Sessions      SessionStore
}

// Service implements all social graph and content operations
type Service struct {
	accounts      AccountStore
	posts         PostStore
	follows       FollowStore
	reports       ReportStore
	notifications NotificationStore
	blobs         BlobStore
	sessions      SessionStore
	logger        *zap.Logger
	now           func() time.Time
}

// New creates a service over the given stores
func New(deps Deps) *Service {
	return &Service{
		accounts:      deps.Accounts,
		posts:         deps.Posts,
		follows:       deps.Follows,
		reports:       deps.Reports,
		notifications: deps.Notifications,
		blobs:         deps.Blobs,
		sessions:      deps.Sessions,
		logger:        logging.WithComponent("service"),
		now:           func() time.Time { return time.Now().UTC() },
	}
}
