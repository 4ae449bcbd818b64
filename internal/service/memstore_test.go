package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/campuslink/campuslink/internal/models"
	"github.com/campuslink/campuslink/internal/session"
	"github.com/campuslink/campuslink/internal/storage"
)

// In-memory store fakes backing the service tests. Each fake serializes
// access with a mutex since list joins fan out across goroutines, and
// carries a forced error hook for failure-path tests.

type memAccounts struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*models.Account
	err    error
}

func newMemAccounts() *memAccounts {
	return &memAccounts{rows: make(map[int64]*models.Account)}
}

func (m *memAccounts) GetByID(_ context.Context, id int64) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.rows[id], nil
}

func (m *memAccounts) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, account := range m.rows {
		if account.Email == email {
			return account, nil
		}
	}
	return nil, nil
}

func (m *memAccounts) Create(_ context.Context, account *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.nextID++
	account.ID = m.nextID
	m.rows[account.ID] = account
	return nil
}

func (m *memAccounts) Update(_ context.Context, account *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.rows[account.ID] = account
	return nil
}

func (m *memAccounts) Search(_ context.Context, query string, limit int) ([]*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var results []*models.Account
	for _, account := range m.rows {
		if account.IsAdmin() {
			continue
		}
		name := ""
		if account.DisplayName.Valid {
			name = account.DisplayName.String
		}
		if strings.Contains(strings.ToLower(name), strings.ToLower(query)) {
			results = append(results, account)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

type memPosts struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*models.Post
	err    error
}

func newMemPosts() *memPosts {
	return &memPosts{rows: make(map[int64]*models.Post)}
}

func (m *memPosts) GetByID(_ context.Context, id int64) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.rows[id], nil
}

func (m *memPosts) GetByCreator(_ context.Context, creatorID int64) ([]*models.Post, error) {
	return m.byCreators([]int64{creatorID})
}

func (m *memPosts) GetByCreators(_ context.Context, creatorIDs []int64) ([]*models.Post, error) {
	return m.byCreators(creatorIDs)
}

func (m *memPosts) byCreators(creatorIDs []int64) ([]*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	in := make(map[int64]bool, len(creatorIDs))
	for _, id := range creatorIDs {
		in[id] = true
	}
	var posts []*models.Post
	for _, post := range m.rows {
		if in[post.CreatedBy] {
			posts = append(posts, post)
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	return posts, nil
}

func (m *memPosts) Create(_ context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.nextID++
	post.ID = m.nextID
	m.rows[post.ID] = post
	return nil
}

func (m *memPosts) Update(_ context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.rows[post.ID] = post
	return nil
}

func (m *memPosts) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.rows, id)
	return nil
}

type memFollows struct {
	mu   sync.Mutex
	rows []*models.Follow
	err  error
}

func (m *memFollows) Get(_ context.Context, followerID, followeeID int64) (*models.Follow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, follow := range m.rows {
		if follow.FollowerID == followerID && follow.FolloweeID == followeeID {
			return follow, nil
		}
	}
	return nil, nil
}

func (m *memFollows) Create(_ context.Context, follow *models.Follow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.rows = append(m.rows, follow)
	return nil
}

func (m *memFollows) Delete(_ context.Context, followerID, followeeID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	kept := m.rows[:0]
	for _, follow := range m.rows {
		if follow.FollowerID == followerID && follow.FolloweeID == followeeID {
			continue
		}
		kept = append(kept, follow)
	}
	m.rows = kept
	return nil
}

func (m *memFollows) ListByFollower(_ context.Context, followerID int64) ([]*models.Follow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var follows []*models.Follow
	for _, follow := range m.rows {
		if follow.FollowerID == followerID {
			follows = append(follows, follow)
		}
	}
	sort.SliceStable(follows, func(i, j int) bool {
		if !follows[i].CreatedAt.Equal(follows[j].CreatedAt) {
			return follows[i].CreatedAt.Before(follows[j].CreatedAt)
		}
		return follows[i].FolloweeID < follows[j].FolloweeID
	})
	return follows, nil
}

type memReports struct {
	mu     sync.Mutex
	nextID int64
	rows   []*models.Report
	err    error
}

func (m *memReports) GetByID(_ context.Context, id int64) (*models.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, report := range m.rows {
		if report.ID == id {
			return report, nil
		}
	}
	return nil, nil
}

func (m *memReports) GetByPostReporter(_ context.Context, postID, reporterID int64) (*models.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, report := range m.rows {
		if report.PostID == postID && report.ReporterID == reporterID {
			return report, nil
		}
	}
	return nil, nil
}

func (m *memReports) List(_ context.Context) ([]*models.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]*models.Report(nil), m.rows...), nil
}

func (m *memReports) Create(_ context.Context, report *models.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.nextID++
	report.ID = m.nextID
	m.rows = append(m.rows, report)
	return nil
}

func (m *memReports) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	kept := m.rows[:0]
	for _, report := range m.rows {
		if report.ID != id {
			kept = append(kept, report)
		}
	}
	m.rows = kept
	return nil
}

func (m *memReports) DeleteByPostID(_ context.Context, postID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	kept := m.rows[:0]
	for _, report := range m.rows {
		if report.PostID != postID {
			kept = append(kept, report)
		}
	}
	m.rows = kept
	return nil
}

type memNotifications struct {
	mu     sync.Mutex
	nextID int64
	rows   []*models.Notification
	err    error
}

func (m *memNotifications) GetByID(_ context.Context, id int64) (*models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, notification := range m.rows {
		if notification.ID == id {
			return notification, nil
		}
	}
	return nil, nil
}

func (m *memNotifications) Create(_ context.Context, notification *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.nextID++
	notification.ID = m.nextID
	m.rows = append(m.rows, notification)
	return nil
}

func (m *memNotifications) ListUnread(_ context.Context, recipientID int64) ([]*models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var unread []*models.Notification
	for _, notification := range m.rows {
		if notification.RecipientID == recipientID && !notification.Read {
			unread = append(unread, notification)
		}
	}
	sort.SliceStable(unread, func(i, j int) bool {
		return unread[i].CreatedAt.After(unread[j].CreatedAt)
	})
	return unread, nil
}

func (m *memNotifications) CountUnread(_ context.Context, recipientID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	var count int64
	for _, notification := range m.rows {
		if notification.RecipientID == recipientID && !notification.Read {
			count++
		}
	}
	return count, nil
}

func (m *memNotifications) MarkRead(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, notification := range m.rows {
		if notification.ID == id {
			notification.Read = true
		}
	}
	return nil
}

type memBlobs struct {
	mu      sync.Mutex
	objects map[string][]byte
	err     error
}

func newMemBlobs() *memBlobs {
	return &memBlobs{objects: make(map[string][]byte)}
}

func (m *memBlobs) Upload(_ context.Context, key string, data []byte, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.objects[key] = data
	return nil
}

func (m *memBlobs) Download(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	data, ok := m.objects[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return data, nil
}

func (m *memBlobs) Remove(_ context.Context, keys []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, key := range keys {
		delete(m.objects, key)
	}
	return nil
}

type memSessions struct {
	mu     sync.Mutex
	nextID int64
	tokens map[string]int64
	err    error
}

func newMemSessions() *memSessions {
	return &memSessions{tokens: make(map[string]int64)}
}

func (m *memSessions) Open(_ context.Context, accountID int64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.nextID++
	token := fmt.Sprintf("token-%d", m.nextID)
	m.tokens[token] = accountID
	return token, nil
}

func (m *memSessions) Resolve(_ context.Context, token string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	accountID, ok := m.tokens[token]
	if !ok {
		return 0, session.ErrNoSession
	}
	return accountID, nil
}

func (m *memSessions) Close(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.tokens, token)
	return nil
}

// testStores bundles the fakes for direct manipulation in tests
type testStores struct {
	accounts      *memAccounts
	posts         *memPosts
	follows       *memFollows
	reports       *memReports
	notifications *memNotifications
	blobs         *memBlobs
	sessions      *memSessions
}

// newTestService builds a Service over fresh fakes with a ticking clock
// so creation timestamps are strictly increasing
func newTestService() (*Service, *testStores) {
	stores := &testStores{
		accounts:      newMemAccounts(),
		posts:         newMemPosts(),
		follows:       &memFollows{},
		reports:       &memReports{},
		notifications: &memNotifications{},
		blobs:         newMemBlobs(),
		sessions:      newMemSessions(),
	}

	svc := New(Deps{
		Accounts:      stores.accounts,
		Posts:         stores.posts,
		Follows:       stores.follows,
		Reports:       stores.reports,
		Notifications: stores.notifications,
		Blobs:         stores.blobs,
		Sessions:      stores.sessions,
	})

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var tick int64
	var mu sync.Mutex
	svc.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	return svc, stores
}
