package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/campuslink/campuslink/pkg/config"
	"github.com/campuslink/campuslink/pkg/logging"
)

// ErrNoSession is returned when a token does not resolve to an account
var ErrNoSession = errors.New("session not found")

// Store keeps the active-session identity in Redis, keyed by an opaque
// token. Sessions survive client restarts until the TTL lapses.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a new Redis session store
func New(cfg *config.RedisConfig) (*Store, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logging.GetLogger().Info("Redis connection established")

	return &Store{
		client: client,
		ttl:    cfg.SessionTTL,
	}, nil
}

// Open creates a session for the account and returns its token
func (s *Store) Open(ctx context.Context, accountID int64) (string, error) {
	token := uuid.NewString()
	key := sessionKey(token)
	if err := s.client.Set(ctx, key, strconv.FormatInt(accountID, 10), s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return token, nil
}

// Resolve returns the account id bound to the token, refreshing the TTL
func (s *Store) Resolve(ctx context.Context, token string) (int64, error) {
	key := sessionKey(token)
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrNoSession
		}
		return 0, fmt.Errorf("failed to resolve session: %w", err)
	}

	accountID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt session value %q: %w", val, err)
	}

	// Sliding expiry: active sessions stay alive
	s.client.Expire(ctx, key, s.ttl)

	return accountID, nil
}

// Close removes the session bound to the token
func (s *Store) Close(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}

// CloseClient closes the Redis connection
func (s *Store) CloseClient() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

// Health checks Redis health
func (s *Store) Health(ctx context.Context) error {
	if s == nil || s.client == nil {
		return errors.New("session store not initialized")
	}
	return s.client.Ping(ctx).Err()
}

func sessionKey(token string) string {
	return "campuslink:session:" + token
}
