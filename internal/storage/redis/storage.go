package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/vocabquiz/internal/model"
	"github.com/mcoot/vocabquiz/internal/storage"
)

// Session hash fields
const (
	fieldUserID    = "user_id"
	fieldUsername  = "username"
	fieldCreatedAt = "created_at"
	fieldExpiresAt = "expires_at"
)

// SessionStore keeps sessions as Redis hashes. Entries expire through
// Redis TTLs, so no cleanup loop is needed.
type SessionStore struct {
	client *redis.Client
	cfg    Config
}

var _ storage.SessionStore = (*SessionStore)(nil)

// New connects to Redis and verifies the connection with a ping
func New(ctx context.Context, cfg Config) (*SessionStore, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = DefaultConfig().ConnectTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient wraps an existing client
func NewWithClient(client *redis.Client, cfg Config) *SessionStore {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultConfig().KeyPrefix
	}
	if cfg.DefaultSessionTTL <= 0 {
		cfg.DefaultSessionTTL = DefaultConfig().DefaultSessionTTL
	}
	return &SessionStore{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *SessionStore) Close() error {
	return s.client.Close()
}

// SaveSession writes the session and its TTL in one transaction
func (s *SessionStore) SaveSession(ctx context.Context, session *model.Session) error {
	// TTL is relative so it does not depend on the Redis server clock
	ttl := session.ExpiresAt.Sub(session.CreatedAt)
	if ttl <= 0 {
		ttl = s.cfg.DefaultSessionTTL
	}

	key := sessionKey(s.cfg.KeyPrefix, session.Token)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			fieldUserID, strconv.FormatInt(int64(session.UserID), 10),
			fieldUsername, session.Username,
			fieldCreatedAt, session.CreatedAt.UTC().Format(time.RFC3339Nano),
			fieldExpiresAt, session.ExpiresAt.UTC().Format(time.RFC3339Nano),
		)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis: save session: %w", err)
	}
	return nil
}

// GetSession loads a session by token
func (s *SessionStore) GetSession(ctx context.Context, token string) (*model.Session, error) {
	fields, err := s.client.HGetAll(ctx, sessionKey(s.cfg.KeyPrefix, token)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: get session: %w", err)
	}
	if len(fields) == 0 {
		return nil, model.ErrSessionNotFound
	}

	session, err := decodeSession(token, fields)
	if err != nil {
		return nil, fmt.Errorf("redis: decode session: %w", err)
	}
	return session, nil
}

// DeleteSession removes a session. Missing sessions are not an error.
func (s *SessionStore) DeleteSession(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKey(s.cfg.KeyPrefix, token)).Err(); err != nil {
		return fmt.Errorf("redis: delete session: %w", err)
	}
	return nil
}

func decodeSession(token string, fields map[string]string) (*model.Session, error) {
	userID, err := strconv.ParseInt(fields[fieldUserID], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fieldUserID, err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, fields[fieldCreatedAt])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fieldCreatedAt, err)
	}
	expiresAt, err := time.Parse(time.RFC3339Nano, fields[fieldExpiresAt])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fieldExpiresAt, err)
	}

	return &model.Session{
		Token:     token,
		UserID:    model.UserID(userID),
		Username:  fields[fieldUsername],
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
	}, nil
}
