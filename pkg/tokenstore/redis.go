package tokenstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the token in a single Redis key. It exists for
// deployments where several processes present the same session, e.g.
// kiosk terminals behind one account.
type RedisStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithRedisKey overrides the slot key. Defaults to "learnkit:session-token".
func WithRedisKey(key string) RedisOption {
	return func(s *RedisStore) {
		if key != "" {
			s.key = key
		}
	}
}

// WithRedisTTL sets an expiry on the slot so abandoned sessions age out
// server-side. Zero means no expiry.
func WithRedisTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) {
		s.ttl = ttl
	}
}

// NewRedisStore creates a Redis-backed store on top of an existing client.
func NewRedisStore(client *redis.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client: client,
		key:    "learnkit:session-token",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Read returns the persisted token.
func (s *RedisStore) Read(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", ErrTokenNotFound
	case err != nil:
		return "", errors.Join(ErrStorageFailure, err)
	}

	if token == "" {
		return "", ErrTokenNotFound
	}
	return token, nil
}

// Write replaces the slot contents.
func (s *RedisStore) Write(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, s.key, token, s.ttl).Err(); err != nil {
		return errors.Join(ErrStorageFailure, err)
	}
	return nil
}

// Clear deletes the slot.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return errors.Join(ErrStorageFailure, err)
	}
	return nil
}
