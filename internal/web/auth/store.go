package auth

import (
	"context"
	"time"

	"github.com/Laisky/errors/v2"
	redislib "github.com/Laisky/go-redis/v2"
	"github.com/redis/go-redis/v9"
)

// SessionStore is the narrow key-value surface the session manager needs.
// Expiry is enforced by the store itself; the manager never sweeps.
type SessionStore interface {
	// Set writes key -> value with an absolute ttl.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Get returns the value and whether the key currently exists.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Del removes the key and reports whether it existed.
	Del(ctx context.Context, key string) (ok bool, err error)
}

// RedisSessionStore stores session tokens in Redis with native TTL.
type RedisSessionStore struct {
	client *redislib.Utils
}

// NewRedisSessionStore constructs a redis-backed session store.
func NewRedisSessionStore(client *redislib.Utils) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

// Set writes the token payload with TTL.
func (s *RedisSessionStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if s == nil || s.client == nil {
		return errors.New("redis client is required")
	}
	return s.client.SetItem(ctx, key, value, ttl)
}

// Get retrieves the token payload; a missing or expired key is not an error.
func (s *RedisSessionStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s == nil || s.client == nil {
		return "", false, errors.New("redis client is required")
	}

	val, err := s.client.GetItem(ctx, key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, errors.Wrap(err, "get item")
	}

	return val, true, nil
}

// Del removes the token payload and reports whether it was present.
func (s *RedisSessionStore) Del(ctx context.Context, key string) (bool, error) {
	if s == nil || s.client == nil {
		return false, errors.New("redis client is required")
	}

	res := s.client.Del(ctx, key)
	if err := res.Err(); err != nil {
		return false, errors.Wrap(err, "del item")
	}

	return res.Val() > 0, nil
}
