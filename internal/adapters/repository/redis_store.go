package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/spelltimer/internal/domain/cooldown"
	"github.com/okian/spelltimer/pkg/metrics"
	"github.com/redis/go-redis/v9"
)

var (
	_ cooldown.Store     = (*RedisStore)(nil)
	_ cooldown.TTLReader = (*RedisStore)(nil)
)

// RedisStore keeps cooldowns as plain Redis strings with a PX expiry, so
// Redis itself drops them when the cooldown ends.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore wraps client.
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	o := redisOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	return &RedisStore{client: client, prefix: o.prefix}
}

func (s *RedisStore) key(k string) string {
	return s.prefix + k
}

// Set writes value under key with ttl. An existing key gets the new value
// and a fresh TTL.
func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	start := time.Now()
	if err := s.client.Set(ctx, s.key(key), value, ttl).Err(); err != nil {
		metrics.RecordStoreError(BackendRedis, "set")
		return fmt.Errorf("failed to set cooldown in Redis: %w", err)
	}
	metrics.RecordStoreOperation(BackendRedis, "set", metrics.SinceMs(start))
	return nil
}

// Exists reports whether key is still present.
func (s *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	start := time.Now()
	n, err := s.client.Exists(ctx, s.key(key)).Result()
	if err != nil {
		metrics.RecordStoreError(BackendRedis, "exists")
		return false, fmt.Errorf("failed to check cooldown in Redis: %w", err)
	}
	metrics.RecordStoreOperation(BackendRedis, "exists", metrics.SinceMs(start))
	return n > 0, nil
}

// Remaining returns the remaining lifetime of key, or false if it is gone.
func (s *RedisStore) Remaining(ctx context.Context, key string) (time.Duration, bool, error) {
	d, err := s.client.PTTL(ctx, s.key(key)).Result()
	if err != nil {
		metrics.RecordStoreError(BackendRedis, "ttl")
		return 0, false, fmt.Errorf("failed to read cooldown TTL from Redis: %w", err)
	}
	// -2: no such key. -1 cannot happen for keys written by Set.
	if d < 0 {
		return 0, false, nil
	}
	return d, true, nil
}

// Ping checks connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}
