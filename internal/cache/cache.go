// Package cache provides the TTL cache used for third-party content lookups.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/mindwell/internal/config"
	"github.com/redis/go-redis/v9"
)

// Cache stores opaque values with a time to live.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// New builds the cache selected by cfg. The returned close function releases
// any connection held by the backend.
func New(ctx context.Context, cfg *config.CacheConfig) (Cache, func() error, error) {
	if cfg.Backend != config.CacheBackendRedis {
		return NewMemory(cfg.MaxEntries), func() error { return nil }, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return NewRedis(client, cfg.KeyPrefix), client.Close, nil
}
