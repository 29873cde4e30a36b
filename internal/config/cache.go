package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Cache backends.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// CacheConfig selects and sizes the content cache.
type CacheConfig struct {
	Backend     string
	RedisURL    string
	KeyPrefix   string
	MaxEntries  int
	SearchTTL   time.Duration
	ContentTTL  time.Duration
	PlaylistTTL time.Duration
}

// NewCacheConfig reads CACHE_BACKEND (memory|redis), REDIS_URL, CACHE_KEY_PREFIX,
// CACHE_MAX_ENTRIES (default 500), CACHE_SEARCH_TTL (default 10m),
// CACHE_CONTENT_TTL (default 6h) and CACHE_PLAYLIST_TTL (default 30m).
func NewCacheConfig() (*CacheConfig, error) {
	maxEntries, err := envInt("CACHE_MAX_ENTRIES", 500)
	if err != nil {
		return nil, err
	}
	searchTTL, err := envDuration("CACHE_SEARCH_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}
	contentTTL, err := envDuration("CACHE_CONTENT_TTL", 6*time.Hour)
	if err != nil {
		return nil, err
	}
	playlistTTL, err := envDuration("CACHE_PLAYLIST_TTL", 30*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &CacheConfig{
		Backend:     strings.ToLower(envString("CACHE_BACKEND", CacheBackendMemory)),
		RedisURL:    os.Getenv("REDIS_URL"),
		KeyPrefix:   envString("CACHE_KEY_PREFIX", "mindwell:"),
		MaxEntries:  maxEntries,
		SearchTTL:   searchTTL,
		ContentTTL:  contentTTL,
		PlaylistTTL: playlistTTL,
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *CacheConfig) normalize() error {
	switch c.Backend {
	case CacheBackendMemory:
	case CacheBackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when CACHE_BACKEND=redis")
		}
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q", c.Backend)
	}
	if c.MaxEntries < 1 {
		return fmt.Errorf("CACHE_MAX_ENTRIES must be at least 1, got: %d", c.MaxEntries)
	}
	if c.SearchTTL <= 0 || c.ContentTTL <= 0 || c.PlaylistTTL <= 0 {
		return fmt.Errorf("cache TTLs must be positive")
	}
	return nil
}
