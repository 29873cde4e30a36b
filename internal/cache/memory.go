package cache

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Memory is a bounded in-process LRU cache with a TTL per entry. Expiry is
// fixed at write time; reads do not extend it.
type Memory struct {
	items *ttlcache.Cache[string, []byte]
}

// NewMemory creates a cache holding at most maxEntries values.
func NewMemory(maxEntries int) *Memory {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &Memory{
		items: ttlcache.New[string, []byte](
			ttlcache.WithCapacity[string, []byte](uint64(maxEntries)),
			ttlcache.WithDisableTouchOnHit[string, []byte](),
		),
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	item := m.items.Get(key)
	if item == nil || item.IsExpired() {
		return nil, false, nil
	}
	return append([]byte(nil), item.Value()...), true, nil
}

// Set stores a copy of value. A non-positive ttl removes the key instead.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		m.items.Delete(key)
		return nil
	}
	m.items.Set(key, append([]byte(nil), value...), ttl)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.items.Delete(key)
	return nil
}

// Len reports the number of live entries.
func (m *Memory) Len() int {
	m.items.DeleteExpired()
	return m.items.Len()
}
