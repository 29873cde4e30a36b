package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestLimiter(t *testing.T, cfg *Config) (*Limiter, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	l := NewLimiter(cfg).WithClock(clock.Now)
	t.Cleanup(l.Stop)
	return l, clock
}

func TestBucket(t *testing.T) {
	start := time.Unix(0, 0)
	b := newBucket(10, 1, start)

	for i := 0; i < 10; i++ {
		require.True(t, b.take(start), "request %d", i+1)
	}
	assert.False(t, b.take(start))

	later := start.Add(1500 * time.Millisecond)
	assert.True(t, b.take(later))
	assert.False(t, b.take(later))
	assert.Equal(t, later.Add(9500*time.Millisecond), b.fullAt(later))
}

func TestLimiter_DefaultLimit(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 3, DefaultWindow: time.Minute})

	for i := 0; i < 3; i++ {
		allowed, info := l.Allow("10.0.0.1", "/api/history", "GET")
		require.True(t, allowed)
		assert.Equal(t, 3, info.Limit)
		assert.Equal(t, 2-i, info.Remaining)
	}

	allowed, info := l.Allow("10.0.0.1", "/api/history", "GET")
	assert.False(t, allowed)
	assert.InDelta(t, 60, info.RetryAfter.Seconds(), 0.01)

	// Other clients have their own bucket.
	allowed, _ = l.Allow("10.0.0.2", "/api/history", "GET")
	assert.True(t, allowed)

	clock.Advance(20 * time.Second)
	allowed, _ = l.Allow("10.0.0.1", "/api/history", "GET")
	assert.True(t, allowed)
}

func TestLimiter_Lists(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Allowlist:     map[string]bool{"10.0.0.9": true},
		Blocklist:     map[string]bool{"10.0.0.66": true},
	})

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("10.0.0.9", "/api/mood", "POST")
		assert.True(t, allowed)
	}
	allowed, _ := l.Allow("10.0.0.66", "/api/mood", "POST")
	assert.False(t, allowed)
	assert.Zero(t, l.Len())
}

func TestLimiter_Disabled(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: false, DefaultLimit: 1})

	for i := 0; i < 10; i++ {
		allowed, info := l.Allow("10.0.0.1", "/api/mood", "POST")
		require.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_HealthIsUnlimited(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute})

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("10.0.0.1", HealthPath, "GET")
		assert.True(t, allowed)
	}
}

func TestLimiter_RuleOverridesDefault(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Rules:         []Rule{{Method: "POST", Path: "/api/journal", Limit: 30, Window: time.Hour, Burst: 2}},
	})

	for i := 0; i < 2; i++ {
		allowed, info := l.Allow("10.0.0.1", "/api/journal", "POST")
		require.True(t, allowed)
		assert.Equal(t, 30, info.Limit)
	}
	allowed, _ := l.Allow("10.0.0.1", "/api/journal", "POST")
	assert.False(t, allowed, "burst exhausted")

	allowed, info := l.Allow("10.0.0.1", "/api/journal/history", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 100, info.Limit)
}

func TestLimiter_PrefixRuleSharesBucket(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Rules:         []Rule{{Method: "POST", Path: "/api/alerts/", Limit: 2, Window: time.Minute}},
	})

	allowed, _ := l.Allow("10.0.0.1", "/api/alerts/acknowledge/a", "POST")
	require.True(t, allowed)
	allowed, _ = l.Allow("10.0.0.1", "/api/alerts/acknowledge/b", "POST")
	require.True(t, allowed)
	allowed, _ = l.Allow("10.0.0.1", "/api/alerts/acknowledge/c", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 1, l.Len())
}

func TestLimiter_Sweep(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute, IdleTTL: time.Hour})

	for i := 0; i < 5; i++ {
		l.Allow(fmt.Sprintf("10.0.0.%d", i), "/api/history", "GET")
	}
	clock.Advance(45 * time.Minute)
	l.Allow("10.0.0.0", "/api/history", "GET")
	clock.Advance(30 * time.Minute)

	l.Sweep()
	assert.Equal(t, 1, l.Len())
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 50, DefaultWindow: time.Hour})

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("10.0.0.1", "/api/history", "GET"); ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, allowed)
}

func TestLimiter_StopTwice(t *testing.T) {
	l := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute, CleanupInterval: time.Millisecond})
	l.Stop()
	assert.NotPanics(t, l.Stop)
}

func TestNewLimiter_NilConfig(t *testing.T) {
	l := NewLimiter(nil)
	defer l.Stop()

	allowed, info := l.Allow("10.0.0.1", "/api/history", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestMatch(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name   string
		method string
		path   string
		want   string
	}{
		{"health", "GET", HealthPath, ""},
		{"exact", "POST", "/api/mood", "/api/mood"},
		{"exact beats prefix", "GET", "/api/library/public", "/api/library/public"},
		{"prefix", "GET", "/api/library/public/84/content-paged", "/api/library/public/"},
		{"method must match", "GET", "/api/mood", "-"},
		{"unknown path", "GET", "/api/profile/me", "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(tt.path, tt.method, rules)
			if tt.want == "-" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Path)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_ALLOWLIST", "10.0.0.1, 10.0.0.2,")
	t.Setenv("RATE_LIMIT_BLOCKLIST", "")
	t.Setenv("RATE_LIMIT_IDLE_TTL", "not-a-duration")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 42, cfg.DefaultLimit)
	assert.Equal(t, 30*time.Second, cfg.DefaultWindow)
	assert.Equal(t, time.Hour, cfg.IdleTTL)
	assert.Equal(t, map[string]bool{"10.0.0.1": true, "10.0.0.2": true}, cfg.Allowlist)
	assert.Empty(t, cfg.Blocklist)
	assert.NotEmpty(t, cfg.Rules)

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	assert.False(t, LoadConfig().Enabled)
}
