// Package ratelimit throttles API clients with per-route token buckets.
package ratelimit

import (
	"sync"
	"time"
)

// bucket refills continuously at rate tokens per second up to capacity.
type bucket struct {
	capacity float64
	rate     float64
	tokens   float64
	updated  time.Time
	lastSeen time.Time
}

func newBucket(capacity int, rate float64, now time.Time) *bucket {
	return &bucket{
		capacity: float64(capacity),
		rate:     rate,
		tokens:   float64(capacity),
		updated:  now,
		lastSeen: now,
	}
}

func (b *bucket) refill(now time.Time) {
	if elapsed := now.Sub(b.updated).Seconds(); elapsed > 0 {
		b.tokens = min(b.capacity, b.tokens+elapsed*b.rate)
	}
	b.updated = now
}

// take consumes one token if available.
func (b *bucket) take(now time.Time) bool {
	b.refill(now)
	b.lastSeen = now
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// fullAt is when the bucket will be back to capacity.
func (b *bucket) fullAt(now time.Time) time.Time {
	missing := b.capacity - b.tokens
	if missing <= 0 {
		return now
	}
	return now.Add(time.Duration(missing / b.rate * float64(time.Second)))
}

// Info describes the outcome of one Allow call.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTTL         time.Duration // buckets untouched this long are dropped; default 1h
	Allowlist       map[string]bool
	Blocklist       map[string]bool
	Rules           []Rule
}

// Limiter keeps one bucket per (client, route, method).
type Limiter struct {
	config *Config
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket

	stop     chan struct{}
	stopOnce sync.Once
}

// NewLimiter creates a limiter. A nil config enables 1000 requests per minute
// for every client.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}
	if config.IdleTTL <= 0 {
		config.IdleTTL = time.Hour
	}

	l := &Limiter{
		config:  config,
		now:     time.Now,
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
	}
	if config.Enabled && config.CleanupInterval > 0 {
		go l.sweepEvery(config.CleanupInterval)
	}
	return l
}

// WithClock replaces the limiter's time source.
func (l *Limiter) WithClock(now func() time.Time) *Limiter {
	l.now = now
	return l
}

// Allow consumes a token for clientID on the route matched by method and path.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Allowlist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blocklist[clientID] {
		return false, Info{}
	}

	rule := Match(path, method, l.config.Rules)
	if rule == nil {
		rule = &Rule{Limit: l.config.DefaultLimit, Window: l.config.DefaultWindow}
	}
	if rule.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	// Prefix rules share one bucket across every path they cover.
	key := path
	if rule.IsPrefix() {
		key = rule.Path
	}
	key = clientID + "|" + method + "|" + key

	now := l.now()
	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		b = newBucket(rule.capacity(), float64(rule.Limit)/rule.Window.Seconds(), now)
		l.buckets[key] = b
	}
	allowed := b.take(now)
	info := Info{
		Allowed:   allowed,
		Limit:     rule.Limit,
		Remaining: int(b.tokens),
		ResetTime: b.fullAt(now),
	}
	l.mu.Unlock()

	if !allowed {
		info.RetryAfter = max(0, info.ResetTime.Sub(now))
	}
	return allowed, info
}

// Len reports how many buckets are live.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Sweep drops buckets idle for longer than IdleTTL.
func (l *Limiter) Sweep() {
	cutoff := l.now().Add(-l.config.IdleTTL)
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

func (l *Limiter) sweepEvery(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.Sweep()
		case <-l.stop:
			return
		}
	}
}

// Stop ends the background sweep. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}
