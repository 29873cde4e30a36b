package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// HealthPath is never rate limited.
const HealthPath = "/api/health"

// Rule limits one method on a path. A Path ending in "/" covers every path
// below it and all of them draw from one bucket per client.
type Rule struct {
	Method string
	Path   string
	Limit  int
	Window time.Duration
	Burst  int // defaults to Limit
}

// IsPrefix reports whether the rule covers a subtree.
func (r *Rule) IsPrefix() bool {
	return strings.HasSuffix(r.Path, "/")
}

func (r *Rule) capacity() int {
	if r.Burst > 0 {
		return r.Burst
	}
	return r.Limit
}

// Match returns the rule for method and path, preferring exact paths over
// prefixes. It returns nil when no rule applies.
func Match(path, method string, rules []Rule) *Rule {
	if path == HealthPath && method == "GET" {
		return &Rule{}
	}
	var prefix *Rule
	for i := range rules {
		r := &rules[i]
		if r.Method != method {
			continue
		}
		if r.Path == path {
			return r
		}
		if prefix == nil && r.IsPrefix() && strings.HasPrefix(path, r.Path) {
			prefix = r
		}
	}
	return prefix
}

// DefaultRules throttles AI-backed writes and quota-limited upstream reads
// harder than plain writes.
func DefaultRules() []Rule {
	return []Rule{
		{Method: "POST", Path: "/api/journal", Limit: 30, Window: time.Hour, Burst: 5},
		{Method: "POST", Path: "/api/drawings", Limit: 30, Window: time.Hour, Burst: 5},

		{Method: "GET", Path: "/api/library/videos/search", Limit: 60, Window: time.Minute, Burst: 10},
		{Method: "GET", Path: "/api/library/public", Limit: 120, Window: time.Minute, Burst: 20},
		{Method: "GET", Path: "/api/library/public/", Limit: 120, Window: time.Minute, Burst: 20},
		{Method: "GET", Path: "/api/music/", Limit: 60, Window: time.Minute, Burst: 10},

		{Method: "POST", Path: "/api/mood", Limit: 100, Window: time.Minute, Burst: 10},
		{Method: "POST", Path: "/api/cognitive", Limit: 100, Window: time.Minute, Burst: 10},
		{Method: "POST", Path: "/api/checklist/", Limit: 100, Window: time.Minute, Burst: 10},
		{Method: "POST", Path: "/api/quiz/", Limit: 100, Window: time.Minute, Burst: 10},
		{Method: "POST", Path: "/api/alerts", Limit: 100, Window: time.Minute, Burst: 10},
		{Method: "POST", Path: "/api/alerts/", Limit: 100, Window: time.Minute, Burst: 10},
		{Method: "POST", Path: "/api/onboarding/", Limit: 100, Window: time.Minute, Burst: 10},
		{Method: "POST", Path: "/api/library/video-summary", Limit: 100, Window: time.Minute, Burst: 10},
		{Method: "POST", Path: "/api/wellness/calculate", Limit: 30, Window: time.Minute, Burst: 5},
	}
}

// LoadConfig reads RATE_LIMIT_ENABLED, RATE_LIMIT_DEFAULT_LIMIT,
// RATE_LIMIT_DEFAULT_WINDOW, RATE_LIMIT_CLEANUP_INTERVAL, RATE_LIMIT_IDLE_TTL,
// RATE_LIMIT_ALLOWLIST and RATE_LIMIT_BLOCKLIST. Unparseable values fall back
// to their defaults.
func LoadConfig() *Config {
	if !envBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    envInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   envDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: envDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		IdleTTL:         envDuration("RATE_LIMIT_IDLE_TTL", time.Hour),
		Allowlist:       clientSet(os.Getenv("RATE_LIMIT_ALLOWLIST")),
		Blocklist:       clientSet(os.Getenv("RATE_LIMIT_BLOCKLIST")),
		Rules:           DefaultRules(),
	}
}

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

// clientSet parses a comma-separated list of client IPs.
func clientSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			set[ip] = true
		}
	}
	return set
}
