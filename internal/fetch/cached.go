package fetch

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jonathan/mindwell/internal/cache"
)

// Remember returns the cached value under key, or calls load and caches its
// result for ttl. Cache failures never fail the call; a corrupt entry is
// reloaded.
func Remember[T any](ctx context.Context, c cache.Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, bool, error) {
	if c != nil {
		if data, ok, err := c.Get(ctx, key); err == nil && ok {
			var cached T
			if json.Unmarshal(data, &cached) == nil {
				return cached, true, nil
			}
		}
	}

	value, err := load(ctx)
	if err != nil {
		var zero T
		return zero, false, err
	}

	if c != nil {
		if data, err := json.Marshal(value); err == nil {
			_ = c.Set(ctx, key, data, ttl)
		}
	}
	return value, false, nil
}

// CachedFetcher wraps URL fetching with a TTL cache keyed by URL.
type CachedFetcher struct {
	cache   cache.Cache
	options *Options
	ttl     time.Duration
}

// NewCachedFetcher creates a fetcher that caches successful responses for ttl.
func NewCachedFetcher(c cache.Cache, opts *Options, ttl time.Duration) *CachedFetcher {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &CachedFetcher{cache: c, options: opts, ttl: ttl}
}

// CachedResult extends Result with cache metadata.
type CachedResult struct {
	*Result
	FromCache bool
}

// Fetch retrieves a URL, serving a cached copy when one is fresh. HTML
// bodies get their Text extracted.
func (f *CachedFetcher) Fetch(ctx context.Context, urlStr string) (*CachedResult, error) {
	result, fromCache, err := Remember(ctx, f.cache, "fetch:"+urlStr, f.ttl, func(ctx context.Context) (*Result, error) {
		result, err := URL(ctx, urlStr, f.options)
		if err != nil {
			return nil, err
		}
		if IsHTML(result.ContentType) {
			result.Text, _ = ExtractText(string(result.Body), GutenbergBook)
		}
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return &CachedResult{Result: result, FromCache: fromCache}, nil
}

// FetchJSON retrieves a URL through the cache and decodes its body into out.
func (f *CachedFetcher) FetchJSON(ctx context.Context, urlStr string, out any) error {
	result, err := f.Fetch(ctx, urlStr)
	if err != nil {
		return err
	}
	if err := decodeJSON(urlStr, result.Body, out); err != nil {
		if f.cache != nil {
			_ = f.cache.Delete(ctx, "fetch:"+urlStr)
		}
		return err
	}
	return nil
}
