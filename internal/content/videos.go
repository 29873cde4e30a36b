package content

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/mindwell/internal/cache"
	"github.com/jonathan/mindwell/internal/fetch"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// maxVideoResults is how many search results are requested.
const maxVideoResults = 12

// VideoResult is a YouTube search hit.
type VideoResult struct {
	YouTubeID    string `json:"youtubeId"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	ChannelTitle string `json:"channelTitle,omitempty"`
}

// YouTube searches videos with the YouTube Data API.
type YouTube struct {
	svc   *youtube.Service
	cache cache.Cache
	ttl   time.Duration
}

// NewYouTube creates a client authenticated with an API key. Extra options
// are appended after the key.
func NewYouTube(ctx context.Context, apiKey string, c cache.Cache, ttl time.Duration, opts ...option.ClientOption) (*YouTube, error) {
	svc, err := youtube.NewService(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}
	return &YouTube{svc: svc, cache: c, ttl: ttl}, nil
}

// Search returns safe-search filtered videos for query.
func (y *YouTube) Search(ctx context.Context, query string) ([]VideoResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []VideoResult{}, nil
	}

	results, _, err := fetch.Remember(ctx, y.cache, "videos:search:"+strings.ToLower(query), y.ttl, func(ctx context.Context) ([]VideoResult, error) {
		resp, err := y.svc.Search.List([]string{"snippet"}).
			Q(query).
			Type("video").
			SafeSearch("strict").
			MaxResults(maxVideoResults).
			Context(ctx).
			Do()
		if err != nil {
			return nil, fmt.Errorf("youtube search failed: %w", err)
		}

		out := make([]VideoResult, 0, len(resp.Items))
		for _, item := range resp.Items {
			if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
				continue
			}
			v := VideoResult{
				YouTubeID:    item.Id.VideoId,
				Title:        item.Snippet.Title,
				Description:  item.Snippet.Description,
				ChannelTitle: item.Snippet.ChannelTitle,
			}
			if th := item.Snippet.Thumbnails; th != nil {
				switch {
				case th.High != nil:
					v.ThumbnailURL = th.High.Url
				case th.Medium != nil:
					v.ThumbnailURL = th.Medium.Url
				case th.Default != nil:
					v.ThumbnailURL = th.Default.Url
				}
			}
			out = append(out, v)
		}
		return out, nil
	})
	return results, err
}
