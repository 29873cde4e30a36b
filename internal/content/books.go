// Package content talks to the public content providers behind the wellness
// library: Gutendex for public-domain books, YouTube for videos and Spotify
// for calm music.
package content

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/mindwell/internal/cache"
	"github.com/jonathan/mindwell/internal/fetch"
)

// Book paging limits, in characters.
const (
	DefaultPageSize = 5000
	MinPageSize     = 500
	MaxPageSize     = 20000
)

var (
	// ErrNoText is returned when a book offers neither plain text nor HTML.
	ErrNoText = errors.New("book has no readable text format")
	// ErrBookNotFound is returned for an unknown book id.
	ErrBookNotFound = errors.New("book not found")
)

// PublicBook is a public-domain book listing.
type PublicBook struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	CoverURL    string `json:"coverUrl,omitempty"`
	Description string `json:"description,omitempty"`
	LinkURL     string `json:"linkUrl,omitempty"`
	TextURL     string `json:"textUrl,omitempty"`
	HTMLURL     string `json:"htmlUrl,omitempty"`
}

// BookPage is one page of search results.
type BookPage struct {
	Items    []PublicBook `json:"items"`
	NextPage *int         `json:"nextPage,omitempty"`
}

// BookContent is one page of a book's text.
type BookContent struct {
	Content    string `json:"content"`
	Page       int    `json:"page"`
	TotalPages int    `json:"totalPages"`
}

type gutendexBook struct {
	ID        int               `json:"id"`
	Title     string            `json:"title"`
	Authors   []gutendexPerson  `json:"authors"`
	Summaries []string          `json:"summaries"`
	Formats   map[string]string `json:"formats"`
}

type gutendexPerson struct {
	Name string `json:"name"`
}

type gutendexList struct {
	Count   int            `json:"count"`
	Next    *string        `json:"next"`
	Results []gutendexBook `json:"results"`
}

// Gutendex searches Project Gutenberg through the Gutendex API.
type Gutendex struct {
	baseURL    string
	fetcher    *fetch.CachedFetcher
	cache      cache.Cache
	opts       *fetch.Options
	contentTTL time.Duration
}

// NewGutendex creates a client. Search and metadata responses are cached for
// searchTTL, extracted book text for contentTTL.
func NewGutendex(baseURL string, c cache.Cache, searchTTL, contentTTL time.Duration, opts *fetch.Options) *Gutendex {
	if opts == nil {
		opts = fetch.DefaultOptions()
	}
	return &Gutendex{
		baseURL:    strings.TrimRight(baseURL, "/"),
		fetcher:    fetch.NewCachedFetcher(c, opts, searchTTL),
		cache:      c,
		opts:       opts,
		contentTTL: contentTTL,
	}
}

// Search lists English books matching query. page starts at 1.
func (g *Gutendex) Search(ctx context.Context, query string, page int) (*BookPage, error) {
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("languages", "en")
	params.Set("page", strconv.Itoa(page))
	if q := strings.TrimSpace(query); q != "" {
		params.Set("search", q)
	}

	var list gutendexList
	if err := g.fetcher.FetchJSON(ctx, g.baseURL+"/books?"+params.Encode(), &list); err != nil {
		return nil, err
	}

	out := &BookPage{Items: make([]PublicBook, 0, len(list.Results))}
	for _, b := range list.Results {
		out.Items = append(out.Items, toPublicBook(b))
	}
	if list.Next != nil && *list.Next != "" {
		next := nextPageNumber(*list.Next, page)
		out.NextPage = &next
	}
	return out, nil
}

// Content returns one page of a book's text.
func (g *Gutendex) Content(ctx context.Context, id string, page, pageSize int) (*BookContent, error) {
	if _, err := strconv.Atoi(id); err != nil {
		return nil, fmt.Errorf("invalid book id %q: %w", id, ErrBookNotFound)
	}

	text, _, err := fetch.Remember(ctx, g.cache, "books:text:"+id, g.contentTTL, func(ctx context.Context) (string, error) {
		return g.loadText(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return Paginate(text, page, pageSize), nil
}

func (g *Gutendex) loadText(ctx context.Context, id string) (string, error) {
	var book gutendexBook
	if err := g.fetcher.FetchJSON(ctx, g.baseURL+"/books/"+id, &book); err != nil {
		var fetchErr *fetch.Error
		if errors.As(err, &fetchErr) && fetchErr.StatusCode == http.StatusNotFound {
			return "", fmt.Errorf("book %s: %w", id, ErrBookNotFound)
		}
		return "", err
	}

	if textURL := pickFormat(book.Formats, "text/plain"); textURL != "" {
		res, err := fetch.URL(ctx, textURL, g.opts)
		if err != nil {
			return "", err
		}
		return strings.ReplaceAll(string(res.Body), "\r\n", "\n"), nil
	}

	if htmlURL := pickFormat(book.Formats, "text/html"); htmlURL != "" {
		res, err := fetch.URL(ctx, htmlURL, g.opts)
		if err != nil {
			return "", err
		}
		return fetch.ExtractText(string(res.Body), fetch.GutenbergBook)
	}

	return "", ErrNoText
}

// Paginate slices text into pages of pageSize characters. The page is clamped
// into range and there is always at least one page.
func Paginate(text string, page, pageSize int) *BookContent {
	switch {
	case pageSize <= 0:
		pageSize = DefaultPageSize
	case pageSize < MinPageSize:
		pageSize = MinPageSize
	case pageSize > MaxPageSize:
		pageSize = MaxPageSize
	}

	runes := []rune(text)
	total := (len(runes) + pageSize - 1) / pageSize
	if total < 1 {
		total = 1
	}
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(runes) {
		end = len(runes)
	}
	if start > end {
		start = end
	}
	return &BookContent{Content: string(runes[start:end]), Page: page, TotalPages: total}
}

// pickFormat returns the best URL whose MIME type starts with prefix,
// preferring UTF-8 and skipping archives.
func pickFormat(formats map[string]string, prefix string) string {
	best := ""
	for mime, link := range formats {
		if !strings.HasPrefix(mime, prefix) || strings.HasSuffix(link, ".zip") {
			continue
		}
		if strings.Contains(strings.ToLower(mime), "utf-8") {
			return link
		}
		if best == "" || link < best {
			best = link
		}
	}
	return best
}

func toPublicBook(b gutendexBook) PublicBook {
	id := strconv.Itoa(b.ID)
	names := make([]string, 0, len(b.Authors))
	for _, a := range b.Authors {
		names = append(names, a.Name)
	}
	author := strings.Join(names, ", ")
	if author == "" {
		author = "Unknown"
	}

	out := PublicBook{
		ID:       id,
		Title:    b.Title,
		Author:   author,
		CoverURL: b.Formats["image/jpeg"],
		LinkURL:  "https://www.gutenberg.org/ebooks/" + id,
		TextURL:  pickFormat(b.Formats, "text/plain"),
		HTMLURL:  pickFormat(b.Formats, "text/html"),
	}
	if len(b.Summaries) > 0 {
		out.Description = truncate(b.Summaries[0], 500)
	}
	return out
}

func nextPageNumber(next string, current int) int {
	if u, err := url.Parse(next); err == nil {
		if p, err := strconv.Atoi(u.Query().Get("page")); err == nil && p > 0 {
			return p
		}
	}
	return current + 1
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max]) + "…"
}
