package content

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonathan/mindwell/internal/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGutendexServer(t *testing.T, textHits *atomic.Int32) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("GET /books", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "en", r.URL.Query().Get("languages"))
		next := "null"
		if r.URL.Query().Get("page") == "1" {
			next = `"` + srv.URL + `/books?page=2&search=focus"`
		}
		_, _ = w.Write([]byte(`{"count":2,"next":` + next + `,"results":[
			{"id":205,"title":"Walden","authors":[{"name":"Thoreau, Henry David"}],"summaries":["A reflection upon simple living."],
			 "formats":{"image/jpeg":"https://img/205.jpg","text/plain; charset=us-ascii":"` + srv.URL + `/files/205.txt","application/zip":"x.zip"}},
			{"id":9,"title":"Anonymous","authors":[],"formats":{}}
		]}`))
	})
	mux.HandleFunc("GET /books/205", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":205,"title":"Walden","formats":{"text/plain; charset=us-ascii":"` + srv.URL + `/files/205.txt"}}`))
	})
	mux.HandleFunc("GET /books/300", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":300,"title":"Illustrated","formats":{"text/html":"` + srv.URL + `/files/300.html"}}`))
	})
	mux.HandleFunc("GET /books/400", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":400,"title":"Audio","formats":{"audio/mpeg":"x.mp3"}}`))
	})
	mux.HandleFunc("GET /books/404", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("GET /files/205.txt", func(w http.ResponseWriter, _ *http.Request) {
		if textHits != nil {
			textHits.Add(1)
		}
		_, _ = w.Write([]byte(strings.Repeat("abcde", 240) + "\r\nend"))
	})
	mux.HandleFunc("GET /files/300.html", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><section id="pg-header">License</section><p>Once upon a time</p></body></html>`))
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGutendex_Search(t *testing.T) {
	srv := newGutendexServer(t, nil)
	g := NewGutendex(srv.URL+"/", cache.NewMemory(10), time.Minute, time.Hour, nil)

	page, err := g.Search(context.Background(), "focus", 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.NotNil(t, page.NextPage)
	assert.Equal(t, 2, *page.NextPage)

	walden := page.Items[0]
	assert.Equal(t, "205", walden.ID)
	assert.Equal(t, "Thoreau, Henry David", walden.Author)
	assert.Equal(t, "https://img/205.jpg", walden.CoverURL)
	assert.Equal(t, "https://www.gutenberg.org/ebooks/205", walden.LinkURL)
	assert.Equal(t, "A reflection upon simple living.", walden.Description)
	assert.True(t, strings.HasSuffix(walden.TextURL, "/files/205.txt"))
	assert.Equal(t, "Unknown", page.Items[1].Author)

	last, err := g.Search(context.Background(), "focus", 2)
	require.NoError(t, err)
	assert.Nil(t, last.NextPage)
}

func TestGutendex_ContentPlainText(t *testing.T) {
	var hits atomic.Int32
	srv := newGutendexServer(t, &hits)
	g := NewGutendex(srv.URL, cache.NewMemory(10), time.Minute, time.Hour, nil)

	first, err := g.Content(context.Background(), "205", 1, 1000)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Page)
	assert.Equal(t, 2, first.TotalPages)
	assert.Len(t, first.Content, 1000)

	second, err := g.Content(context.Background(), "205", 9, 1000)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Page, "out of range pages are clamped")
	assert.True(t, strings.HasSuffix(second.Content, "\nend"))
	assert.NotContains(t, second.Content, "\r")

	assert.Equal(t, int32(1), hits.Load(), "text is cached after the first download")
}

func TestGutendex_ContentHTMLFallback(t *testing.T) {
	srv := newGutendexServer(t, nil)
	g := NewGutendex(srv.URL, cache.NewMemory(10), time.Minute, time.Hour, nil)

	c, err := g.Content(context.Background(), "300", 1, 0)
	require.NoError(t, err)
	assert.Equal(t, "Once upon a time", c.Content)
	assert.Equal(t, 1, c.TotalPages)
}

func TestGutendex_ContentErrors(t *testing.T) {
	srv := newGutendexServer(t, nil)
	g := NewGutendex(srv.URL, cache.NewMemory(10), time.Minute, time.Hour, nil)

	_, err := g.Content(context.Background(), "400", 1, 0)
	assert.True(t, errors.Is(err, ErrNoText))

	_, err = g.Content(context.Background(), "404", 1, 0)
	assert.True(t, errors.Is(err, ErrBookNotFound))

	_, err = g.Content(context.Background(), "../etc", 1, 0)
	assert.True(t, errors.Is(err, ErrBookNotFound))
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		textLen   int
		page      int
		pageSize  int
		wantPage  int
		wantTotal int
		wantLen   int
	}{
		{"empty text has one page", 0, 1, 1000, 1, 1, 0},
		{"exact multiple", 2000, 2, 1000, 2, 2, 1000},
		{"remainder page", 2500, 3, 1000, 3, 3, 500},
		{"page below range", 2500, 0, 1000, 1, 3, 1000},
		{"page above range", 2500, 7, 1000, 3, 3, 500},
		{"default page size", 12000, 1, 0, 1, 3, 5000},
		{"small page size raised", 1000, 1, 10, 1, 2, 500},
		{"large page size capped", 50000, 1, 100000, 1, 3, 20000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Paginate(strings.Repeat("x", tt.textLen), tt.page, tt.pageSize)
			assert.Equal(t, tt.wantPage, c.Page)
			assert.Equal(t, tt.wantTotal, c.TotalPages)
			assert.Len(t, c.Content, tt.wantLen)
		})
	}
}

func TestPaginate_CountsCharactersNotBytes(t *testing.T) {
	c := Paginate(strings.Repeat("é", 600), 2, 500)
	assert.Equal(t, 2, c.TotalPages)
	assert.Equal(t, 100, len([]rune(c.Content)))
}

func TestPickFormat(t *testing.T) {
	formats := map[string]string{
		"text/plain; charset=us-ascii": "b.txt",
		"text/plain; charset=utf-8":    "a-utf8.txt",
		"text/plain":                   "book.zip",
	}
	assert.Equal(t, "a-utf8.txt", pickFormat(formats, "text/plain"))
	assert.Equal(t, "", pickFormat(formats, "text/html"))
}
