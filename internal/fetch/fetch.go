// Package fetch performs outbound HTTP requests for the content providers and
// turns HTML pages into plain text.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// DefaultTimeout bounds every outbound request.
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent identifies MindWell to upstream APIs.
	DefaultUserAgent = "Mozilla/5.0 (compatible; MindWell/1.0)"

	// Full Gutenberg novels run to a few MB of text.
	maxBodyBytes = 32 << 20
)

// Result is one fetched document.
type Result struct {
	URL         string
	Body        []byte
	Text        string // filled for HTML by CachedFetcher
	ContentType string
	StatusCode  int
}

// Error is returned for every failed fetch. StatusCode is set when the
// upstream answered with a non-200 status.
type Error struct {
	URL        string
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Options configures outbound requests. A nil *Options means DefaultOptions.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
	Client    *http.Client
}

// DefaultOptions returns the 30s timeout and MindWell user agent.
func DefaultOptions() *Options {
	return &Options{Timeout: DefaultTimeout, UserAgent: DefaultUserAgent}
}

func (o *Options) httpClient() *http.Client {
	if o.Client != nil {
		return o.Client
	}
	return &http.Client{Timeout: o.Timeout}
}

// URL GETs rawURL. A non-200 status returns the result together with an
// *Error so callers can still inspect the body.
func URL(ctx context.Context, rawURL string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	fail := func(msg string, cause error) *Error {
		return &Error{URL: rawURL, Message: msg, Cause: cause}
	}

	if u, err := url.Parse(rawURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fail("invalid URL", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fail("failed to create request", err)
	}
	req.Header.Set("User-Agent", opts.UserAgent)
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := opts.httpClient().Do(req)
	if err != nil {
		return nil, fail("request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fail("failed to read body", err)
	}
	res := &Result{
		URL:         rawURL,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}
	if resp.StatusCode != http.StatusOK {
		e := fail(fmt.Sprintf("HTTP status %d", resp.StatusCode), nil)
		e.StatusCode = resp.StatusCode
		return res, e
	}
	return res, nil
}

// JSON GETs rawURL and decodes the body into out.
func JSON(ctx context.Context, rawURL string, opts *Options, out any) error {
	res, err := URL(ctx, rawURL, opts)
	if err != nil {
		return err
	}
	return decodeJSON(rawURL, res.Body, out)
}

func decodeJSON(rawURL string, body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{URL: rawURL, Message: "invalid JSON response", Cause: err}
	}
	return nil
}

// IsHTML reports whether contentType is text/html or XHTML.
func IsHTML(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(strings.ToLower(contentType), "html")
	}
	return mt == "text/html" || mt == "application/xhtml+xml"
}

// Selectors tell ExtractText where the readable text of a page is.
type Selectors struct {
	// Content is tried in order; the first match wins and body is the fallback.
	Content []string
	// Noise is removed before the content is located.
	Noise []string
}

// GutenbergBook selects the body of a Project Gutenberg HTML e-book without
// its license header, footer and page markers.
var GutenbergBook = Selectors{
	Content: []string{"main", "article", "#pg-body", ".chapter"},
	Noise:   []string{"#pg-header", "#pg-footer", "#pg-machine-header", ".pg-boilerplate", ".pagenum"},
}

// ExtractText parses html and returns its readable text, one non-blank line
// per line.
func ExtractText(html string, sel Selectors) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript").Remove()
	if len(sel.Noise) > 0 {
		doc.Find(strings.Join(sel.Noise, ", ")).Remove()
	}

	content := doc.Find("body")
	for _, s := range sel.Content {
		if found := doc.Find(s); found.Length() > 0 {
			content = found.First()
			break
		}
	}
	return compactLines(content.Text()), nil
}

func compactLines(text string) string {
	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	return b.String()
}
