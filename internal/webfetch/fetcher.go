// Package webfetch downloads a careers page and reduces it to bounded visible text.
package webfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"outreach-backend/internal/shared/metrics"
	"outreach-backend/internal/shared/telemetry"
	"outreach-backend/internal/shared/util"
)

const (
	DefaultTimeout   = 10 * time.Second
	DefaultMaxChars  = 8000
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	maxBodyBytes = 5 << 20
)

// Getter performs HTTP requests. *http.Client satisfies it.
type Getter interface {
	Do(req *http.Request) (*http.Response, error)
}

// Cache stores reduced page text by url.
type Cache interface {
	Get(ctx context.Context, pageURL string) (string, bool)
	Set(ctx context.Context, pageURL, text string) error
}

// Options tunes a Fetcher. Zero values take the defaults.
type Options struct {
	Timeout   time.Duration
	MaxChars  int
	UserAgent string
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.MaxChars <= 0 {
		o.MaxChars = DefaultMaxChars
	}
	if strings.TrimSpace(o.UserAgent) == "" {
		o.UserAgent = DefaultUserAgent
	}
	return o
}

// Fetcher retrieves pages and returns their visible text.
type Fetcher struct {
	client Getter
	cache  Cache
	opts   Options
}

// New builds a Fetcher. A nil client uses http.DefaultClient; cache may be nil.
func New(client Getter, cache Cache, opts Options) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{client: client, cache: cache, opts: opts.withDefaults()}
}

// Fetch GETs rawURL and returns at most MaxChars characters of visible text.
// Every failure is a *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	pageURL, err := normalizeURL(rawURL)
	if err != nil {
		return "", &FetchError{URL: rawURL, Err: err}
	}

	if f.cache != nil {
		if text, ok := f.cache.Get(ctx, pageURL); ok {
			metrics.IncPageCacheHit()
			return text, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, f.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", &FetchError{URL: pageURL, Err: err}
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/pdf;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &FetchError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{URL: pageURL, Status: resp.StatusCode, Err: ErrBadStatus}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", &FetchError{URL: pageURL, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	text, err := reduce(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", &FetchError{URL: pageURL, Status: resp.StatusCode, Err: err}
	}
	text = util.TruncateRunes(text, f.opts.MaxChars)

	if f.cache != nil {
		if err := f.cache.Set(ctx, pageURL, text); err != nil {
			telemetry.Warn("webfetch.cache.set_failed", map[string]any{"url": pageURL, "error": err})
		}
	}
	return text, nil
}

// normalizeURL accepts absolute http(s) urls only.
func normalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", ErrInvalidURL
	}
	return u.String(), nil
}

// ValidURL reports whether raw is an absolute http(s) url Fetch would accept.
func ValidURL(raw string) bool {
	_, err := normalizeURL(raw)
	return err == nil
}
