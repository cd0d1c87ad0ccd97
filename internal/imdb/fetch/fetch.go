// Package fetch is the rate-limited IMDb requester: it caps in-flight
// requests with a counted semaphore, meters the request rate against
// the block window, rotates user agents and classifies responses into
// the typed outcomes the facade propagates.
package fetch

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/reeldex/reeldex/internal/imdb/types"
)

// Config tunes the fetcher.
type Config struct {
	// Timeout bounds one attempt. IMDb holds blocked connections open;
	// the short default keeps callers responsive.
	Timeout time.Duration

	// Concurrency caps simultaneous IMDb requests process-wide.
	Concurrency int64

	// WindowRequests per Window is the usage meter (default 250/60s).
	WindowRequests int
	Window         time.Duration

	// AcceptLanguage is the fallback when a request carries no tags.
	AcceptLanguage string
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:        15 * time.Second,
		Concurrency:    10,
		WindowRequests: 250,
		Window:         time.Minute,
		AcceptLanguage: "en-US,en;q=0.8",
	}
}

// Options tune one fetch.
type Options struct {
	Method   string
	Language string
	Country  string

	// CacheTTL stores a successful payload for this long; zero skips
	// the cache entirely. Raw HTML pages run about a megabyte and are
	// not cached by default.
	CacheTTL time.Duration

	// Timeout overrides the fetcher default for this call.
	Timeout time.Duration
}

// Response is a successful fetch.
type Response struct {
	Payload  []byte
	FinalURL string
	Cached   bool
}

// Fetcher performs the actual HTTP traffic.
type Fetcher struct {
	client *http.Client
	sem    *semaphore.Weighted
	meter  *Meter
	cache  *Cache
	cfg    Config
	logger zerolog.Logger
}

// New creates a fetcher. cache may be nil.
func New(cfg Config, cache *Cache, logger zerolog.Logger) *Fetcher {
	def := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = def.Concurrency
	}
	if cfg.WindowRequests <= 0 {
		cfg.WindowRequests = def.WindowRequests
	}
	if cfg.Window <= 0 {
		cfg.Window = def.Window
	}
	if cfg.AcceptLanguage == "" {
		cfg.AcceptLanguage = def.AcceptLanguage
	}

	return &Fetcher{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		sem:    semaphore.NewWeighted(cfg.Concurrency),
		meter:  NewMeter(cfg.WindowRequests, cfg.Window),
		cache:  cache,
		cfg:    cfg,
		logger: logger.With().Str("component", "fetch").Logger(),
	}
}

// Error-page markers. IMDb serves these with a 200 when it is rate
// limiting an address.
var blockMarkers = []string{
	"Houston, we have a problem",
	"reload the page",
}

var privacyMarkers = []string{
	"This list is not public",
	"this list is private",
}

// Fetch retrieves a URL and classifies the outcome. It returns one of
// the typed sentinels from the types package on privacy pages, error
// pages that persist through retry, and transport failures.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, opts Options) (*Response, error) {
	if opts.Method == "" {
		opts.Method = http.MethodGet
	}

	key := CacheKey{URL: rawURL, Language: opts.Language, Country: opts.Country, Method: opts.Method}
	if f.cache != nil && opts.CacheTTL > 0 {
		if payload, finalURL, ok := f.cache.Get(ctx, key); ok {
			return &Response{Payload: payload, FinalURL: finalURL, Cached: true}, nil
		}
	}

	if err := f.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrNetwork, err)
	}
	defer f.sem.Release(1)

	if !f.meter.Allow() {
		f.logger.Debug().Str("url", rawURL).Msg("Rate window saturated, waiting")
	}
	if err := f.meter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrNetwork, err)
	}

	reqID := uuid.NewString()
	log := f.logger.With().Str("requestId", reqID).Str("url", rawURL).Logger()

	var resp *Response
	err := retry.Do(
		func() error {
			r, err := f.attempt(ctx, rawURL, opts)
			if err != nil {
				return err
			}
			resp = r
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(2),
		retry.LastErrorOnly(true),
		// Blocked pages clear after a short pause more often than not.
		retry.DelayType(func(_ uint, _ error, _ *retry.Config) time.Duration {
			return time.Duration(500+rand.Intn(1500)) * time.Millisecond
		}),
		retry.RetryIf(func(err error) bool {
			return err == errBlockedPage
		}),
	)
	if err != nil {
		if err == errBlockedPage {
			log.Warn().Msg("IMDb error page persisted through retry")
			f.purge(ctx, key)
			return nil, types.ErrFatal
		}
		if types.IsSentinel(err) {
			if err == types.ErrPrivacy {
				f.purge(ctx, key)
			}
			return nil, err
		}
		log.Debug().Err(err).Msg("Fetch failed")
		return nil, fmt.Errorf("%w: %v", types.ErrNetwork, err)
	}

	if f.cache != nil && opts.CacheTTL > 0 {
		if err := f.cache.Set(ctx, key, resp.Payload, resp.FinalURL, opts.CacheTTL); err != nil {
			log.Warn().Err(err).Msg("Cache write failed")
		}
	}

	return resp, nil
}

// errBlockedPage is internal to the retry loop.
var errBlockedPage = fmt.Errorf("imdb error page")

func (f *Fetcher) attempt(ctx context.Context, rawURL string, opts Options) (*Response, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = f.cfg.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, opts.Method, rawURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", randomUserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/json;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", acceptLanguage(opts.Language, opts.Country, f.cfg.AcceptLanguage))
	// Compressed transfer keeps the megabyte-class pages under 200 KB.
	req.Header.Set("Accept-Encoding", "gzip, deflate")

	httpResp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode == http.StatusForbidden || httpResp.StatusCode == http.StatusNotFound {
		if isUserScoped(rawURL) {
			return nil, types.ErrPrivacy
		}
		return nil, fmt.Errorf("status %d", httpResp.StatusCode)
	}
	if httpResp.StatusCode >= 500 {
		return nil, errBlockedPage
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", httpResp.StatusCode)
	}

	payload, err := decodeBody(httpResp)
	if err != nil {
		return nil, err
	}

	body := string(payload)
	for _, marker := range blockMarkers {
		if strings.Contains(body, marker) {
			return nil, errBlockedPage
		}
	}
	if isUserScoped(rawURL) {
		for _, marker := range privacyMarkers {
			if strings.Contains(body, marker) {
				return nil, types.ErrPrivacy
			}
		}
	}

	finalURL := rawURL
	if httpResp.Request != nil && httpResp.Request.URL != nil {
		finalURL = httpResp.Request.URL.String()
	}

	return &Response{Payload: payload, FinalURL: finalURL}, nil
}

func (f *Fetcher) purge(ctx context.Context, key CacheKey) {
	if f.cache == nil {
		return
	}
	if err := f.cache.Delete(ctx, key); err != nil {
		f.logger.Warn().Err(err).Str("url", key.URL).Msg("Cache purge failed")
	}
}

func decodeBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body
	switch strings.ToLower(resp.Header.Get("Content-Encoding")) {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		reader = gz
	case "deflate":
		fl := flate.NewReader(resp.Body)
		defer fl.Close()
		reader = fl
	}
	return io.ReadAll(reader)
}

// isUserScoped reports whether privacy semantics apply: only list and
// user endpoints can be unpublished.
func isUserScoped(rawURL string) bool {
	return strings.Contains(rawURL, "/list/") || strings.Contains(rawURL, "/user/")
}

// acceptLanguage derives the header from the request tags. A language
// with a country becomes "xx-CC,xx;q=0.8".
func acceptLanguage(language, country, fallback string) string {
	language = strings.TrimSpace(strings.ToLower(language))
	country = strings.TrimSpace(strings.ToUpper(country))
	if language == "" {
		return fallback
	}
	if country == "" {
		return fmt.Sprintf("%s;q=0.9", language)
	}
	return fmt.Sprintf("%s-%s,%s;q=0.8", language, country, language)
}
