package inat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/naturkoll/vocabbuild/internal/config"
)

// RetryPolicy describes how a throttled counts page is retried.
// Keeping the policy a value makes it declarative and unit-testable
// without real time delays.
type RetryPolicy struct {
	// MaxAttempts is the retry budget for a single page. Exceeding it is
	// fatal for the whole run.
	MaxAttempts int

	// InitialBackoff is the wait after the first throttling response.
	InitialBackoff time.Duration
}

// Backoff returns the wait before retry number attempt (1-based):
// InitialBackoff * 2^(attempt-1).
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return p.InitialBackoff << (attempt - 1)
}

// Client issues requests against an iNaturalist-compatible API.
// All requests are strictly sequential; the client never fans out, and all
// waiting is synchronous sleep through the injected sleeper.
//
// Design decision: The sleeper is injectable (WithSleeper) so backoff and
// politeness behavior is testable without real delays, mirroring how the
// HTTP client itself is injectable for httptest servers.
type Client struct {
	// httpClient is the underlying HTTP client.
	httpClient *http.Client

	// baseURL is the API base, without trailing slash.
	baseURL string

	// userAgent is sent with every request.
	userAgent string

	// placeID scopes counts and region-scoped observation queries.
	placeID int

	// locale selects localized common names.
	locale string

	// perPage is the species-counts page size.
	perPage int

	// maxPages caps counts pagination per source taxon.
	maxPages int

	// pageDelay is the politeness delay between counts pages.
	pageDelay time.Duration

	// chunkDelay is the politeness delay between taxa detail batches.
	chunkDelay time.Duration

	// cooldown is the single fixed wait after throttling during
	// observation lookup.
	cooldown time.Duration

	// taxaBatchSize is the number of ids per batched taxa request.
	taxaBatchSize int

	// retry is the counts-page throttling policy.
	retry RetryPolicy

	// sleep performs all waiting. Defaults to time.Sleep.
	sleep func(time.Duration)

	// logger for per-page and per-retry progress lines.
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL sets the API base URL. A trailing slash is trimmed.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = trimTrailingSlash(baseURL)
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithPlaceID sets the region identifier for scoped queries.
func WithPlaceID(placeID int) Option {
	return func(c *Client) {
		c.placeID = placeID
	}
}

// WithLocale sets the locale for localized common names.
func WithLocale(locale string) Option {
	return func(c *Client) {
		c.locale = locale
	}
}

// WithPerPage sets the species-counts page size.
func WithPerPage(perPage int) Option {
	return func(c *Client) {
		c.perPage = perPage
	}
}

// WithMaxPages caps counts pagination per source taxon.
func WithMaxPages(maxPages int) Option {
	return func(c *Client) {
		c.maxPages = maxPages
	}
}

// WithPageDelay sets the politeness delay between counts pages.
func WithPageDelay(d time.Duration) Option {
	return func(c *Client) {
		c.pageDelay = d
	}
}

// WithChunkDelay sets the politeness delay between taxa batches.
func WithChunkDelay(d time.Duration) Option {
	return func(c *Client) {
		c.chunkDelay = d
	}
}

// WithObservationCooldown sets the fixed wait after throttling during
// observation lookup.
func WithObservationCooldown(d time.Duration) Option {
	return func(c *Client) {
		c.cooldown = d
	}
}

// WithTaxaBatchSize sets the number of ids per batched taxa request.
func WithTaxaBatchSize(n int) Option {
	return func(c *Client) {
		c.taxaBatchSize = n
	}
}

// WithRetryPolicy sets the counts-page throttling policy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) {
		c.retry = p
	}
}

// WithSleeper replaces the sleep function. Tests inject a recorder here so
// backoff behavior is observable without real delays.
func WithSleeper(sleep func(time.Duration)) Option {
	return func(c *Client) {
		c.sleep = sleep
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client with defaults from the config package,
// overridden by the given options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient:    &http.Client{Timeout: 60 * time.Second},
		baseURL:       config.DefaultAPIBaseURL,
		userAgent:     config.DefaultUserAgent,
		placeID:       config.DefaultPlaceID,
		locale:        config.DefaultLocale,
		perPage:       config.DefaultPerPage,
		maxPages:      config.DefaultMaxPages,
		pageDelay:     config.DefaultPageDelay,
		chunkDelay:    config.DefaultChunkDelay,
		cooldown:      config.DefaultObservationCooldown,
		taxaBatchSize: config.DefaultTaxaBatchSize,
		retry: RetryPolicy{
			MaxAttempts:    config.DefaultMaxRetries,
			InitialBackoff: config.DefaultInitialBackoff,
		},
		sleep:  time.Sleep,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// OptionsFromConfig maps a validated Config onto client options. The CLI
// uses this so the flag/file surface stays in the config package and the
// client keeps a plain options API.
func OptionsFromConfig(cfg *config.Config) []Option {
	return []Option{
		WithBaseURL(cfg.APIBaseURL),
		WithUserAgent(cfg.UserAgent),
		WithPlaceID(cfg.PlaceID),
		WithLocale(cfg.Locale),
		WithPerPage(cfg.PerPage),
		WithMaxPages(cfg.MaxPages),
		WithPageDelay(cfg.PageDelay),
		WithChunkDelay(cfg.ChunkDelay),
		WithObservationCooldown(cfg.ObservationCooldown),
		WithTaxaBatchSize(cfg.TaxaBatchSize),
		WithRetryPolicy(RetryPolicy{
			MaxAttempts:    cfg.MaxRetries,
			InitialBackoff: cfg.InitialBackoff,
		}),
	}
}

// get issues a GET request against path with the given query.
func (c *Client) get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

// decodeJSON decodes the response body into v and closes it.
func decodeJSON(resp *http.Response, v any) error {
	defer drainAndClose(resp)
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// drainAndClose discards any unread body so the connection can be reused.
func drainAndClose(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
	_ = resp.Body.Close()
}

// trimTrailingSlash normalizes a base URL.
func trimTrailingSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
