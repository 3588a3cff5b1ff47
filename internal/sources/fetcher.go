package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/jonesrussell/goleads/internal/logger"
)

// Fetch limits.
const (
	defaultTimeout   = 30 * time.Second
	defaultRateLimit = 0.5 // requests per second against one portal
	maxBodyBytes     = 5 << 20
)

// Fetcher is a polite HTTP client shared by the portal scrapers: one rate
// limiter per Fetcher instance, fixed User-Agent, capped response bodies.
type Fetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
	logger    logger.Logger
}

// FetcherConfig controls Fetcher construction. Zero values fall back to
// defaults.
type FetcherConfig struct {
	Timeout   time.Duration
	RateLimit float64
	UserAgent string
}

// NewFetcher creates a Fetcher.
func NewFetcher(cfg FetcherConfig, log logger.Logger) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = defaultRateLimit
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "Mozilla/5.0 (compatible; goleads/1.0)"
	}

	return &Fetcher{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter:   rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		userAgent: cfg.UserAgent,
		logger:    log,
	}
}

// Get fetches a URL, honoring the rate limiter and context.
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept-Language", "cs,en;q=0.8")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body %s: %w", url, err)
	}

	f.logger.Debug("fetched",
		logger.String("url", url),
		logger.Int("bytes", len(body)),
		logger.Duration("took", time.Since(start)),
	)
	return body, nil
}

// UserAgent exposes the configured User-Agent for scrapers that run their
// own colly collector.
func (f *Fetcher) UserAgent() string {
	return f.userAgent
}
