package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Mentallyspammed1/neonsearch/driver"
)

// FetcherConfig controls the per-source fetch step.
type FetcherConfig struct {
	Timeout     time.Duration
	MaxRetries  int
	BackoffBase time.Duration
	UserAgent   string
}

// DefaultFetcherConfig returns the production fetch settings.
func DefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		Timeout:     30 * time.Second,
		MaxRetries:  3,
		BackoffBase: 1 * time.Second,
		UserAgent:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
	}
}

// Fetcher drives the fetch-and-parse pipeline for one source: build the
// search URL, GET it with retry and backoff, hand the body to the
// driver's parser, cap the result at the per-source limit. Every
// failure degrades to an empty result; nothing a single source does can
// taint its siblings.
type Fetcher struct {
	client      *http.Client
	userAgent   string
	maxRetries  int
	backoffBase time.Duration
	logger      *zap.Logger
}

// NewFetcher creates a fetcher. The http.Client follows redirects and
// enforces the configured timeout on every request.
func NewFetcher(cfg FetcherConfig, logger *zap.Logger) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = 1 * time.Second
	}
	return &Fetcher{
		client:      &http.Client{Timeout: cfg.Timeout},
		userAgent:   cfg.UserAgent,
		maxRetries:  cfg.MaxRetries,
		backoffBase: cfg.BackoffBase,
		logger:      logger,
	}
}

// statusError marks a non-2xx response. Only 5xx responses count as
// transient; a 4xx is not going to change on retry.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.code)
}

func retryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= http.StatusInternalServerError
	}
	return true
}

// FetchHTML GETs url with a browser User-Agent, retrying transient
// failures with exponential backoff (base, 2x base, 4x base, ...). Any
// non-2xx status counts as a failure.
func (f *Fetcher) FetchHTML(ctx context.Context, url string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < f.maxRetries; attempt++ {
		body, err := f.fetchOnce(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if !retryable(err) {
			return "", fmt.Errorf("fetch %s failed: %w", url, err)
		}

		if attempt < f.maxRetries-1 {
			delay := f.backoffBase << attempt
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return "", ctx.Err()
			case <-timer.C:
			}
		}
	}
	return "", fmt.Errorf("fetch %s failed after %d attempts: %w", url, f.maxRetries, lastErr)
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &statusError{code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}
	return string(body), nil
}

// SearchSource runs the full pipeline for one source and never returns
// an error: a failed fetch or parse contributes nothing this round. A
// gif request against a video-only driver also contributes nothing.
func (f *Fetcher) SearchSource(ctx context.Context, d driver.Driver, contentType, query string, page, limit int) []driver.Video {
	var searchURL string
	switch contentType {
	case driver.TypeGif:
		gs, ok := d.(driver.GifSearcher)
		if !ok {
			return nil
		}
		searchURL = gs.GifURL(query, page)
	default:
		searchURL = d.VideoURL(query, page)
	}

	html, err := f.FetchHTML(ctx, searchURL)
	if err != nil {
		f.logger.Warn("source fetch failed",
			zap.String("source", d.Name()),
			zap.String("url", searchURL),
			zap.Error(err))
		return nil
	}

	var records []driver.Video
	if contentType == driver.TypeGif {
		records = d.(driver.GifSearcher).ParseGifs(html)
	} else {
		records = d.ParseVideos(html)
	}

	// The pipeline, not the driver, enforces the per-source cap.
	if len(records) > limit {
		records = records[:limit]
	}

	f.logger.Debug("source search completed",
		zap.String("source", d.Name()),
		zap.Int("results", len(records)))
	return records
}
