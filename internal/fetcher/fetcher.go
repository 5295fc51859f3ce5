// Package fetcher retrieves listing and document pages over HTTP.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jonesrussell/lingcrawl/internal/logger"
)

// StatusError reports a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected http status %d for %s", e.StatusCode, e.URL)
}

// Config configures the fetcher.
type Config struct {
	// UserAgent is set on every request.
	UserAgent string
	// Timeout bounds each request.
	Timeout time.Duration
	// MaxBodySize caps how many response bytes are read.
	MaxBodySize int64
	// MaxRetries is the number of re-attempts after a failed fetch.
	MaxRetries int
	// RetryDelay is the pause between re-attempts.
	RetryDelay time.Duration
}

// Fetcher performs single-page GET requests. The source site is known to cut
// connections mid-response; a truncated read yields the partial body rather
// than an error, since the page content ahead of the cut usually parses.
type Fetcher struct {
	httpClient  *http.Client
	log         logger.Interface
	userAgent   string
	maxBodySize int64
	maxRetries  int
	retryDelay  time.Duration
}

// New creates a fetcher with the given configuration.
func New(cfg Config, log logger.Interface) *Fetcher {
	return &Fetcher{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		log:         log,
		userAgent:   cfg.UserAgent,
		maxBodySize: cfg.MaxBodySize,
		maxRetries:  cfg.MaxRetries,
		retryDelay:  cfg.RetryDelay,
	}
}

// Fetch retrieves the page at the given URL. Transport failures and non-2xx
// statuses are retried up to MaxRetries times before the error propagates.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if attempt > 0 {
			f.log.Warn("retrying fetch",
				"url", pageURL,
				"attempt", attempt,
				"error", lastErr.Error(),
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(f.retryDelay):
			}
		}

		body, err := f.fetchOnce(ctx, pageURL)
		if err == nil {
			return body, nil
		}
		lastErr = err
	}

	return nil, lastErr
}

// fetchOnce performs a single GET request.
func (f *Fetcher) fetchOnce(ctx context.Context, pageURL string) ([]byte, error) {
	req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if reqErr != nil {
		return nil, fmt.Errorf("create request: %w", reqErr)
	}

	req.Header.Set("User-Agent", f.userAgent)

	resp, doErr := f.httpClient.Do(req)
	if doErr != nil {
		return nil, fmt.Errorf("http fetch: %w", doErr)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	limited := io.LimitReader(resp.Body, f.maxBodySize)

	body, readErr := io.ReadAll(limited)
	if readErr != nil {
		if isTruncated(readErr) && len(body) > 0 {
			f.log.Warn("truncated response, using partial body",
				"url", pageURL,
				"bytes", len(body),
			)
			return body, nil
		}
		return nil, fmt.Errorf("read response body: %w", readErr)
	}

	return body, nil
}

// isTruncated reports whether a body read error means the server closed the
// connection before delivering the announced content length.
func isTruncated(err error) bool {
	return errors.Is(err, io.ErrUnexpectedEOF) ||
		strings.Contains(err.Error(), "unexpected EOF")
}
