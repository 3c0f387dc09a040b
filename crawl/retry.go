package crawl

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/fwojciec/tgfeed"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, rawURL string, params url.Values) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetryDelays calls fetch until it succeeds, making one attempt
// more than there are delays and sleeping delays[i] before retry i+1.
// Errors that report themselves as not retryable (a Retryable() bool method
// returning false, e.g. an HTTP 404) are returned immediately.
// The logger function, if provided, is called for each retry attempt.
func FetchWithRetryDelays(ctx context.Context, rawURL string, params url.Values, fetch FetchFunc, logger LogFunc, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx, rawURL, params)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if !retryable(err) {
			break
		}

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		// Check context before sleeping
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		if logger != nil {
			logger("retry %s (attempt %d): %v", rawURL, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if tgfeed.ErrorCode(err) == tgfeed.EINVALID {
		return false
	}
	var r interface{ Retryable() bool }
	if errors.As(err, &r) {
		return r.Retryable()
	}
	return true
}

// Ensure RetryFetcher implements tgfeed.Fetcher.
var _ tgfeed.Fetcher = (*RetryFetcher)(nil)

// RetryFetcher retries a Fetcher with backoff.
type RetryFetcher struct {
	next   tgfeed.Fetcher
	delays []time.Duration
	logger LogFunc
}

// RetryOption configures a RetryFetcher.
type RetryOption func(*RetryFetcher)

// WithRetryDelays overrides DefaultRetryDelays.
func WithRetryDelays(delays []time.Duration) RetryOption {
	return func(f *RetryFetcher) {
		f.delays = delays
	}
}

// WithRetryLogger sets the function notified before every retry.
func WithRetryLogger(fn LogFunc) RetryOption {
	return func(f *RetryFetcher) {
		f.logger = fn
	}
}

// NewRetryFetcher creates a RetryFetcher wrapping next.
func NewRetryFetcher(next tgfeed.Fetcher, opts ...RetryOption) *RetryFetcher {
	f := &RetryFetcher{
		next:   next,
		delays: DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *RetryFetcher) Fetch(ctx context.Context, rawURL string, params url.Values) (string, error) {
	return FetchWithRetryDelays(ctx, rawURL, params, f.next.Fetch, f.logger, f.delays)
}
