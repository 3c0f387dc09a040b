package crawl_test

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/fwojciec/tgfeed"
	"github.com/fwojciec/tgfeed/crawl"
	tghttp "github.com/fwojciec/tgfeed/http"
	"github.com/fwojciec/tgfeed/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryFetcher_Fetch(t *testing.T) {
	t.Parallel()

	noDelay := crawl.WithRetryDelays([]time.Duration{0, 0, 0})

	t.Run("retries transient errors until success", func(t *testing.T) {
		t.Parallel()

		var attempts int
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string, params url.Values) (string, error) {
				attempts++
				assert.Equal(t, "42", params.Get("before"))
				if attempts < 3 {
					return "", errors.New("connection reset")
				}
				return "<html></html>", nil
			},
		}

		var logged []string
		fetcher := crawl.NewRetryFetcher(inner, noDelay, crawl.WithRetryLogger(func(format string, args ...any) {
			logged = append(logged, format)
		}))

		html, err := fetcher.Fetch(context.Background(), "https://t.me/s/durov", url.Values{"before": {"42"}})

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 3, attempts)
		assert.Len(t, logged, 2)
	})

	t.Run("gives up after all delays", func(t *testing.T) {
		t.Parallel()

		var attempts int
		inner := &mock.Fetcher{
			FetchFn: func(context.Context, string, url.Values) (string, error) {
				attempts++
				return "", &tghttp.StatusError{StatusCode: 503}
			},
		}

		_, err := crawl.NewRetryFetcher(inner, noDelay).Fetch(context.Background(), "https://t.me/s/durov", nil)

		require.Error(t, err)
		assert.Equal(t, 4, attempts)
	})

	t.Run("does not retry client errors", func(t *testing.T) {
		t.Parallel()

		var attempts int
		inner := &mock.Fetcher{
			FetchFn: func(context.Context, string, url.Values) (string, error) {
				attempts++
				return "", &tghttp.StatusError{StatusCode: 404}
			},
		}

		_, err := crawl.NewRetryFetcher(inner, noDelay).Fetch(context.Background(), "https://t.me/s/missing", nil)

		require.Error(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("does not retry invalid requests", func(t *testing.T) {
		t.Parallel()

		var attempts int
		inner := &mock.Fetcher{
			FetchFn: func(context.Context, string, url.Values) (string, error) {
				attempts++
				return "", tgfeed.Errorf(tgfeed.EINVALID, "bad url")
			},
		}

		_, err := crawl.NewRetryFetcher(inner, noDelay).Fetch(context.Background(), "::", nil)

		assert.Equal(t, tgfeed.EINVALID, tgfeed.ErrorCode(err))
		assert.Equal(t, 1, attempts)
	})

	t.Run("stops when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		inner := &mock.Fetcher{
			FetchFn: func(context.Context, string, url.Values) (string, error) {
				cancel()
				return "", errors.New("connection reset")
			},
		}

		_, err := crawl.NewRetryFetcher(inner, crawl.WithRetryDelays([]time.Duration{time.Hour})).
			Fetch(ctx, "https://t.me/s/durov", nil)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
