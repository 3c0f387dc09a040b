package mock

import (
	"context"
	"net/url"

	"github.com/fwojciec/tgfeed"
)

var _ tgfeed.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of tgfeed.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, rawURL string, params url.Values) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, rawURL string, params url.Values) (string, error) {
	return f.FetchFn(ctx, rawURL, params)
}
