// Package channel paginates a channel's public preview backward in time and
// decodes the collected message fragments.
package channel

import (
	"context"
	"net/url"
	"slices"

	"github.com/fwojciec/tgfeed"
)

// DefaultBaseURL is the root of the public channel preview.
const DefaultBaseURL = tgfeed.PublicURL + "/s"

// Pager walks preview pages from a cursor toward older history.
// It holds no per-channel state and may be shared between sessions.
type Pager struct {
	fetcher tgfeed.Fetcher
	parser  tgfeed.PageParser
	baseURL string
}

// PagerOption configures a Pager.
type PagerOption func(*Pager)

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(u string) PagerOption {
	return func(p *Pager) {
		p.baseURL = u
	}
}

// NewPager creates a Pager.
func NewPager(fetcher tgfeed.Fetcher, parser tgfeed.PageParser, opts ...PagerOption) *Pager {
	p := &Pager{
		fetcher: fetcher,
		parser:  parser,
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Batch is the outcome of one pagination call.
type Batch struct {
	// Fragments holds the message fragments of every fetched page. Each
	// page is reversed from document order and pages follow fetch order.
	Fragments []tgfeed.Fragment

	// Next is the cursor to resume from, CursorEnd once history is
	// exhausted.
	Next tgfeed.Cursor

	// Pages is the number of pages fetched.
	Pages int

	// Channel is the first non-empty channel header seen.
	Channel tgfeed.ChannelInfo
}

// URL returns the preview URL of a channel.
func (p *Pager) URL(channelID string) string {
	return p.baseURL + "/" + url.PathEscape(channelID)
}

// Fetch fetches up to pages pages of channelID starting before cursor.
// It stops early, keeping the pages collected so far, when a page has no
// pagination token.
//
// Returns EFEEDEND without fetching if cursor is already exhausted. Any
// fetch or parse error aborts the call and discards collected pages, so a
// caller that only advances its cursor on success never skips history.
func (p *Pager) Fetch(ctx context.Context, channelID string, cursor tgfeed.Cursor, pages int) (*Batch, error) {
	if cursor.Exhausted() {
		return nil, tgfeed.Errorf(tgfeed.EFEEDEND, "channel %q has no earlier messages", channelID)
	}
	if pages < 1 {
		return nil, tgfeed.Errorf(tgfeed.EINVALID, "pages must be at least 1, got %d", pages)
	}

	rawURL := p.URL(channelID)
	batch := &Batch{Next: cursor}

	for batch.Pages < pages {
		params := url.Values{}
		if batch.Next != tgfeed.CursorLatest {
			params.Set("before", string(batch.Next))
		}

		html, err := p.fetcher.Fetch(ctx, rawURL, params)
		if err != nil {
			return nil, err
		}
		page, err := p.parser.ParsePage(html)
		if err != nil {
			return nil, err
		}

		fragments := slices.Clone(page.Fragments)
		slices.Reverse(fragments)
		batch.Fragments = append(batch.Fragments, fragments...)
		batch.Pages++
		batch.Next = page.Next
		if batch.Channel == (tgfeed.ChannelInfo{}) {
			batch.Channel = page.Channel
		}

		if page.Next.Exhausted() {
			break
		}
	}

	return batch, nil
}
