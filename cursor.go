package tgfeed

import (
	"context"
	"net/url"
)

// PublicURL is the origin of the public channel preview.
const PublicURL = "https://t.me"

// Cursor is an opaque backward-pagination token scraped from a preview page.
type Cursor string

const (
	// CursorLatest starts pagination from the newest page.
	CursorLatest Cursor = ""

	// CursorEnd marks that no earlier pages remain.
	CursorEnd Cursor = "0"
)

// Exhausted reports whether the cursor marks the end of the feed.
func (c Cursor) Exhausted() bool {
	return c == CursorEnd
}

// ChannelInfo is the channel header rendered on every preview page.
type ChannelInfo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Page is one parsed preview document.
type Page struct {
	// Fragments holds one handle per message bubble in document order.
	Fragments []Fragment

	// Next is the cursor for the page before this one. It is CursorEnd
	// when the pagination control is absent or carries no usable token.
	Next Cursor

	// Channel is the channel header, empty when the page has none.
	Channel ChannelInfo
}

// Fetcher is the transport collaborator.
type Fetcher interface {
	// Fetch retrieves the document at rawURL with the given query
	// parameters. Retry and backoff policy belong to the implementation.
	Fetch(ctx context.Context, rawURL string, params url.Values) (html string, err error)
}

// PageParser turns a raw preview document into message fragments and the
// next pagination cursor.
type PageParser interface {
	ParsePage(html string) (*Page, error)
}
