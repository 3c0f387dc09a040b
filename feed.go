package tgfeed

import (
	"context"
	"io"
)

// Feed is a channel's messages ready for serialization.
type Feed struct {
	ChannelID string
	Channel   ChannelInfo
	// Messages may be in any order; writers order them as their format needs.
	Messages []*Message
}

// FeedWriter serializes a feed to a syndication format.
type FeedWriter interface {
	WriteFeed(w io.Writer, feed *Feed) error
}

// MessageWriter writes messages to an archive.
type MessageWriter interface {
	WriteMessages(ctx context.Context, feed *Feed) error
}
