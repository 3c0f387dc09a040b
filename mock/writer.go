package mock

import (
	"context"
	"io"

	"github.com/fwojciec/tgfeed"
)

var (
	_ tgfeed.FeedWriter    = (*FeedWriter)(nil)
	_ tgfeed.MessageWriter = (*MessageWriter)(nil)
)

// FeedWriter is a mock implementation of tgfeed.FeedWriter.
type FeedWriter struct {
	WriteFeedFn func(w io.Writer, feed *tgfeed.Feed) error
}

func (fw *FeedWriter) WriteFeed(w io.Writer, feed *tgfeed.Feed) error {
	return fw.WriteFeedFn(w, feed)
}

// MessageWriter is a mock implementation of tgfeed.MessageWriter.
type MessageWriter struct {
	WriteMessagesFn func(ctx context.Context, feed *tgfeed.Feed) error
}

func (w *MessageWriter) WriteMessages(ctx context.Context, feed *tgfeed.Feed) error {
	return w.WriteMessagesFn(ctx, feed)
}
