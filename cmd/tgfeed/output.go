package main

import (
	"encoding/json"
	"io"

	"github.com/fwojciec/tgfeed"
	"github.com/fwojciec/tgfeed/etree"
)

// feedOutput is the JSON rendering of a feed.
type feedOutput struct {
	Channel  string             `json:"channel"`
	Info     tgfeed.ChannelInfo `json:"info"`
	Next     tgfeed.Cursor      `json:"next"`
	Messages []*tgfeed.Message  `json:"messages"`
}

// writeFeed renders a feed as JSON or RSS.
func writeFeed(w io.Writer, format string, feed *tgfeed.Feed, next tgfeed.Cursor) error {
	switch format {
	case "rss":
		return etree.NewFeedWriter().WriteFeed(w, feed)
	case "json":
		msgs := feed.Messages
		if msgs == nil {
			msgs = []*tgfeed.Message{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(feedOutput{
			Channel:  feed.ChannelID,
			Info:     feed.Channel,
			Next:     next,
			Messages: msgs,
		})
	}
	return tgfeed.Errorf(tgfeed.EINVALID, "unsupported format %q", format)
}

// describeCursor renders a cursor for humans.
func describeCursor(c tgfeed.Cursor) string {
	switch {
	case c == tgfeed.CursorLatest:
		return "latest"
	case c.Exhausted():
		return "feed end"
	}
	return "before " + string(c)
}
