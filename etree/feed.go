// Package etree renders channel feeds as RSS 2.0 documents.
package etree

import (
	"cmp"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/beevik/etree"
	"github.com/fwojciec/tgfeed"
)

// Ensure FeedWriter implements tgfeed.FeedWriter.
var _ tgfeed.FeedWriter = (*FeedWriter)(nil)

// DefaultTitleLength is the number of characters of message text used as
// an item title.
const DefaultTitleLength = 80

const dublinCoreNS = "http://purl.org/dc/elements/1.1/"

// FeedWriter writes RSS 2.0. Items are emitted newest first by message
// number whatever the order of the feed's messages.
type FeedWriter struct {
	titleLength int
	indent      int
}

// Option configures a FeedWriter.
type Option func(*FeedWriter)

// WithTitleLength sets how many characters of the first text block become
// an item title.
func WithTitleLength(n int) Option {
	return func(w *FeedWriter) {
		w.titleLength = n
	}
}

// WithIndent sets the number of spaces per nesting level. Zero writes the
// document on one line.
func WithIndent(n int) Option {
	return func(w *FeedWriter) {
		w.indent = n
	}
}

// NewFeedWriter creates a FeedWriter.
func NewFeedWriter(opts ...Option) *FeedWriter {
	w := &FeedWriter{
		titleLength: DefaultTitleLength,
		indent:      2,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteFeed writes feed as an RSS document to out.
func (fw *FeedWriter) WriteFeed(out io.Writer, feed *tgfeed.Feed) error {
	if feed.ChannelID == "" {
		return tgfeed.Errorf(tgfeed.EINVALID, "feed channel id required")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rss := doc.CreateElement("rss")
	rss.CreateAttr("version", "2.0")
	rss.CreateAttr("xmlns:dc", dublinCoreNS)

	link := tgfeed.PublicURL + "/" + feed.ChannelID
	title := feed.Channel.Title
	if title == "" {
		title = feed.ChannelID
	}

	ch := rss.CreateElement("channel")
	ch.CreateElement("title").SetText(title)
	ch.CreateElement("link").SetText(link)
	ch.CreateElement("description").SetText(feed.Channel.Description)
	if feed.Channel.Image != "" {
		img := ch.CreateElement("image")
		img.CreateElement("url").SetText(feed.Channel.Image)
		img.CreateElement("title").SetText(title)
		img.CreateElement("link").SetText(link)
	}

	msgs := slices.Clone(feed.Messages)
	slices.SortStableFunc(msgs, func(a, b *tgfeed.Message) int {
		return compareNumbers(b.Number, a.Number)
	})
	for _, msg := range msgs {
		fw.writeItem(ch, feed.ChannelID, msg)
	}

	if fw.indent > 0 {
		doc.Indent(fw.indent)
	}
	_, err := doc.WriteTo(out)
	return err
}

func (fw *FeedWriter) writeItem(ch *etree.Element, channelID string, msg *tgfeed.Message) {
	link := msg.URL(channelID)

	item := ch.CreateElement("item")
	item.CreateElement("title").SetText(fw.itemTitle(msg))
	item.CreateElement("link").SetText(link)
	guid := item.CreateElement("guid")
	guid.CreateAttr("isPermaLink", "true")
	guid.SetText(link)
	if date, err := time.Parse(time.RFC3339, msg.Date); err == nil {
		item.CreateElement("pubDate").SetText(date.Format(time.RFC1123Z))
	}
	item.CreateElement("dc:creator").SetText(msg.Author)
	item.CreateElement("description").SetText(RenderHTML(msg.Contents))
}

// itemTitle returns the first line of the first text block, shortened to
// the title length, or a placeholder naming the message.
func (fw *FeedWriter) itemTitle(msg *tgfeed.Message) string {
	for _, c := range msg.Contents {
		text, ok := c.(tgfeed.Text)
		if !ok {
			continue
		}
		line, _, _ := strings.Cut(strings.TrimSpace(text.Content), "\n")
		if line == "" {
			continue
		}
		return truncate(line, fw.titleLength)
	}
	return "Message " + msg.Number
}

func truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n])) + "…"
}

// compareNumbers orders message numbers numerically. Non-numeric numbers
// sort after numeric ones, by string.
func compareNumbers(a, b string) int {
	x, errA := strconv.Atoi(a)
	y, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return cmp.Compare(x, y)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a, b)
}
