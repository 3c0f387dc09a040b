package etree

import (
	"fmt"
	"html"
	"strings"

	"github.com/fwojciec/tgfeed"
)

// RenderHTML renders a content list as an HTML fragment for feed readers.
func RenderHTML(contents tgfeed.Contents) string {
	var b strings.Builder
	for _, c := range contents {
		renderContent(&b, c)
	}
	return b.String()
}

func renderContent(b *strings.Builder, c tgfeed.Content) {
	esc := html.EscapeString
	switch c := c.(type) {
	case tgfeed.Text:
		fmt.Fprintf(b, "<p>%s</p>", strings.ReplaceAll(esc(c.Content), "\n", "<br/>"))
	case tgfeed.Photo:
		fmt.Fprintf(b, `<p><img src="%s"/></p>`, esc(c.URL))
	case tgfeed.Video:
		fmt.Fprintf(b, `<p><a href="%s"><img src="%s"/></a><br/>Video %s</p>`, esc(c.URL), esc(c.Thumbnail), esc(c.Duration))
	case tgfeed.Voice:
		fmt.Fprintf(b, `<p><audio controls="controls" src="%s"></audio><br/>Voice %s</p>`, esc(c.URL), esc(c.Duration))
	case tgfeed.Document:
		title := strings.Join(c.Title, ", ")
		if title == "" {
			title = "Document"
		}
		fmt.Fprintf(b, `<p><a href="%s">%s</a>`, esc(c.URL), esc(title))
		if len(c.Size) > 0 {
			fmt.Fprintf(b, " (%s)", esc(strings.Join(c.Size, ", ")))
		}
		b.WriteString("</p>")
	case tgfeed.Location:
		fmt.Fprintf(b, `<p><a href="%s">Location %s, %s</a></p>`, esc(c.URL), esc(c.Latitude), esc(c.Longitude))
	case tgfeed.Poll:
		fmt.Fprintf(b, "<p><b>%s</b><br/>%s</p><ul>", esc(c.Question), esc(c.Type))
		for _, o := range c.Options {
			fmt.Fprintf(b, "<li>%s %s</li>", esc(o.Percent), esc(o.Value))
		}
		b.WriteString("</ul>")
	case tgfeed.UnsupportedMedia:
		fmt.Fprintf(b, `<p><a href="%s">View in Telegram</a></p>`, esc(c.URL))
	}
}
