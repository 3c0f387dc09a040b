package fs

import (
	"fmt"
	"strings"

	"github.com/fwojciec/tgfeed"
)

// RenderMarkdown renders a content list as markdown, one block per item.
func RenderMarkdown(contents tgfeed.Contents) string {
	blocks := make([]string, 0, len(contents))
	for _, c := range contents {
		if block := renderBlock(c); block != "" {
			blocks = append(blocks, block)
		}
	}
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

func renderBlock(c tgfeed.Content) string {
	switch c := c.(type) {
	case tgfeed.Text:
		return strings.TrimSpace(c.Content)
	case tgfeed.Photo:
		return fmt.Sprintf("![photo](%s)", c.URL)
	case tgfeed.Video:
		return fmt.Sprintf("[![video %s](%s)](%s)", c.Duration, c.Thumbnail, c.URL)
	case tgfeed.Voice:
		return fmt.Sprintf("[voice %s](%s)", c.Duration, c.URL)
	case tgfeed.Document:
		title := strings.Join(c.Title, ", ")
		if title == "" {
			title = "document"
		}
		s := fmt.Sprintf("[%s](%s)", title, c.URL)
		if len(c.Size) > 0 {
			s += " (" + strings.Join(c.Size, ", ") + ")"
		}
		return s
	case tgfeed.Location:
		return fmt.Sprintf("[location %s, %s](%s)", c.Latitude, c.Longitude, c.URL)
	case tgfeed.Poll:
		var b strings.Builder
		fmt.Fprintf(&b, "**%s** (%s)\n", c.Question, c.Type)
		for _, o := range c.Options {
			fmt.Fprintf(&b, "\n- %s %s", o.Percent, o.Value)
		}
		return b.String()
	case tgfeed.UnsupportedMedia:
		return fmt.Sprintf("[view in Telegram](%s)", c.URL)
	}
	return ""
}
