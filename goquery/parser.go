package goquery

import (
	"strings"

	"github.com/fwojciec/tgfeed"
)

var _ tgfeed.PageParser = (*Parser)(nil)

// Parser splits a preview document into message fragments and reads the
// pagination control and channel header.
type Parser struct {
	message     tgfeed.FieldSelector
	cursor      tgfeed.FieldSelector
	title       tgfeed.FieldSelector
	description tgfeed.FieldSelector
	image       tgfeed.FieldSelector
}

// NewParser creates a Parser, resolving its selectors from the registry.
// Returns EUNKNOWNFIELD if the registry lacks a page-level field.
func NewParser(registry tgfeed.FieldRegistry) (*Parser, error) {
	p := &Parser{}
	for field, dst := range map[tgfeed.Field]*tgfeed.FieldSelector{
		tgfeed.FieldMessage:            &p.message,
		tgfeed.FieldCursor:             &p.cursor,
		tgfeed.FieldChannelTitle:       &p.title,
		tgfeed.FieldChannelDescription: &p.description,
		tgfeed.FieldChannelImage:       &p.image,
	} {
		s, err := registry.Lookup(field)
		if err != nil {
			return nil, err
		}
		*dst = s
	}
	return p, nil
}

// ParsePage parses a preview document. Fragments are returned in document
// order. A missing pagination control, or one without a token, yields
// tgfeed.CursorEnd.
func (p *Parser) ParsePage(html string) (*tgfeed.Page, error) {
	root, err := ParseFragment(html)
	if err != nil {
		return nil, err
	}

	page := &tgfeed.Page{
		Fragments: root.SelectAll(p.message.Query),
		Next:      tgfeed.CursorEnd,
	}

	if token, ok := p.cursor.ReadOne(root); ok {
		if token = strings.TrimSpace(token); token != "" {
			page.Next = tgfeed.Cursor(token)
		}
	}

	page.Channel = tgfeed.ChannelInfo{
		Title:       readTrimmed(p.title, root),
		Description: readTrimmed(p.description, root),
		Image:       readTrimmed(p.image, root),
	}

	return page, nil
}

func readTrimmed(s tgfeed.FieldSelector, root tgfeed.Fragment) string {
	v, _ := s.ReadOne(root)
	return strings.TrimSpace(v)
}
