package mock

import (
	"github.com/fwojciec/tgfeed"
)

var _ tgfeed.PageParser = (*PageParser)(nil)

// PageParser is a mock implementation of tgfeed.PageParser.
type PageParser struct {
	ParsePageFn func(html string) (*tgfeed.Page, error)
}

func (p *PageParser) ParsePage(html string) (*tgfeed.Page, error) {
	return p.ParsePageFn(html)
}
