package mock

import (
	"github.com/fwojciec/tgfeed"
)

var _ tgfeed.Fragment = (*Fragment)(nil)

// Fragment is a mock implementation of tgfeed.Fragment.
type Fragment struct {
	SelectAllFn func(query string) []tgfeed.Fragment
	SelectOneFn func(query string) (tgfeed.Fragment, bool)
	AttrFn      func(name string) (string, bool)
	TextFn      func() string
}

func (f *Fragment) SelectAll(query string) []tgfeed.Fragment {
	return f.SelectAllFn(query)
}

func (f *Fragment) SelectOne(query string) (tgfeed.Fragment, bool) {
	return f.SelectOneFn(query)
}

func (f *Fragment) Attr(name string) (string, bool) {
	return f.AttrFn(name)
}

func (f *Fragment) Text() string {
	return f.TextFn()
}
