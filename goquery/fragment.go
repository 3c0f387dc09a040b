// Package goquery implements the markup-parsing collaborator on top of
// github.com/PuerkitoBio/goquery: fragment handles, the field selector
// registry, and the preview page parser.
package goquery

import (
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/tgfeed"
	"golang.org/x/net/html"
)

var _ tgfeed.Fragment = (*Fragment)(nil)

// Fragment is a tgfeed.Fragment backed by a goquery selection.
type Fragment struct {
	sel *goquery.Selection
}

// NewFragment wraps a selection. Only the first node of the selection is
// treated as the fragment root for attribute reads.
func NewFragment(sel *goquery.Selection) *Fragment {
	return &Fragment{sel: sel}
}

// ParseFragment parses an HTML snippet and returns its document root.
func ParseFragment(src string) (*Fragment, error) {
	node, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, tgfeed.Errorf(tgfeed.EINVALID, "failed to parse HTML: %v", err)
	}
	return NewFragment(goquery.NewDocumentFromNode(node).Selection), nil
}

// SelectAll returns every descendant matching query in document order.
func (f *Fragment) SelectAll(query string) []tgfeed.Fragment {
	matches := f.sel.FindMatcher(matcher(query))
	fragments := make([]tgfeed.Fragment, 0, matches.Length())
	matches.Each(func(_ int, s *goquery.Selection) {
		fragments = append(fragments, NewFragment(s))
	})
	return fragments
}

// SelectOne returns the first descendant matching query.
func (f *Fragment) SelectOne(query string) (tgfeed.Fragment, bool) {
	match := f.sel.FindMatcher(matcher(query)).First()
	if match.Length() == 0 {
		return nil, false
	}
	return NewFragment(match), true
}

// Attr returns the named attribute of the fragment root.
func (f *Fragment) Attr(name string) (string, bool) {
	return f.sel.First().Attr(name)
}

// Text returns the combined text of the fragment root and its descendants.
func (f *Fragment) Text() string {
	return f.sel.First().Text()
}

// matchers caches compiled selectors by query string.
var matchers sync.Map

// matcher returns the compiled selector for query. An invalid query
// matches nothing, like goquery's Find.
func matcher(query string) goquery.Matcher {
	if m, ok := matchers.Load(query); ok {
		return m.(goquery.Matcher)
	}
	var m goquery.Matcher
	sel, err := cascadia.Compile(query)
	if err != nil {
		m = emptyMatcher{}
	} else {
		m = sel
	}
	actual, _ := matchers.LoadOrStore(query, m)
	return actual.(goquery.Matcher)
}

// emptyMatcher matches no node.
type emptyMatcher struct{}

func (emptyMatcher) Match(*html.Node) bool            { return false }
func (emptyMatcher) MatchAll(*html.Node) []*html.Node { return nil }
func (emptyMatcher) Filter([]*html.Node) []*html.Node { return nil }
