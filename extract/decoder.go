package extract

import (
	"net/url"
	"strings"

	"github.com/fwojciec/tgfeed"
)

var _ tgfeed.Decoder = (*Decoder)(nil)

// Decoder turns a message fragment into a tgfeed.Message: identity
// metadata, optional counters and the contents of every extractor.
type Decoder struct {
	number tgfeed.FieldSelector
	author tgfeed.FieldSelector
	date   tgfeed.FieldSelector
	views  tgfeed.FieldSelector
	voters tgfeed.FieldSelector

	extractors []Extractor
	skip       tgfeed.SkipFunc
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithSkipFunc sets the function notified of every dropped content item.
func WithSkipFunc(fn tgfeed.SkipFunc) Option {
	return func(d *Decoder) {
		d.skip = fn
	}
}

// WithExtractors replaces the default extractor set. Contents are emitted
// in the order of the given extractors.
func WithExtractors(extractors ...Extractor) Option {
	return func(d *Decoder) {
		d.extractors = extractors
	}
}

// NewDecoder creates a Decoder with selectors resolved from the registry.
// Returns EUNKNOWNFIELD if the registry lacks a metadata or content field.
func NewDecoder(registry tgfeed.FieldRegistry, opts ...Option) (*Decoder, error) {
	s, err := lookup(registry,
		tgfeed.FieldMessageNumber,
		tgfeed.FieldMessageAuthor,
		tgfeed.FieldMessageDate,
		tgfeed.FieldMessageViews,
		tgfeed.FieldMessageVoters,
	)
	if err != nil {
		return nil, err
	}

	d := &Decoder{
		number: s[0],
		author: s[1],
		date:   s[2],
		views:  s[3],
		voters: s[4],
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.extractors == nil {
		if d.extractors, err = NewExtractors(registry); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// Decode decodes one message fragment. Contents are grouped by kind in
// extractor order and keep document order within a kind.
func (d *Decoder) Decode(fragment tgfeed.Fragment) (*tgfeed.Message, error) {
	msg := &tgfeed.Message{Contents: tgfeed.Contents{}}

	if href, ok := d.number.ReadOne(fragment); ok {
		msg.Number = MessageNumber(href)
	}
	msg.Author, _ = d.author.ReadOne(fragment)
	msg.Date, _ = d.date.ReadOne(fragment)
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	msg.Views = readOptional(d.views, fragment)
	msg.Voters = readOptional(d.voters, fragment)

	for _, e := range d.extractors {
		items, err := e.Extract(fragment)
		msg.Contents = append(msg.Contents, items...)
		if err != nil {
			d.report(err)
		}
	}

	return msg, nil
}

// report passes each dropped item's error to the skip function separately.
func (d *Decoder) report(err error) {
	if d.skip == nil {
		return
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			d.skip(e)
		}
		return
	}
	d.skip(err)
}

func readOptional(s tgfeed.FieldSelector, fragment tgfeed.Fragment) *string {
	v, ok := s.ReadOne(fragment)
	if !ok {
		return nil
	}
	return &v
}

// MessageNumber returns the last path segment of a message permalink,
// e.g. "42" for "https://t.me/durov/42". It returns "" if the link has no
// path.
func MessageNumber(href string) string {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	path := strings.Trim(u.Path, "/")
	if path == "" {
		return ""
	}
	return path[strings.LastIndex(path, "/")+1:]
}
