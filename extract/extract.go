// Package extract decodes message fragments into metadata and typed
// content items.
package extract

import (
	"errors"

	"github.com/fwojciec/tgfeed"
)

// Extractor finds every content item of one kind inside a message fragment.
type Extractor interface {
	// Kind returns the content kind the extractor produces.
	Kind() tgfeed.ContentKind

	// Extract returns the complete items found in fragment, in document
	// order. Items missing a required part are left out and reported in the
	// returned error, which joins one EMALFORMEDMEDIA error per dropped item.
	// A non-nil error never invalidates the returned items.
	Extract(fragment tgfeed.Fragment) ([]tgfeed.Content, error)
}

// NewExtractors returns one extractor per content kind, in the order their
// items appear in a decoded message.
// Returns EUNKNOWNFIELD if the registry lacks a content field.
func NewExtractors(registry tgfeed.FieldRegistry) ([]Extractor, error) {
	constructors := []func(tgfeed.FieldRegistry) (Extractor, error){
		func(r tgfeed.FieldRegistry) (Extractor, error) { return NewTextExtractor(r) },
		func(r tgfeed.FieldRegistry) (Extractor, error) { return NewPhotoExtractor(r) },
		func(r tgfeed.FieldRegistry) (Extractor, error) { return NewVideoExtractor(r) },
		func(r tgfeed.FieldRegistry) (Extractor, error) { return NewVoiceExtractor(r) },
		func(r tgfeed.FieldRegistry) (Extractor, error) { return NewDocumentExtractor(r) },
		func(r tgfeed.FieldRegistry) (Extractor, error) { return NewLocationExtractor(r) },
		func(r tgfeed.FieldRegistry) (Extractor, error) { return NewPollExtractor(r) },
		func(r tgfeed.FieldRegistry) (Extractor, error) { return NewUnsupportedMediaExtractor(r) },
	}

	extractors := make([]Extractor, 0, len(constructors))
	for _, newExtractor := range constructors {
		e, err := newExtractor(registry)
		if err != nil {
			return nil, err
		}
		extractors = append(extractors, e)
	}
	return extractors, nil
}

// lookup resolves fields in order, stopping at the first unknown one.
func lookup(registry tgfeed.FieldRegistry, fields ...tgfeed.Field) ([]tgfeed.FieldSelector, error) {
	selectors := make([]tgfeed.FieldSelector, len(fields))
	for i, field := range fields {
		s, err := registry.Lookup(field)
		if err != nil {
			return nil, err
		}
		selectors[i] = s
	}
	return selectors, nil
}

// collector accumulates extracted items and the errors of dropped ones.
type collector struct {
	kind  tgfeed.ContentKind
	items []tgfeed.Content
	errs  []error
}

func (c *collector) add(item tgfeed.Content) {
	c.items = append(c.items, item)
}

func (c *collector) drop(index int, reason string) {
	c.errs = append(c.errs, tgfeed.Errorf(tgfeed.EMALFORMEDMEDIA, "%s %d: %s", c.kind, index, reason))
}

func (c *collector) result() ([]tgfeed.Content, error) {
	return c.items, errors.Join(c.errs...)
}
