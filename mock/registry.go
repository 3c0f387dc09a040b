package mock

import (
	"github.com/fwojciec/tgfeed"
)

var _ tgfeed.FieldRegistry = (*FieldRegistry)(nil)

// FieldRegistry is a mock implementation of tgfeed.FieldRegistry.
type FieldRegistry struct {
	LookupFn func(field tgfeed.Field) (tgfeed.FieldSelector, error)
}

func (r *FieldRegistry) Lookup(field tgfeed.Field) (tgfeed.FieldSelector, error) {
	return r.LookupFn(field)
}
