package mock

import (
	"github.com/fwojciec/tgfeed"
)

var _ tgfeed.Decoder = (*Decoder)(nil)

// Decoder is a mock implementation of tgfeed.Decoder.
type Decoder struct {
	DecodeFn func(fragment tgfeed.Fragment) (*tgfeed.Message, error)
}

func (d *Decoder) Decode(fragment tgfeed.Fragment) (*tgfeed.Message, error) {
	return d.DecodeFn(fragment)
}
