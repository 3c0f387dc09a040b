package tgfeed

// Message is one decoded channel post. It is produced once per fragment
// and not modified afterward.
type Message struct {
	Number string `json:"number"`
	Author string `json:"author"`
	// Date is the ISO-8601 timestamp exactly as the preview renders it.
	Date string `json:"date"`
	// Views and Voters are nil when the preview does not show them.
	Views    *string  `json:"views"`
	Voters   *string  `json:"voters"`
	Contents Contents `json:"contents"`
}

// Validate returns an error if a required identity field is empty.
func (m *Message) Validate() error {
	if m.Number == "" {
		return Errorf(EMISSINGMETADATA, "message number required")
	}
	if m.Author == "" {
		return Errorf(EMISSINGMETADATA, "message author required")
	}
	if m.Date == "" {
		return Errorf(EMISSINGMETADATA, "message date required")
	}
	return nil
}

// URL returns the public link to the message in the given channel.
func (m *Message) URL(channelID string) string {
	return PublicURL + "/" + channelID + "/" + m.Number
}

// Decoder decodes one message fragment.
type Decoder interface {
	// Decode extracts the message metadata and its ordered content list.
	// Returns EMISSINGMETADATA if number, author or date is absent.
	// Incomplete content items are dropped without failing the message.
	Decode(fragment Fragment) (*Message, error)
}

// SkipFunc receives errors for items or messages dropped during decoding.
type SkipFunc func(err error)
