package tgfeed

// Field identifies one logical field of the preview markup.
type Field string

// Page-level fields.
const (
	FieldMessage            Field = "message"
	FieldCursor             Field = "cursor"
	FieldChannelTitle       Field = "channel_title"
	FieldChannelDescription Field = "channel_description"
	FieldChannelImage       Field = "channel_image"
)

// Message metadata fields.
const (
	FieldMessageNumber Field = "message_number"
	FieldMessageAuthor Field = "message_author"
	FieldMessageDate   Field = "message_date"
	FieldMessageViews  Field = "message_views"
	FieldMessageVoters Field = "message_voters"
)

// Content fields. Nested fields are queried relative to their parent
// content node (e.g. FieldVideoThumb inside a FieldVideo match).
const (
	FieldText                Field = "text"
	FieldPhoto               Field = "photo"
	FieldVideo               Field = "video"
	FieldVideoThumb          Field = "video_thumb"
	FieldVideoDuration       Field = "video_duration"
	FieldVoice               Field = "voice"
	FieldVoiceURL            Field = "voice_url"
	FieldVoiceDuration       Field = "voice_duration"
	FieldDocument            Field = "document"
	FieldDocumentTitle       Field = "document_title"
	FieldDocumentSize        Field = "document_size"
	FieldLocation            Field = "location"
	FieldPoll                Field = "poll"
	FieldPollQuestion        Field = "poll_question"
	FieldPollType            Field = "poll_type"
	FieldPollOption          Field = "poll_option"
	FieldPollOptionPercent   Field = "poll_option_percent"
	FieldPollOptionValue     Field = "poll_option_value"
	FieldUnsupportedMedia    Field = "unsupported_media"
	FieldUnsupportedMediaURL Field = "unsupported_media_url"
)

// FieldSelector maps a logical field to a markup location: a query over a
// fragment and the attribute to read from the matched node. An empty Attr
// reads the node's text.
type FieldSelector struct {
	Field Field
	Query string
	Attr  string
}

// Read returns the selector's value from an already matched node.
// The bool result is false when the attribute is absent.
func (s FieldSelector) Read(node Fragment) (string, bool) {
	if s.Attr == "" {
		return node.Text(), true
	}
	return node.Attr(s.Attr)
}

// ReadOne queries the first node matching the selector below root and reads
// its value. The bool result is false when no node matches or the attribute
// is absent.
func (s FieldSelector) ReadOne(root Fragment) (string, bool) {
	node, ok := root.SelectOne(s.Query)
	if !ok {
		return "", false
	}
	return s.Read(node)
}

// FieldRegistry resolves logical fields to their selectors.
// Selectors are fixed at construction and never mutated.
type FieldRegistry interface {
	// Lookup returns the selector for a field.
	// Returns EUNKNOWNFIELD if the registry does not define it.
	Lookup(field Field) (FieldSelector, error)
}

// Fragment is a handle to a subtree of parsed markup. It is provided by the
// markup-parsing collaborator and only valid while one page is processed.
type Fragment interface {
	// SelectAll returns every descendant matching query, in document order.
	SelectAll(query string) []Fragment

	// SelectOne returns the first descendant matching query.
	SelectOne(query string) (Fragment, bool)

	// Attr returns the value of the named attribute of this node.
	Attr(name string) (string, bool)

	// Text returns the combined text content of this node.
	Text() string
}
