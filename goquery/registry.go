package goquery

import (
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/tgfeed"
)

var _ tgfeed.FieldRegistry = (*Registry)(nil)

// Registry is the fixed table of field selectors for the preview markup.
// Every query is compiled when the registry is built, so a bad selector
// fails at startup rather than silently matching nothing.
type Registry struct {
	selectors map[tgfeed.Field]tgfeed.FieldSelector
}

// NewRegistry creates a Registry from the given selectors.
// Returns EINVALID if a query does not compile or a field repeats.
func NewRegistry(selectors []tgfeed.FieldSelector) (*Registry, error) {
	r := &Registry{
		selectors: make(map[tgfeed.Field]tgfeed.FieldSelector, len(selectors)),
	}
	for _, s := range selectors {
		if _, ok := r.selectors[s.Field]; ok {
			return nil, tgfeed.Errorf(tgfeed.EINVALID, "duplicate selector for field %q", s.Field)
		}
		if _, err := cascadia.Compile(s.Query); err != nil {
			return nil, tgfeed.Errorf(tgfeed.EINVALID, "invalid selector for field %q: %v", s.Field, err)
		}
		r.selectors[s.Field] = s
	}
	return r, nil
}

// NewDefaultRegistry creates a Registry holding DefaultSelectors.
func NewDefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultSelectors())
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the selector for a field.
func (r *Registry) Lookup(field tgfeed.Field) (tgfeed.FieldSelector, error) {
	s, ok := r.selectors[field]
	if !ok {
		return tgfeed.FieldSelector{}, tgfeed.Errorf(tgfeed.EUNKNOWNFIELD, "no selector for field %q", field)
	}
	return s, nil
}

// DefaultSelectors returns the selector table for the t.me/s/ preview.
func DefaultSelectors() []tgfeed.FieldSelector {
	return []tgfeed.FieldSelector{
		// Page
		{Field: tgfeed.FieldMessage, Query: ".tgme_widget_message_bubble"},
		{Field: tgfeed.FieldCursor, Query: ".tme_messages_more", Attr: "data-before"},
		{Field: tgfeed.FieldChannelTitle, Query: ".tgme_channel_info_header_title"},
		{Field: tgfeed.FieldChannelDescription, Query: ".tgme_channel_info_description"},
		{Field: tgfeed.FieldChannelImage, Query: ".tgme_page_photo_image img", Attr: "src"},

		// Metadata
		{Field: tgfeed.FieldMessageNumber, Query: ".tgme_widget_message_date", Attr: "href"},
		{Field: tgfeed.FieldMessageAuthor, Query: ".tgme_widget_message_owner_name"},
		{Field: tgfeed.FieldMessageDate, Query: ".tgme_widget_message_date time", Attr: "datetime"},
		{Field: tgfeed.FieldMessageViews, Query: ".tgme_widget_message_views"},
		{Field: tgfeed.FieldMessageVoters, Query: ".tgme_widget_message_voters"},

		// Content
		{Field: tgfeed.FieldText, Query: ".tgme_widget_message_text"},
		{Field: tgfeed.FieldPhoto, Query: ".tgme_widget_message_photo_wrap", Attr: "style"},
		{Field: tgfeed.FieldVideo, Query: ".tgme_widget_message_video_player", Attr: "href"},
		{Field: tgfeed.FieldVideoThumb, Query: ".tgme_widget_message_video_thumb", Attr: "style"},
		{Field: tgfeed.FieldVideoDuration, Query: ".message_video_duration"},
		{Field: tgfeed.FieldVoice, Query: ".tgme_widget_message_voice_player"},
		{Field: tgfeed.FieldVoiceURL, Query: ".tgme_widget_message_voice", Attr: "src"},
		{Field: tgfeed.FieldVoiceDuration, Query: ".tgme_widget_message_voice_duration"},
		{Field: tgfeed.FieldDocument, Query: ".tgme_widget_message_document_wrap", Attr: "href"},
		{Field: tgfeed.FieldDocumentTitle, Query: ".tgme_widget_message_document_title"},
		{Field: tgfeed.FieldDocumentSize, Query: ".tgme_widget_message_document_extra"},
		{Field: tgfeed.FieldLocation, Query: ".tgme_widget_message_location_wrap", Attr: "href"},
		{Field: tgfeed.FieldPoll, Query: ".tgme_widget_message_poll"},
		{Field: tgfeed.FieldPollQuestion, Query: ".tgme_widget_message_poll_question"},
		{Field: tgfeed.FieldPollType, Query: ".tgme_widget_message_poll_type"},
		{Field: tgfeed.FieldPollOption, Query: ".tgme_widget_message_poll_option"},
		{Field: tgfeed.FieldPollOptionPercent, Query: ".tgme_widget_message_poll_option_percent"},
		{Field: tgfeed.FieldPollOptionValue, Query: ".tgme_widget_message_poll_option_text"},
		{Field: tgfeed.FieldUnsupportedMedia, Query: ".message_media_not_supported"},
		{Field: tgfeed.FieldUnsupportedMediaURL, Query: ".message_media_view_in_telegram", Attr: "href"},
	}
}
