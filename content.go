package tgfeed

import (
	"encoding/json"
	"fmt"
)

// ContentKind discriminates the variants of Content.
type ContentKind string

// Content kinds, in the order the decoder extracts them.
const (
	KindText             ContentKind = "text"
	KindPhoto            ContentKind = "photo"
	KindVideo            ContentKind = "video"
	KindVoice            ContentKind = "voice"
	KindDocument         ContentKind = "document"
	KindLocation         ContentKind = "location"
	KindPoll             ContentKind = "poll"
	KindUnsupportedMedia ContentKind = "unsupported_media"
)

// Content is one discrete unit of message content. The concrete type is
// one of Text, Photo, Video, Voice, Document, Location, Poll or
// UnsupportedMedia.
type Content interface {
	Kind() ContentKind
}

// Text is a run of message text.
type Text struct {
	Content string `json:"content"`
}

// Photo is an image referenced by URL.
type Photo struct {
	URL string `json:"url"`
}

// Video is a video with its thumbnail and display duration.
type Video struct {
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
	Duration  string `json:"duration"`
}

// Voice is a voice note.
type Voice struct {
	URL      string `json:"url"`
	Duration string `json:"duration"`
}

// Document is an attached file. Title and Size hold every matched node,
// not only the first.
type Document struct {
	URL   string   `json:"url"`
	Title []string `json:"title"`
	Size  []string `json:"size"`
}

// Location is a map point, rewritten to an OpenStreetMap URL.
type Location struct {
	URL       string `json:"url"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// Poll is a poll with its current results.
type Poll struct {
	Question string       `json:"poll_question"`
	Type     string       `json:"poll_type"`
	Options  []PollOption `json:"poll_options"`
}

// PollOption is one poll answer with its vote share.
type PollOption struct {
	Percent string `json:"percent"`
	Value   string `json:"value"`
}

// UnsupportedMedia is media the preview cannot render, linked to the app.
type UnsupportedMedia struct {
	URL string `json:"url"`
}

func (Text) Kind() ContentKind             { return KindText }
func (Photo) Kind() ContentKind            { return KindPhoto }
func (Video) Kind() ContentKind            { return KindVideo }
func (Voice) Kind() ContentKind            { return KindVoice }
func (Document) Kind() ContentKind         { return KindDocument }
func (Location) Kind() ContentKind         { return KindLocation }
func (Poll) Kind() ContentKind             { return KindPoll }
func (UnsupportedMedia) Kind() ContentKind { return KindUnsupportedMedia }

// Contents is an ordered content list. In JSON each item is an object
// carrying a "type" discriminator next to its fields.
type Contents []Content

// MarshalJSON implements json.Marshaler.
func (c Contents) MarshalJSON() ([]byte, error) {
	items := make([]json.RawMessage, 0, len(c))
	for _, content := range c {
		data, err := marshalContent(content)
		if err != nil {
			return nil, err
		}
		items = append(items, data)
	}
	return json.Marshal(items)
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Contents) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	contents := make(Contents, 0, len(raw))
	for i, item := range raw {
		content, err := unmarshalContent(item)
		if err != nil {
			return fmt.Errorf("content %d: %w", i, err)
		}
		contents = append(contents, content)
	}
	*c = contents
	return nil
}

func marshalContent(content Content) ([]byte, error) {
	switch content.(type) {
	case Text, Photo, Video, Voice, Document, Location, Poll, UnsupportedMedia:
	default:
		return nil, Errorf(EINVALID, "unsupported content type %T", content)
	}

	kind, err := json.Marshal(content.Kind())
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(content)
	if err != nil {
		return nil, err
	}

	// Splice the discriminator in front of the variant's fields.
	out := make([]byte, 0, len(kind)+len(body)+9)
	out = append(out, `{"type":`...)
	out = append(out, kind...)
	if len(body) > 2 {
		out = append(out, ',')
		out = append(out, body[1:]...)
	} else {
		out = append(out, '}')
	}
	return out, nil
}

func unmarshalContent(data []byte) (Content, error) {
	var head struct {
		Type ContentKind `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}

	switch head.Type {
	case KindText:
		return decodeAs[Text](data)
	case KindPhoto:
		return decodeAs[Photo](data)
	case KindVideo:
		return decodeAs[Video](data)
	case KindVoice:
		return decodeAs[Voice](data)
	case KindDocument:
		return decodeAs[Document](data)
	case KindLocation:
		return decodeAs[Location](data)
	case KindPoll:
		return decodeAs[Poll](data)
	case KindUnsupportedMedia:
		return decodeAs[UnsupportedMedia](data)
	default:
		return nil, Errorf(EINVALID, "unknown content type %q", head.Type)
	}
}

func decodeAs[T Content](data []byte) (Content, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}
