package extract

import (
	"github.com/fwojciec/tgfeed"
)

var (
	_ Extractor = (*TextExtractor)(nil)
	_ Extractor = (*PhotoExtractor)(nil)
	_ Extractor = (*VideoExtractor)(nil)
	_ Extractor = (*VoiceExtractor)(nil)
	_ Extractor = (*DocumentExtractor)(nil)
	_ Extractor = (*LocationExtractor)(nil)
	_ Extractor = (*PollExtractor)(nil)
	_ Extractor = (*UnsupportedMediaExtractor)(nil)
)

// TextExtractor emits the text of each text block.
type TextExtractor struct {
	node tgfeed.FieldSelector
}

// NewTextExtractor creates a TextExtractor.
func NewTextExtractor(registry tgfeed.FieldRegistry) (*TextExtractor, error) {
	s, err := lookup(registry, tgfeed.FieldText)
	if err != nil {
		return nil, err
	}
	return &TextExtractor{node: s[0]}, nil
}

func (e *TextExtractor) Kind() tgfeed.ContentKind { return tgfeed.KindText }

func (e *TextExtractor) Extract(fragment tgfeed.Fragment) ([]tgfeed.Content, error) {
	c := &collector{kind: e.Kind()}
	for i, node := range fragment.SelectAll(e.node.Query) {
		text, ok := e.node.Read(node)
		if !ok {
			c.drop(i, "missing text")
			continue
		}
		c.add(tgfeed.Text{Content: text})
	}
	return c.result()
}

// PhotoExtractor reads photo URLs from the wrapper's inline background
// image.
type PhotoExtractor struct {
	node tgfeed.FieldSelector
}

// NewPhotoExtractor creates a PhotoExtractor.
func NewPhotoExtractor(registry tgfeed.FieldRegistry) (*PhotoExtractor, error) {
	s, err := lookup(registry, tgfeed.FieldPhoto)
	if err != nil {
		return nil, err
	}
	return &PhotoExtractor{node: s[0]}, nil
}

func (e *PhotoExtractor) Kind() tgfeed.ContentKind { return tgfeed.KindPhoto }

func (e *PhotoExtractor) Extract(fragment tgfeed.Fragment) ([]tgfeed.Content, error) {
	c := &collector{kind: e.Kind()}
	for i, node := range fragment.SelectAll(e.node.Query) {
		style, ok := e.node.Read(node)
		if !ok {
			c.drop(i, "missing style")
			continue
		}
		u, err := BackgroundImageURL(style)
		if err != nil {
			c.drop(i, tgfeed.ErrorMessage(err))
			continue
		}
		c.add(tgfeed.Photo{URL: u})
	}
	return c.result()
}

// VideoExtractor reads the player link, thumbnail and duration of each
// video. A video missing any of them is dropped.
type VideoExtractor struct {
	node     tgfeed.FieldSelector
	thumb    tgfeed.FieldSelector
	duration tgfeed.FieldSelector
}

// NewVideoExtractor creates a VideoExtractor.
func NewVideoExtractor(registry tgfeed.FieldRegistry) (*VideoExtractor, error) {
	s, err := lookup(registry, tgfeed.FieldVideo, tgfeed.FieldVideoThumb, tgfeed.FieldVideoDuration)
	if err != nil {
		return nil, err
	}
	return &VideoExtractor{node: s[0], thumb: s[1], duration: s[2]}, nil
}

func (e *VideoExtractor) Kind() tgfeed.ContentKind { return tgfeed.KindVideo }

func (e *VideoExtractor) Extract(fragment tgfeed.Fragment) ([]tgfeed.Content, error) {
	c := &collector{kind: e.Kind()}
	for i, node := range fragment.SelectAll(e.node.Query) {
		href, ok := e.node.Read(node)
		if !ok {
			c.drop(i, "missing link")
			continue
		}
		style, ok := e.thumb.ReadOne(node)
		if !ok {
			c.drop(i, "missing thumbnail")
			continue
		}
		thumb, err := BackgroundImageURL(style)
		if err != nil {
			c.drop(i, tgfeed.ErrorMessage(err))
			continue
		}
		duration, ok := e.duration.ReadOne(node)
		if !ok {
			c.drop(i, "missing duration")
			continue
		}
		c.add(tgfeed.Video{URL: href, Thumbnail: thumb, Duration: duration})
	}
	return c.result()
}

// VoiceExtractor reads the audio source and duration of each voice note.
type VoiceExtractor struct {
	node     tgfeed.FieldSelector
	url      tgfeed.FieldSelector
	duration tgfeed.FieldSelector
}

// NewVoiceExtractor creates a VoiceExtractor.
func NewVoiceExtractor(registry tgfeed.FieldRegistry) (*VoiceExtractor, error) {
	s, err := lookup(registry, tgfeed.FieldVoice, tgfeed.FieldVoiceURL, tgfeed.FieldVoiceDuration)
	if err != nil {
		return nil, err
	}
	return &VoiceExtractor{node: s[0], url: s[1], duration: s[2]}, nil
}

func (e *VoiceExtractor) Kind() tgfeed.ContentKind { return tgfeed.KindVoice }

func (e *VoiceExtractor) Extract(fragment tgfeed.Fragment) ([]tgfeed.Content, error) {
	c := &collector{kind: e.Kind()}
	for i, node := range fragment.SelectAll(e.node.Query) {
		src, ok := e.url.ReadOne(node)
		if !ok {
			c.drop(i, "missing audio source")
			continue
		}
		duration, ok := e.duration.ReadOne(node)
		if !ok {
			c.drop(i, "missing duration")
			continue
		}
		c.add(tgfeed.Voice{URL: src, Duration: duration})
	}
	return c.result()
}

// DocumentExtractor reads the link of each attached document along with
// every title and size node inside it.
type DocumentExtractor struct {
	node  tgfeed.FieldSelector
	title tgfeed.FieldSelector
	size  tgfeed.FieldSelector
}

// NewDocumentExtractor creates a DocumentExtractor.
func NewDocumentExtractor(registry tgfeed.FieldRegistry) (*DocumentExtractor, error) {
	s, err := lookup(registry, tgfeed.FieldDocument, tgfeed.FieldDocumentTitle, tgfeed.FieldDocumentSize)
	if err != nil {
		return nil, err
	}
	return &DocumentExtractor{node: s[0], title: s[1], size: s[2]}, nil
}

func (e *DocumentExtractor) Kind() tgfeed.ContentKind { return tgfeed.KindDocument }

func (e *DocumentExtractor) Extract(fragment tgfeed.Fragment) ([]tgfeed.Content, error) {
	c := &collector{kind: e.Kind()}
	for i, node := range fragment.SelectAll(e.node.Query) {
		href, ok := e.node.Read(node)
		if !ok {
			c.drop(i, "missing link")
			continue
		}
		c.add(tgfeed.Document{
			URL:   href,
			Title: readAll(e.title, node),
			Size:  readAll(e.size, node),
		})
	}
	return c.result()
}

// readAll reads every node matching s below root, skipping nodes without
// the attribute. The result is never nil.
func readAll(s tgfeed.FieldSelector, root tgfeed.Fragment) []string {
	values := []string{}
	for _, node := range root.SelectAll(s.Query) {
		if v, ok := s.Read(node); ok {
			values = append(values, v)
		}
	}
	return values
}

// LocationExtractor rewrites map links to OpenStreetMap URLs.
type LocationExtractor struct {
	node tgfeed.FieldSelector
}

// NewLocationExtractor creates a LocationExtractor.
func NewLocationExtractor(registry tgfeed.FieldRegistry) (*LocationExtractor, error) {
	s, err := lookup(registry, tgfeed.FieldLocation)
	if err != nil {
		return nil, err
	}
	return &LocationExtractor{node: s[0]}, nil
}

func (e *LocationExtractor) Kind() tgfeed.ContentKind { return tgfeed.KindLocation }

func (e *LocationExtractor) Extract(fragment tgfeed.Fragment) ([]tgfeed.Content, error) {
	c := &collector{kind: e.Kind()}
	for i, node := range fragment.SelectAll(e.node.Query) {
		href, ok := e.node.Read(node)
		if !ok {
			c.drop(i, "missing link")
			continue
		}
		lat, lon, zoom, err := ParseMapLink(href)
		if err != nil {
			c.drop(i, tgfeed.ErrorMessage(err))
			continue
		}
		c.add(tgfeed.Location{
			URL:       LocationURL(lat, lon, zoom),
			Latitude:  lat,
			Longitude: lon,
		})
	}
	return c.result()
}

// PollExtractor reads the question, type and options of each poll. A poll
// with any incomplete option is dropped as a whole.
type PollExtractor struct {
	node     tgfeed.FieldSelector
	question tgfeed.FieldSelector
	pollType tgfeed.FieldSelector
	option   tgfeed.FieldSelector
	percent  tgfeed.FieldSelector
	value    tgfeed.FieldSelector
}

// NewPollExtractor creates a PollExtractor.
func NewPollExtractor(registry tgfeed.FieldRegistry) (*PollExtractor, error) {
	s, err := lookup(registry,
		tgfeed.FieldPoll,
		tgfeed.FieldPollQuestion,
		tgfeed.FieldPollType,
		tgfeed.FieldPollOption,
		tgfeed.FieldPollOptionPercent,
		tgfeed.FieldPollOptionValue,
	)
	if err != nil {
		return nil, err
	}
	return &PollExtractor{
		node:     s[0],
		question: s[1],
		pollType: s[2],
		option:   s[3],
		percent:  s[4],
		value:    s[5],
	}, nil
}

func (e *PollExtractor) Kind() tgfeed.ContentKind { return tgfeed.KindPoll }

func (e *PollExtractor) Extract(fragment tgfeed.Fragment) ([]tgfeed.Content, error) {
	c := &collector{kind: e.Kind()}
	for i, node := range fragment.SelectAll(e.node.Query) {
		question, ok := e.question.ReadOne(node)
		if !ok {
			c.drop(i, "missing question")
			continue
		}
		pollType, ok := e.pollType.ReadOne(node)
		if !ok {
			c.drop(i, "missing type")
			continue
		}
		options, ok := e.options(node)
		if !ok {
			c.drop(i, "incomplete option")
			continue
		}
		c.add(tgfeed.Poll{Question: question, Type: pollType, Options: options})
	}
	return c.result()
}

func (e *PollExtractor) options(poll tgfeed.Fragment) ([]tgfeed.PollOption, bool) {
	options := []tgfeed.PollOption{}
	for _, node := range poll.SelectAll(e.option.Query) {
		percent, ok := e.percent.ReadOne(node)
		if !ok {
			return nil, false
		}
		value, ok := e.value.ReadOne(node)
		if !ok {
			return nil, false
		}
		options = append(options, tgfeed.PollOption{Percent: percent, Value: value})
	}
	return options, true
}

// UnsupportedMediaExtractor links media the preview cannot show to its
// in-app view. A placeholder without a link yields nothing.
type UnsupportedMediaExtractor struct {
	node tgfeed.FieldSelector
	link tgfeed.FieldSelector
}

// NewUnsupportedMediaExtractor creates an UnsupportedMediaExtractor.
func NewUnsupportedMediaExtractor(registry tgfeed.FieldRegistry) (*UnsupportedMediaExtractor, error) {
	s, err := lookup(registry, tgfeed.FieldUnsupportedMedia, tgfeed.FieldUnsupportedMediaURL)
	if err != nil {
		return nil, err
	}
	return &UnsupportedMediaExtractor{node: s[0], link: s[1]}, nil
}

func (e *UnsupportedMediaExtractor) Kind() tgfeed.ContentKind { return tgfeed.KindUnsupportedMedia }

func (e *UnsupportedMediaExtractor) Extract(fragment tgfeed.Fragment) ([]tgfeed.Content, error) {
	c := &collector{kind: e.Kind()}
	for _, node := range fragment.SelectAll(e.node.Query) {
		if href, ok := e.link.ReadOne(node); ok {
			c.add(tgfeed.UnsupportedMedia{URL: href})
		}
	}
	return c.result()
}
