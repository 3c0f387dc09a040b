package channel

import (
	"context"

	"github.com/fwojciec/tgfeed"
)

// Session pages through one channel across repeated Fetch calls, resuming
// where the previous call stopped. A Session is not safe for concurrent
// use; independent sessions share nothing.
type Session struct {
	channelID string
	cursor    tgfeed.Cursor
	channel   tgfeed.ChannelInfo

	pager   *Pager
	decoder tgfeed.Decoder
	skip    tgfeed.SkipFunc
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithCursor resumes the session from a previously returned cursor.
func WithCursor(c tgfeed.Cursor) SessionOption {
	return func(s *Session) {
		s.cursor = c
	}
}

// WithSkipFunc sets the function notified of every message dropped for
// missing metadata.
func WithSkipFunc(fn tgfeed.SkipFunc) SessionOption {
	return func(s *Session) {
		s.skip = fn
	}
}

// NewSession creates a Session starting from the newest page unless
// WithCursor says otherwise.
func NewSession(channelID string, pager *Pager, decoder tgfeed.Decoder, opts ...SessionOption) (*Session, error) {
	if channelID == "" {
		return nil, tgfeed.Errorf(tgfeed.EINVALID, "channel id required")
	}
	s := &Session{
		channelID: channelID,
		cursor:    tgfeed.CursorLatest,
		pager:     pager,
		decoder:   decoder,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ChannelID returns the channel the session reads.
func (s *Session) ChannelID() string { return s.channelID }

// Cursor returns the position the next Fetch resumes from.
func (s *Session) Cursor() tgfeed.Cursor { return s.cursor }

// Exhausted reports whether every earlier page has been fetched.
func (s *Session) Exhausted() bool { return s.cursor.Exhausted() }

// Channel returns the channel header from the most recent fetch.
func (s *Session) Channel() tgfeed.ChannelInfo { return s.channel }

// Fetch fetches up to pages pages older than the session cursor and returns
// their messages in pager order: each page reversed from document order,
// pages in fetch order. Messages missing identity metadata are
// dropped and reported to the skip function.
//
// Returns EINVALID if pages < 1 and EFEEDEND if a previous call exhausted
// the channel. The cursor only advances when the call succeeds.
func (s *Session) Fetch(ctx context.Context, pages int) ([]*tgfeed.Message, error) {
	if pages < 1 {
		return nil, tgfeed.Errorf(tgfeed.EINVALID, "pages must be at least 1, got %d", pages)
	}

	batch, err := s.pager.Fetch(ctx, s.channelID, s.cursor, pages)
	if err != nil {
		return nil, err
	}

	msgs := make([]*tgfeed.Message, 0, len(batch.Fragments))
	for _, f := range batch.Fragments {
		msg, err := s.decoder.Decode(f)
		if tgfeed.ErrorCode(err) == tgfeed.EMISSINGMETADATA {
			if s.skip != nil {
				s.skip(err)
			}
			continue
		} else if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}

	s.cursor = batch.Next
	if batch.Channel != (tgfeed.ChannelInfo{}) {
		s.channel = batch.Channel
	}

	return msgs, nil
}
