// Package crawl provides channel sync orchestration.
// It resumes each tracked channel from its saved cursor, archives the
// fetched messages and persists the new cursor, running channels
// concurrently.
package crawl

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/fwojciec/tgfeed"
	"github.com/fwojciec/tgfeed/channel"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of channels synced at once.
const DefaultConcurrency = 4

// Syncer orchestrates syncing tracked channels into the archive.
type Syncer struct {
	Channels    tgfeed.ChannelService
	Messages    tgfeed.MessageService
	Pager       *channel.Pager
	Decoder     tgfeed.Decoder
	Pages       int
	Concurrency int
	Skip        tgfeed.SkipFunc
}

// Result holds the outcome of a sync operation.
type Result struct {
	Synced    int
	Exhausted int
	Failed    int
	Fetched   int
	Saved     int
}

// ProgressEvent reports progress during a sync operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Channel   string
	Fetched   int
	Saved     int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressExhausted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting sync progress.
type ProgressFunc func(event ProgressEvent)

// syncResult holds the outcome of syncing a single channel.
type syncResult struct {
	channel string
	fetched int
	saved   int
	err     error
}

// SyncChannels syncs every given channel. A channel whose history is
// already exhausted is reported as such rather than failed. Per-channel
// errors are reported through progress and counted; only context
// cancellation fails the whole call.
func (s *Syncer) SyncChannels(ctx context.Context, channels []*tgfeed.Channel, progress ProgressFunc) (*Result, error) {
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan syncResult, len(channels))

	var completed atomic.Int64
	total := len(channels)

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, ch := range channels {
			g.Go(func() error {
				resultCh <- s.syncChannel(gctx, ch)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var result Result
	for r := range resultCh {
		completed.Add(1)
		event := ProgressEvent{
			Completed: int(completed.Load()),
			Total:     total,
			Channel:   r.channel,
			Fetched:   r.fetched,
			Saved:     r.saved,
			Error:     r.err,
		}

		switch {
		case tgfeed.ErrorCode(r.err) == tgfeed.EFEEDEND:
			result.Exhausted++
			event.Type = ProgressExhausted
		case r.err != nil:
			result.Failed++
			event.Type = ProgressFailed
		default:
			result.Synced++
			result.Fetched += r.fetched
			result.Saved += r.saved
			event.Type = ProgressCompleted
		}

		if progress != nil {
			progress(event)
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	if err := ctx.Err(); err != nil {
		return &result, err
	}
	return &result, nil
}

// syncChannel fetches one channel from its saved cursor. Messages are
// saved before the cursor so an interrupted sync refetches rather than
// skips.
func (s *Syncer) syncChannel(ctx context.Context, ch *tgfeed.Channel) syncResult {
	result := syncResult{channel: ch.Name}

	pages := s.Pages
	if pages < 1 {
		pages = 1
	}

	session, err := channel.NewSession(ch.Name, s.Pager, s.Decoder,
		channel.WithCursor(ch.Cursor),
		channel.WithSkipFunc(s.Skip),
	)
	if err != nil {
		result.err = err
		return result
	}

	msgs, err := session.Fetch(ctx, pages)
	if err != nil {
		result.err = err
		return result
	}
	result.fetched = len(msgs)

	if len(msgs) > 0 {
		saved, err := s.Messages.SaveMessages(ctx, ch.ID, msgs)
		if err != nil {
			result.err = fmt.Errorf("save messages: %w", err)
			return result
		}
		result.saved = saved
	}

	cursor := session.Cursor()
	upd := tgfeed.ChannelUpdate{Cursor: &cursor}
	if info := session.Channel(); info != (tgfeed.ChannelInfo{}) {
		upd.Info = &info
	}
	if _, err := s.Channels.UpdateChannel(ctx, ch.ID, upd); err != nil {
		result.err = fmt.Errorf("update channel: %w", err)
		return result
	}

	return result
}
