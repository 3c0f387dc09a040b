package main

import (
	"fmt"

	"github.com/fwojciec/tgfeed"
	"github.com/fwojciec/tgfeed/crawl"
)

// Run executes the sync command.
func (c *SyncCmd) Run(deps *Dependencies) error {
	channels, err := c.channels(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tgfeed.ErrorMessage(err))
		return err
	}
	if len(channels) == 0 {
		fmt.Fprintln(deps.Stdout, "No channels to sync. Pass channel names or list them in the config file.")
		return nil
	}

	syncer := &crawl.Syncer{
		Channels:    deps.Channels,
		Messages:    deps.Messages,
		Pager:       deps.Pager,
		Decoder:     deps.Decoder,
		Pages:       deps.Config.Pages,
		Concurrency: deps.Config.Concurrency,
		Skip:        deps.Skip,
	}
	if c.Pages > 0 {
		syncer.Pages = c.Pages
	}
	if c.Concurrency > 0 {
		syncer.Concurrency = c.Concurrency
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  %s: %d fetched, %d saved\n", event.Channel, event.Fetched, event.Saved)
		case crawl.ProgressExhausted:
			fmt.Fprintf(deps.Stdout, "  %s: feed end\n", event.Channel)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  %s: %s\n", event.Channel, tgfeed.ErrorMessage(event.Error))
		}
	}

	result, err := syncer.SyncChannels(deps.Ctx, channels, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error syncing: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Synced %d channels: %d fetched, %d saved (%d at feed end, %d failed)\n",
		result.Synced, result.Fetched, result.Saved, result.Exhausted, result.Failed)

	if result.Failed > 0 {
		return tgfeed.Errorf(tgfeed.EINTERNAL, "%d of %d channels failed", result.Failed, len(channels))
	}
	return nil
}

// channels resolves the channels to sync, tracking any named channel that
// is not in the archive yet. Without arguments every tracked channel and
// every configured channel is synced.
func (c *SyncCmd) channels(deps *Dependencies) ([]*tgfeed.Channel, error) {
	names := c.Channels
	if len(names) == 0 {
		tracked, err := deps.Channels.FindChannels(deps.Ctx)
		if err != nil {
			return nil, err
		}
		for _, ch := range tracked {
			names = append(names, ch.Name)
		}
		names = append(names, deps.Config.Channels...)
	}

	seen := make(map[string]bool, len(names))
	var channels []*tgfeed.Channel
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		ch, err := findOrCreateChannel(deps, name)
		if err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}
	return channels, nil
}

func findOrCreateChannel(deps *Dependencies, name string) (*tgfeed.Channel, error) {
	ch, err := deps.Channels.FindChannelByName(deps.Ctx, name)
	if err == nil {
		return ch, nil
	}
	if tgfeed.ErrorCode(err) != tgfeed.ENOTFOUND {
		return nil, err
	}

	ch = &tgfeed.Channel{Name: name}
	if err := deps.Channels.CreateChannel(deps.Ctx, ch); err != nil {
		return nil, err
	}
	fmt.Fprintf(deps.Stdout, "Tracking channel %q\n", name)
	return ch, nil
}
