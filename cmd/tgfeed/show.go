package main

import (
	"fmt"

	"github.com/fwojciec/tgfeed"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	if c.Limit < 0 || c.Offset < 0 {
		fmt.Fprintf(deps.Stderr, "error: --limit and --offset must not be negative\n")
		return tgfeed.Errorf(tgfeed.EINVALID, "--limit and --offset must not be negative")
	}

	ch, err := findChannel(deps, c.Channel)
	if err != nil {
		return err
	}

	msgs, err := deps.Messages.FindMessages(deps.Ctx, tgfeed.MessageFilter{
		ChannelID: ch.ID,
		Offset:    c.Offset,
		Limit:     c.Limit,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tgfeed.ErrorMessage(err))
		return err
	}

	feed := &tgfeed.Feed{
		ChannelID: ch.Name,
		Channel:   ch.Info(),
		Messages:  msgs,
	}
	return writeFeed(deps.Stdout, c.Format, feed, ch.Cursor)
}

// findChannel looks up a tracked channel, printing a hint when it is missing.
func findChannel(deps *Dependencies, name string) (*tgfeed.Channel, error) {
	ch, err := deps.Channels.FindChannelByName(deps.Ctx, name)
	if tgfeed.ErrorCode(err) == tgfeed.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: channel %q not found. Use 'tgfeed list' to see tracked channels.\n", name)
		return nil, err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tgfeed.ErrorMessage(err))
		return nil, err
	}
	return ch, nil
}
