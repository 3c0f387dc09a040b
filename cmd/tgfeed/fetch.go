package main

import (
	"fmt"

	"github.com/fwojciec/tgfeed"
	"github.com/fwojciec/tgfeed/channel"
	"github.com/fwojciec/tgfeed/fs"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	if c.Format == "markdown" && c.Out == "" {
		fmt.Fprintf(deps.Stderr, "error: --out is required for markdown output\n")
		return tgfeed.Errorf(tgfeed.EINVALID, "--out is required for markdown output")
	}

	pages := c.Pages
	if pages == 0 {
		pages = deps.Config.Pages
	}

	session, err := channel.NewSession(c.Channel, deps.Pager, deps.Decoder,
		channel.WithCursor(tgfeed.Cursor(c.Before)),
		channel.WithSkipFunc(deps.Skip),
	)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tgfeed.ErrorMessage(err))
		return err
	}

	msgs, err := session.Fetch(deps.Ctx, pages)
	if err != nil {
		if tgfeed.ErrorCode(err) == tgfeed.EFEEDEND {
			fmt.Fprintf(deps.Stderr, "error: no earlier messages in %q\n", c.Channel)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", tgfeed.ErrorMessage(err))
		}
		return err
	}

	feed := &tgfeed.Feed{
		ChannelID: c.Channel,
		Channel:   session.Channel(),
		Messages:  msgs,
	}

	if c.Format == "markdown" {
		if err := fs.NewWriter(c.Out).WriteMessages(deps.Ctx, feed); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", tgfeed.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %d messages to %s\n", len(msgs), c.Out)
	} else if err := writeFeed(deps.Stdout, c.Format, feed, session.Cursor()); err != nil {
		return err
	}

	if c.Format != "json" {
		fmt.Fprintf(deps.Stderr, "Next: %s\n", describeCursor(session.Cursor()))
	}
	return nil
}
