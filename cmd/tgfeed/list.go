package main

import (
	"fmt"

	"github.com/fwojciec/tgfeed"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	channels, err := deps.Channels.FindChannels(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tgfeed.ErrorMessage(err))
		return err
	}

	if len(channels) == 0 {
		fmt.Fprintln(deps.Stdout, "No channels tracked. Use 'tgfeed sync <channel>' to add one.")
		return nil
	}

	for _, ch := range channels {
		title := ch.Title
		if title == "" {
			title = "-"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", ch.Name, describeCursor(ch.Cursor), title)
	}

	return nil
}
