package main

import (
	"fmt"

	"github.com/fwojciec/tgfeed"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return tgfeed.Errorf(tgfeed.EINVALID, "use --force to confirm deletion")
	}

	ch, err := findChannel(deps, c.Channel)
	if err != nil {
		return err
	}

	if err := deps.Channels.DeleteChannel(deps.Ctx, ch.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tgfeed.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted channel %q\n", ch.Name)
	return nil
}
