package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/tgfeed"
	"github.com/fwojciec/tgfeed/channel"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Config   *Config
	Channels tgfeed.ChannelService
	Messages tgfeed.MessageService
	Pager    *channel.Pager
	Decoder  tgfeed.Decoder
	Skip     tgfeed.SkipFunc
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `name:"db" env:"TGFEED_DB" help:"Database path"`
	Config  string `name:"config" env:"TGFEED_CONFIG" help:"Config file path (default ~/.tgfeed/config.yaml)"`
	Verbose bool   `short:"v" help:"Log at debug level"`

	Fetch  FetchCmd  `cmd:"" help:"Fetch recent messages of a channel without archiving them"`
	Sync   SyncCmd   `cmd:"" help:"Archive the next pages of tracked channels"`
	List   ListCmd   `cmd:"" help:"List tracked channels"`
	Show   ShowCmd   `cmd:"" help:"Show archived messages of a channel"`
	Delete DeleteCmd `cmd:"" help:"Delete a channel and its archived messages"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	Channel string `arg:"" help:"Channel username"`
	Pages   int    `short:"n" help:"Pages to fetch (default from config)"`
	Before  string `help:"Start from this cursor instead of the newest page"`
	Format  string `short:"f" enum:"json,rss,markdown" default:"json" help:"Output format (json, rss, markdown)"`
	Out     string `short:"o" type:"path" help:"Output directory for markdown"`
}

// SyncCmd is the "sync" subcommand.
type SyncCmd struct {
	Channels    []string `arg:"" optional:"" help:"Channels to sync (default: tracked and configured channels)"`
	Pages       int      `short:"n" help:"Pages to fetch per channel (default from config)"`
	Concurrency int      `short:"c" help:"Channels synced in parallel (default from config)"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Channel string `arg:"" help:"Channel username"`
	Format  string `short:"f" enum:"json,rss" default:"json" help:"Output format (json, rss)"`
	Limit   int    `short:"l" help:"Maximum messages to show"`
	Offset  int    `help:"Messages to skip"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Channel string `arg:"" help:"Channel username"`
	Force   bool   `help:"Confirm deletion"`
}
