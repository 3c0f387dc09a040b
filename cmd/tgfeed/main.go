package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/tgfeed"
	"github.com/fwojciec/tgfeed/channel"
	"github.com/fwojciec/tgfeed/crawl"
	"github.com/fwojciec/tgfeed/extract"
	"github.com/fwojciec/tgfeed/goquery"
	tghttp "github.com/fwojciec/tgfeed/http"
	tgslog "github.com/fwojciec/tgfeed/slog"
	"github.com/fwojciec/tgfeed/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Paths used when neither a flag nor the config file sets them.
	// Set before calling Run().
	DBPath     string
	ConfigPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Fetcher overrides the HTTP transport, for end-to-end testing.
	Fetcher tgfeed.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: defaultConfigPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("tgfeed"),
		kong.Description("Read public Telegram channels as structured messages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'tgfeed --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	configPath := m.ConfigPath
	if cli.Config != "" {
		configPath = cli.Config
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}
	deps.Config = cfg

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Skip = tgslog.SkipLogger(deps.Logger)

	if cmd == "fetch" || cmd == "sync" {
		pager, decoder, err := m.newPipeline(cfg, deps.Logger, deps.Skip)
		if err != nil {
			return err
		}
		deps.Pager = pager
		deps.Decoder = decoder
	}

	// fetch works without the archive.
	if cmd != "fetch" {
		dbPath := firstNonEmpty(cli.DB, m.DBPath, cfg.Database)
		if dbPath == "" {
			dbPath = defaultDBPath()
		}
		m.DB = sqlite.NewDB(dbPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set TGFEED_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
		}
		defer m.Close()

		deps.Channels = sqlite.NewChannelService(m.DB)
		deps.Messages = tgslog.NewLoggingMessageService(sqlite.NewMessageService(m.DB), deps.Logger)
	}

	return kongCtx.Run(deps)
}

// newPipeline wires transport, parsing and decoding. Requests are logged per
// attempt, paced per host and retried with backoff.
func (m *Main) newPipeline(cfg *Config, logger *slog.Logger, skip tgfeed.SkipFunc) (*channel.Pager, *extract.Decoder, error) {
	registry := goquery.NewDefaultRegistry()

	parser, err := goquery.NewParser(registry)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create parser: %w", err)
	}
	decoder, err := extract.NewDecoder(registry, extract.WithSkipFunc(skip))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher = tghttp.NewFetcher(tghttp.WithTimeout(cfg.Timeout))
	}
	fetcher = tgslog.NewLoggingFetcher(fetcher, logger)
	if cfg.RateLimit > 0 {
		fetcher = crawl.NewLimitedFetcher(fetcher, crawl.NewDomainLimiter(cfg.RateLimit))
	}
	fetcher = crawl.NewRetryFetcher(fetcher,
		crawl.WithRetryDelays(cfg.RetryDelays()),
		crawl.WithRetryLogger(func(format string, args ...any) {
			logger.Warn(fmt.Sprintf(format, args...))
		}),
	)

	pager := channel.NewPager(fetcher, tgslog.NewLoggingParser(parser, logger),
		channel.WithBaseURL(cfg.BaseURL),
	)
	return pager, decoder, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
