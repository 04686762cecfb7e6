package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/offsync"
	"github.com/fwojciec/offsync/fs"
	"github.com/fwojciec/offsync/goquery"
	"github.com/fwojciec/offsync/htmltomarkdown"
	offhttp "github.com/fwojciec/offsync/http"
	"github.com/fwojciec/offsync/offline"
	"github.com/fwojciec/offsync/rod"
	offslog "github.com/fwojciec/offsync/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Default storage base directory. Set before calling Run().
	// The --dir flag and OFFSYNC_DIR take precedence.
	Dir string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Dir: defaultDir(),
	}
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
		kong.Name("offsync"),
		kong.Description("Keep web pages available offline."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{"default_dir": m.Dir},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'offsync --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	store := fs.NewStore(cli.Dir)
	engine := &offline.Engine{
		Index:     offslog.NewLoggingIndexStore(store, logger),
		Artifacts: store,
		Logger:    logger,
	}

	if kongCtx.Selected() != nil && kongCtx.Selected().Name == "sync" {
		// Pages and sitemaps share one client and the --timeout flag.
		client := &http.Client{Timeout: cli.Sync.Timeout}
		fetcher, err := newFetcher(cli.Sync, client)
		if err != nil {
			if cli.Sync.Browser {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			}
			return fmt.Errorf("failed to start fetcher: %w", err)
		}
		defer fetcher.Close()

		engine.Fetcher = offslog.NewLoggingFetcher(fetcher, logger)
		engine.Extractor = goquery.NewExtractor()
		if cli.Sync.RPS > 0 {
			engine.RateLimiter = offline.NewDomainLimiter(cli.Sync.RPS)
		}
		deps.Sources = offslog.NewLoggingURLSource(offhttp.NewSitemapService(client), logger)
	}

	deps.Engine = engine
	deps.Commands = offline.NewCommands(engine)
	deps.Converter = htmltomarkdown.NewConverter()

	return kongCtx.Run(deps)
}

func newFetcher(c SyncCmd, client *http.Client) (offsync.Fetcher, error) {
	if c.Browser {
		return rod.NewFetcher(rod.WithFetchTimeout(c.Timeout))
	}
	return offhttp.NewFetcher(offhttp.WithClient(client), offhttp.WithTimeout(c.Timeout)), nil
}

func defaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".offsync"
	}
	return filepath.Join(dir, "offsync")
}
