package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/offsync"
	"github.com/fwojciec/offsync/offline"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Engine    *offline.Engine
	Commands  *offline.Commands
	Sources   offsync.URLSource
	Converter offsync.Converter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Dir     string `short:"d" env:"OFFSYNC_DIR" default:"${default_dir}" help:"Storage base directory (offline_content is created inside)"`
	Verbose bool   `short:"v" help:"Log every request"`

	Sync   SyncCmd   `cmd:"" help:"Download pages and store them for offline use"`
	Check  CheckCmd  `cmd:"" help:"Report which URLs are available offline"`
	Status StatusCmd `cmd:"" help:"Report whether one URL is available offline"`
	Show   ShowCmd   `cmd:"" help:"Print the offline copy of a URL"`
}

// SyncCmd is the "sync" subcommand.
type SyncCmd struct {
	URLs        []string      `arg:"" optional:"" name:"url" help:"URLs to store"`
	File        string        `short:"f" type:"existingfile" help:"Read URLs from a file, one per line"`
	Sitemap     string        `short:"s" help:"Add every page listed in a site's sitemap"`
	Concurrency int           `short:"c" default:"1" help:"Concurrent fetch limit"`
	Timeout     time.Duration `short:"t" default:"30s" help:"Per-request timeout"`
	RPS         float64       `name:"rps" default:"0" help:"Requests per second per host (0 = unlimited)"`
	Browser     bool          `short:"b" help:"Render pages with headless Chrome (one page at a time)"`
	JSON        bool          `name:"json" help:"Print progress as JSON event lines"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	URLs []string `arg:"" name:"url" help:"URLs to check"`
}

// StatusCmd is the "status" subcommand.
type StatusCmd struct {
	URL string `arg:"" help:"URL to check"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	URL      string `arg:"" help:"URL to print"`
	Markdown bool   `short:"m" help:"Render as Markdown instead of HTML"`
}
