package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/offsync"
)

// Run executes the sync command.
func (c *SyncCmd) Run(deps *Dependencies) error {
	out := c.textOutput(deps)
	urls, err := c.collectURLs(deps, out)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", offsync.ErrorMessage(err))
		return err
	}
	if len(urls) == 0 {
		err := offsync.Errorf(offsync.EINVALID, "no URLs to sync: pass URLs, --file or --sitemap")
		fmt.Fprintf(deps.Stderr, "error: %s\n", offsync.ErrorMessage(err))
		return err
	}

	if c.Concurrency > 0 {
		deps.Engine.Concurrency = c.Concurrency
	}
	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		deps.Engine.Notifier = offsync.NotifierFuncs{
			ProgressFn: func(p offsync.SyncProgress) {
				_ = enc.Encode(event{Event: offsync.EventSyncProgress, Payload: p})
			},
		}
	} else {
		deps.Engine.Notifier = offsync.NotifierFuncs{
			ProgressFn: func(p offsync.SyncProgress) {
				if p.IsComplete {
					return
				}
				fmt.Fprintf(out, "[%d/%d] %s\n", p.Completed+1, p.Total, p.CurrentItem)
			},
		}
	}

	if err := deps.Commands.DownloadAndStore(deps.Ctx, urls); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", offsync.ErrorMessage(err))
		return err
	}

	// Failed URLs only show up as missing from the store.
	available, err := deps.Commands.CheckOfflineAvailability(deps.Ctx, urls)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", offsync.ErrorMessage(err))
		return err
	}
	stored := 0
	for i, ok := range available {
		if ok {
			stored++
			continue
		}
		fmt.Fprintf(deps.Stderr, "  not stored: %s\n", urls[i])
	}
	fmt.Fprintf(out, "Stored %d of %d URLs\n", stored, len(urls))

	return nil
}

// event is one line of --json output.
type event struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// textOutput is where human-readable lines go. With --json, stdout carries
// only events.
func (c *SyncCmd) textOutput(deps *Dependencies) io.Writer {
	if c.JSON {
		return deps.Stderr
	}
	return deps.Stdout
}

// collectURLs merges positional URLs, the URL file and the sitemap, in that
// order, dropping duplicates.
func (c *SyncCmd) collectURLs(deps *Dependencies, out io.Writer) ([]string, error) {
	var urls []string
	seen := make(map[string]bool)
	add := func(u string) {
		if u != "" && !seen[u] {
			seen[u] = true
			urls = append(urls, u)
		}
	}

	for _, u := range c.URLs {
		add(strings.TrimSpace(u))
	}

	if c.File != "" {
		fromFile, err := readURLFile(c.File)
		if err != nil {
			return nil, err
		}
		for _, u := range fromFile {
			add(u)
		}
	}

	if c.Sitemap != "" {
		if deps.Sources == nil {
			return nil, offsync.Errorf(offsync.EINTERNAL, "sitemap discovery is not configured")
		}
		discovered, err := deps.Sources.Discover(deps.Ctx, c.Sitemap)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(out, "Found %d URLs in sitemap\n", len(discovered))
		for _, u := range discovered {
			add(u)
		}
	}

	return urls, nil
}

// readURLFile reads one URL per line, skipping blank lines and # comments.
func readURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, offsync.Errorf(offsync.EINVALID, "cannot open URL file: %v", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, offsync.Errorf(offsync.EINVALID, "cannot read URL file: %v", err)
	}
	return urls, nil
}
