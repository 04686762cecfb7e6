// Package offline synchronizes remote pages into local offline storage and
// answers availability queries against it.
//
// A sync run fetches each URL, extracts its content region, writes the
// result as an artifact and records it in the index. Per-URL failures are
// logged and skipped; only storage preparation and the final index save
// can fail a run.
package offline

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/fwojciec/offsync"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Engine orchestrates sync runs and offline queries.
type Engine struct {
	Fetcher     offsync.Fetcher
	Extractor   offsync.Extractor
	Index       offsync.IndexStore
	Artifacts   offsync.ArtifactStore
	Notifier    offsync.Notifier
	RateLimiter offsync.DomainLimiter
	Logger      *slog.Logger

	// Concurrency is the number of URLs processed at once.
	// Values below 2 process URLs strictly one after another.
	Concurrency int
}

// Result holds the outcome of a sync run.
type Result struct {
	Total     int
	Saved     int
	Unchanged int
	Failed    int
}

// outcome is the result of processing a single URL.
type outcome struct {
	url      string
	filename string
	changed  bool
	err      error
}

// Sync fetches urls in order and stores them for offline use.
//
// A progress snapshot is sent before each URL is attempted and once more
// after the index has been saved. A non-nil error means the run could not
// prepare storage or persist the index.
func (e *Engine) Sync(ctx context.Context, urls []string) (*Result, error) {
	begin := time.Now()
	logger := e.logger().With("run", uuid.NewString())

	if err := e.Artifacts.Prepare(ctx); err != nil {
		return nil, fmt.Errorf("prepare offline storage: %w", err)
	}

	idx, err := e.Index.LoadIndex(ctx)
	if err != nil {
		logger.Warn("index unreadable, starting empty", "err", err)
		idx = offsync.NewIndex()
	}

	logger.Info("sync started", "urls", len(urls), "indexed", idx.Len(), "concurrency", max(e.Concurrency, 1))

	result := &Result{Total: len(urls)}
	if e.Concurrency <= 1 {
		e.syncSequential(ctx, logger, urls, idx, result)
	} else {
		e.syncConcurrent(ctx, logger, urls, idx, result)
	}

	if err := e.Index.SaveIndex(ctx, idx); err != nil {
		return nil, fmt.Errorf("persist index: %w", err)
	}

	e.notifier().Progress(offsync.SyncProgress{
		Total:       len(urls),
		Completed:   len(urls),
		CurrentItem: offsync.CompleteMarker,
		IsComplete:  true,
	})

	logger.Info("sync finished",
		"saved", result.Saved,
		"unchanged", result.Unchanged,
		"failed", result.Failed,
		"duration", time.Since(begin),
	)
	return result, nil
}

func (e *Engine) syncSequential(ctx context.Context, logger *slog.Logger, urls []string, idx *offsync.Index, result *Result) {
	notifier := e.notifier()
	for i, u := range urls {
		notifier.Progress(offsync.SyncProgress{
			Total:       len(urls),
			Completed:   i,
			CurrentItem: u,
		})
		record(logger, idx, result, e.processURL(ctx, u))
	}
}

// syncConcurrent fans URLs out to a bounded worker pool. The calling
// goroutine is the only one touching idx and result.
func (e *Engine) syncConcurrent(ctx context.Context, logger *slog.Logger, urls []string, idx *offsync.Index, result *Result) {
	notifier := e.notifier()

	// mu serializes notifier calls and guards completed.
	var mu sync.Mutex
	completed := 0

	resultCh := make(chan outcome, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.Concurrency)

	go func() {
		for _, u := range urls {
			g.Go(func() error {
				mu.Lock()
				notifier.Progress(offsync.SyncProgress{
					Total:       len(urls),
					Completed:   completed,
					CurrentItem: u,
				})
				mu.Unlock()

				resultCh <- e.processURL(gctx, u)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	for out := range resultCh {
		record(logger, idx, result, out)

		mu.Lock()
		completed++
		mu.Unlock()
	}
}

// processURL fetches, extracts and writes a single URL.
func (e *Engine) processURL(ctx context.Context, rawURL string) outcome {
	out := outcome{url: rawURL}

	if e.RateLimiter != nil {
		if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
			if err := e.RateLimiter.Wait(ctx, u.Host); err != nil {
				out.err = fmt.Errorf("rate limit wait: %w", err)
				return out
			}
		}
	}

	html, err := e.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		out.err = err
		return out
	}

	doc := e.Extractor.Extract(html, rawURL)
	out.filename = offsync.DeriveFilename(rawURL)

	out.changed, out.err = e.Artifacts.WriteArtifact(ctx, out.filename, doc)
	return out
}

// record applies a processed URL to the index and the run totals.
func record(logger *slog.Logger, idx *offsync.Index, result *Result, out outcome) {
	if out.err != nil {
		result.Failed++
		logger.Warn("url skipped",
			"url", out.url,
			"code", offsync.ErrorCode(out.err),
			"err", out.err,
		)
		return
	}

	idx.Set(out.url, out.filename)
	if out.changed {
		result.Saved++
	} else {
		result.Unchanged++
	}
	logger.Debug("url stored", "url", out.url, "file", out.filename, "changed", out.changed)
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}

func (e *Engine) notifier() offsync.Notifier {
	if e.Notifier == nil {
		return offsync.NotifierFuncs{}
	}
	return e.Notifier
}
