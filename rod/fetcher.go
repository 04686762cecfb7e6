// Package rod fetches pages through headless Chrome for sites that render
// their content client-side.
package rod

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fwojciec/offsync"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements offsync.Fetcher at compile time.
var _ offsync.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser   *browser
	timeout   time.Duration
	userAgent string
	maxPages  int
	closed    atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds each page load, including script execution.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the browser's User-Agent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxPages sets how many pages are rendered before Chrome is restarted.
// Zero disables restarts.
func WithMaxPages(n int) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher launches headless Chrome and returns a Fetcher using it.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:   offsync.DefaultFetchTimeout,
		userAgent: offsync.DefaultUserAgent,
		maxPages:  DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	b, err := launchBrowser(f.maxPages)
	if err != nil {
		return nil, err
	}
	f.browser = b
	return f, nil
}

// Fetch navigates to url, waits for the load event and returns the
// rendered document.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", offsync.Errorf(offsync.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	inst, err := f.browser.acquire()
	if err != nil {
		return "", offsync.Errorf(offsync.EINVALID, "%v", err)
	}
	defer f.browser.release(inst)

	page, err := inst.rb.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", offsync.Errorf(offsync.ETRANSPORT, "open page for %s: %v", url, err)
	}
	defer page.Close()

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	page = page.Context(ctx)

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
		return "", transportError(ctx, url, err)
	}
	if err := page.Navigate(url); err != nil {
		return "", transportError(ctx, url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", transportError(ctx, url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", offsync.Errorf(offsync.EDECODE, "read rendered HTML of %s: %v", url, err)
	}
	return html, nil
}

// Close shuts Chrome down. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.browser.close()
}

// transportError keeps context errors matchable with errors.Is.
func transportError(ctx context.Context, url string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("fetch %s: %w", url, ctxErr)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	return offsync.Errorf(offsync.ETRANSPORT, "failed to load %s: %v", url, err)
}
