package mock

import (
	"context"

	"github.com/fwojciec/offsync"
)

var _ offsync.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of offsync.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ offsync.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of offsync.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.WaitFn(ctx, domain)
}

var _ offsync.URLSource = (*URLSource)(nil)

// URLSource is a mock implementation of offsync.URLSource.
type URLSource struct {
	DiscoverFn func(ctx context.Context, sourceURL string) ([]string, error)
}

func (s *URLSource) Discover(ctx context.Context, sourceURL string) ([]string, error) {
	return s.DiscoverFn(ctx, sourceURL)
}
