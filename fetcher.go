package offsync

import (
	"context"
	"time"
)

// DefaultFetchTimeout bounds a single request so one hung server cannot
// stall a whole sync run.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent is sent with every request. Some sites refuse clients
// that do not look like a browser.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Fetcher retrieves the HTML of a single URL.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its body as text.
	// Failures carry one of ETRANSPORT, ESTATUS or EDECODE.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// URLSource discovers page URLs to synchronize, e.g. from a sitemap.
type URLSource interface {
	Discover(ctx context.Context, sourceURL string) ([]string, error)
}
