// Package http provides HTTP implementations of offsync.Fetcher and
// offsync.URLSource.
package http

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/offsync"
	"golang.org/x/net/html/charset"
)

// Request defaults.
const (
	DefaultFetchTimeout = offsync.DefaultFetchTimeout
	DefaultUserAgent    = offsync.DefaultUserAgent
)

// browserHeaders accompany the User-Agent on every request.
var browserHeaders = [][2]string{
	{"Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"},
	{"Accept-Language", "en-US,en;q=0.5"},
	{"Connection", "keep-alive"},
	{"Upgrade-Insecure-Requests", "1"},
}

// Ensure Fetcher implements offsync.Fetcher at compile time.
var _ offsync.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP GET requests.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithClient sets the underlying HTTP client. The fetcher's timeout is
// applied to a copy of it.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	client := &http.Client{}
	if f.client != nil {
		c := *f.client
		client = &c
	}
	client.Timeout = f.timeout
	f.client = client

	return f
}

// Fetch retrieves the page at url and returns its body decoded to UTF-8.
//
// Transport failures return ETRANSPORT, any status outside 2xx returns
// ESTATUS, and a body that cannot be read or decoded returns EDECODE.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", offsync.Errorf(offsync.EINVALID, "invalid request for %s: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	for _, h := range browserHeaders {
		req.Header.Set(h[0], h[1])
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", offsync.Errorf(offsync.ETRANSPORT, "failed to download %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", offsync.Errorf(offsync.ESTATUS, "HTTP %d for %s", resp.StatusCode, url)
	}

	// charset.NewReader honours the Content-Type parameter, a BOM or a
	// <meta charset> in the first kilobyte, in that order.
	r, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", offsync.Errorf(offsync.EDECODE, "failed to read response for %s: %v", url, err)
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return "", offsync.Errorf(offsync.EDECODE, "failed to read response for %s: %v", url, err)
	}

	return strings.ToValidUTF8(string(body), "�"), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
