package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/offsync"
)

// Ensure SitemapService implements offsync.URLSource.
var _ offsync.URLSource = (*SitemapService)(nil)

// SitemapService discovers page URLs from website sitemaps via HTTP.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, a client with DefaultFetchTimeout is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}
	return &SitemapService{client: client}
}

// Discover returns the page URLs listed in a sitemap, in document order and
// without duplicates.
//
// If sourceURL points at an XML file it is read directly. Otherwise the
// site's robots.txt is checked for Sitemap: directives, falling back to
// /sitemap.xml. Sitemap indexes are resolved recursively.
func (s *SitemapService) Discover(ctx context.Context, sourceURL string) ([]string, error) {
	base, err := url.Parse(sourceURL)
	if err != nil || base.Host == "" {
		return nil, offsync.Errorf(offsync.EINVALID, "invalid sitemap URL %q", sourceURL)
	}

	var sitemapURLs []string
	var guessed bool
	if strings.HasSuffix(strings.ToLower(base.Path), ".xml") {
		sitemapURLs = []string{sourceURL}
	} else {
		sitemapURLs, guessed = s.findSitemapURLs(ctx, base)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	urls := []string{}
	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)

	for _, sitemapURL := range sitemapURLs {
		found, err := s.processSitemap(ctx, sitemapURL, seenSitemaps)
		if err != nil && guessed && offsync.ErrorCode(err) == offsync.ESTATUS {
			// The site simply has no sitemap.
			return urls, nil
		}
		if err != nil {
			return nil, err
		}
		for _, u := range found {
			if !seenURLs[u] {
				seenURLs[u] = true
				urls = append(urls, u)
			}
		}
	}

	return urls, nil
}

// findSitemapURLs reads Sitemap: directives from robots.txt, falling back
// to /sitemap.xml when there are none. guessed reports the fallback.
func (s *SitemapService) findSitemapURLs(ctx context.Context, base *url.URL) (urls []string, guessed bool) {
	root := &url.URL{Scheme: base.Scheme, Host: base.Host}

	robotsURL := root.ResolveReference(&url.URL{Path: "/robots.txt"})
	if sitemaps, err := s.parseSitemapsFromRobots(ctx, robotsURL.String()); err == nil && len(sitemaps) > 0 {
		return sitemaps, false
	}

	return []string{root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()}, true
}

// parseSitemapsFromRobots extracts Sitemap: directives from robots.txt.
func (s *SitemapService) parseSitemapsFromRobots(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.fetchURL(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			if u := strings.TrimSpace(line[len("sitemap:"):]); u != "" {
				sitemaps = append(sitemaps, u)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}

	return sitemaps, nil
}

// processSitemap fetches and parses a sitemap, handling both urlset and sitemapindex.
func (s *SitemapService) processSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.fetchURL(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, offsync.Errorf(offsync.EINVALID, "parsing sitemap %s: %v", sitemapURL, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, offsync.Errorf(offsync.EINVALID, "empty sitemap %s", sitemapURL)
	}

	switch root.Tag {
	case "sitemapindex":
		var urls []string
		for _, loc := range locs(root, "sitemap") {
			found, err := s.processSitemap(ctx, loc, seen)
			if err != nil {
				return nil, err
			}
			urls = append(urls, found...)
		}
		return urls, nil
	case "urlset":
		return locs(root, "url"), nil
	default:
		return nil, offsync.Errorf(offsync.EINVALID, "unexpected sitemap root <%s> in %s", root.Tag, sitemapURL)
	}
}

// locs returns the trimmed <loc> text of each child element with the given tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// fetchURL fetches a URL and returns the response body.
func (s *SitemapService) fetchURL(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, offsync.Errorf(offsync.EINVALID, "invalid request for %s: %v", targetURL, err)
	}
	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, offsync.Errorf(offsync.ETRANSPORT, "failed to download %s: %v", targetURL, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, offsync.Errorf(offsync.ESTATUS, "HTTP %d for %s", resp.StatusCode, targetURL)
	}

	return resp.Body, nil
}
