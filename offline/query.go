package offline

import (
	"context"
	"fmt"

	"github.com/fwojciec/offsync"
)

// Available reports whether url has an index entry whose artifact is
// still on disk. Absence is never an error.
func (e *Engine) Available(ctx context.Context, url string) (bool, error) {
	idx, err := e.loadIndex(ctx)
	if err != nil {
		return false, err
	}
	return e.available(ctx, idx, url), nil
}

// Content returns the cached document for url. ok is false when the URL
// is not available offline.
func (e *Engine) Content(ctx context.Context, url string) (content string, ok bool, err error) {
	idx, err := e.loadIndex(ctx)
	if err != nil {
		return "", false, err
	}

	filename, found := idx.Lookup(url)
	if !found {
		return "", false, nil
	}

	content, err = e.Artifacts.ReadArtifact(ctx, filename)
	if offsync.ErrorCode(err) == offsync.ENOTFOUND {
		e.logger().Debug("indexed artifact missing", "url", url, "file", filename)
		return "", false, nil
	} else if err != nil {
		return "", false, err
	}
	return content, true, nil
}

// CheckMany reports availability for each of urls, in order, loading the
// index once.
func (e *Engine) CheckMany(ctx context.Context, urls []string) ([]bool, error) {
	idx, err := e.loadIndex(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]bool, len(urls))
	for i, u := range urls {
		results[i] = e.available(ctx, idx, u)
	}
	return results, nil
}

// AvailableWithNotify is Available that also pushes the cached document
// to the Notifier's ContentReady when the URL is available.
func (e *Engine) AvailableWithNotify(ctx context.Context, url string) (bool, error) {
	content, ok, err := e.Content(ctx, url)
	if err != nil || !ok {
		return false, err
	}
	e.notifier().ContentReady(content)
	return true, nil
}

func (e *Engine) available(ctx context.Context, idx *offsync.Index, url string) bool {
	filename, ok := idx.Lookup(url)
	return ok && e.Artifacts.ArtifactExists(ctx, filename)
}

// loadIndex loads the index for a query. A corrupt index answers every
// query with "not available".
func (e *Engine) loadIndex(ctx context.Context) (*offsync.Index, error) {
	idx, err := e.Index.LoadIndex(ctx)
	if offsync.ErrorCode(err) == offsync.EINVALID {
		e.logger().Warn("index unreadable, treating as empty", "err", err)
		return offsync.NewIndex(), nil
	} else if err != nil {
		return nil, fmt.Errorf("load index: %w", err)
	}
	return idx, nil
}
