// Package slog wraps offsync services with structured logging.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/offsync"
)

// Ensure LoggingFetcher implements offsync.Fetcher.
var _ offsync.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher and logs every request. Successful
// fetches are logged at debug level, failures at warn level with their
// error code.
type LoggingFetcher struct {
	next   offsync.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next offsync.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		if err != nil {
			f.logger.Warn("fetch",
				"url", url,
				"code", offsync.ErrorCode(err),
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		f.logger.Debug("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// Ensure LoggingURLSource implements offsync.URLSource.
var _ offsync.URLSource = (*LoggingURLSource)(nil)

// LoggingURLSource wraps a URLSource with logging.
type LoggingURLSource struct {
	next   offsync.URLSource
	logger *slog.Logger
}

// NewLoggingURLSource creates a new LoggingURLSource.
func NewLoggingURLSource(next offsync.URLSource, logger *slog.Logger) *LoggingURLSource {
	return &LoggingURLSource{next: next, logger: logger}
}

// Discover delegates to the wrapped source and logs the operation.
func (s *LoggingURLSource) Discover(ctx context.Context, sourceURL string) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("discover",
			"url", sourceURL,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Discover(ctx, sourceURL)
}
