package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/offsync"
)

// Ensure LoggingIndexStore implements offsync.IndexStore.
var _ offsync.IndexStore = (*LoggingIndexStore)(nil)

// LoggingIndexStore wraps an IndexStore with debug logging.
type LoggingIndexStore struct {
	next   offsync.IndexStore
	logger *slog.Logger
}

// NewLoggingIndexStore creates a new LoggingIndexStore.
func NewLoggingIndexStore(next offsync.IndexStore, logger *slog.Logger) *LoggingIndexStore {
	return &LoggingIndexStore{next: next, logger: logger}
}

// LoadIndex delegates to the wrapped store and logs the entry count.
func (s *LoggingIndexStore) LoadIndex(ctx context.Context) (idx *offsync.Index, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("load index",
			"entries", idx.Len(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.LoadIndex(ctx)
}

// SaveIndex delegates to the wrapped store and logs the entry count.
func (s *LoggingIndexStore) SaveIndex(ctx context.Context, idx *offsync.Index) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("save index",
			"entries", idx.Len(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveIndex(ctx, idx)
}
