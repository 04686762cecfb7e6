package mock

import (
	"context"

	"github.com/fwojciec/offsync"
)

var _ offsync.IndexStore = (*IndexStore)(nil)

// IndexStore is a mock implementation of offsync.IndexStore.
type IndexStore struct {
	LoadIndexFn func(ctx context.Context) (*offsync.Index, error)
	SaveIndexFn func(ctx context.Context, idx *offsync.Index) error
}

func (s *IndexStore) LoadIndex(ctx context.Context) (*offsync.Index, error) {
	return s.LoadIndexFn(ctx)
}

func (s *IndexStore) SaveIndex(ctx context.Context, idx *offsync.Index) error {
	return s.SaveIndexFn(ctx, idx)
}

var _ offsync.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore is a mock implementation of offsync.ArtifactStore.
type ArtifactStore struct {
	PrepareFn        func(ctx context.Context) error
	WriteArtifactFn  func(ctx context.Context, filename string, content string) (bool, error)
	ReadArtifactFn   func(ctx context.Context, filename string) (string, error)
	ArtifactExistsFn func(ctx context.Context, filename string) bool
}

func (s *ArtifactStore) Prepare(ctx context.Context) error {
	return s.PrepareFn(ctx)
}

func (s *ArtifactStore) WriteArtifact(ctx context.Context, filename string, content string) (bool, error) {
	return s.WriteArtifactFn(ctx, filename, content)
}

func (s *ArtifactStore) ReadArtifact(ctx context.Context, filename string) (string, error) {
	return s.ReadArtifactFn(ctx, filename)
}

func (s *ArtifactStore) ArtifactExists(ctx context.Context, filename string) bool {
	return s.ArtifactExistsFn(ctx, filename)
}
