package offsync

import "context"

// IndexFilename is the name of the index file inside the offline directory.
const IndexFilename = "index.json"

// Index maps source URLs to the filenames of their offline artifacts.
// It is the single source of truth for what is cached: a URL missing from
// the index, or whose artifact is gone from disk, is not available.
type Index struct {
	Entries map[string]string `json:"entries"`
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{Entries: make(map[string]string)}
}

// Lookup returns the artifact filename stored for url.
func (idx *Index) Lookup(url string) (string, bool) {
	if idx == nil {
		return "", false
	}
	filename, ok := idx.Entries[url]
	return filename, ok
}

// Set records filename as the artifact for url, replacing any previous entry.
func (idx *Index) Set(url, filename string) {
	if idx.Entries == nil {
		idx.Entries = make(map[string]string)
	}
	idx.Entries[url] = filename
}

// Len returns the number of entries.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.Entries)
}

// IndexStore loads and persists the offline index.
type IndexStore interface {
	// LoadIndex returns the stored index, or an empty index if none exists.
	// Returns EINVALID if the stored index cannot be parsed.
	LoadIndex(ctx context.Context) (*Index, error)

	// SaveIndex replaces the stored index with idx.
	SaveIndex(ctx context.Context, idx *Index) error
}

// ArtifactStore reads and writes offline documents by filename.
type ArtifactStore interface {
	// Prepare makes sure the storage location exists.
	Prepare(ctx context.Context) error

	// WriteArtifact stores content under filename, overwriting any previous
	// artifact. It reports whether the stored bytes changed.
	WriteArtifact(ctx context.Context, filename string, content string) (changed bool, err error)

	// ReadArtifact returns the content stored under filename.
	// Returns ENOTFOUND if no such artifact exists.
	ReadArtifact(ctx context.Context, filename string) (string, error)

	// ArtifactExists reports whether an artifact file is present on disk.
	ArtifactExists(ctx context.Context, filename string) bool
}
