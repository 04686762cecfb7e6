// Package fs provides file-based storage for offline content.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/offsync"
)

// DirName is the name of the offline directory created under the base directory.
const DirName = "offline_content"

// Ensure Store implements the storage interfaces at compile time.
var (
	_ offsync.IndexStore    = (*Store)(nil)
	_ offsync.ArtifactStore = (*Store)(nil)
)

// Store keeps the offline index and artifacts in a single directory:
//
//	<base>/offline_content/index.json
//	<base>/offline_content/<filename>.html
//
// Files are replaced by writing a temporary sibling and renaming it.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at baseDir/offline_content.
// Nothing is created on disk until Prepare or a write is called.
func NewStore(baseDir string) *Store {
	return &Store{dir: filepath.Join(baseDir, DirName)}
}

// Dir returns the offline directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) indexPath() string {
	return filepath.Join(s.dir, offsync.IndexFilename)
}

// Prepare creates the offline directory if needed.
func (s *Store) Prepare(ctx context.Context) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create offline directory: %w", err)
	}
	return nil
}

// LoadIndex reads index.json. A missing file yields an empty index.
func (s *Store) LoadIndex(ctx context.Context) (*offsync.Index, error) {
	data, err := os.ReadFile(s.indexPath())
	if errors.Is(err, fs.ErrNotExist) {
		return offsync.NewIndex(), nil
	} else if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}

	var idx offsync.Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, offsync.Errorf(offsync.EINVALID, "corrupt index %s: %v", s.indexPath(), err)
	}
	if idx.Entries == nil {
		idx.Entries = make(map[string]string)
	}
	return &idx, nil
}

// SaveIndex writes idx as indented JSON, replacing the previous file.
func (s *Store) SaveIndex(ctx context.Context, idx *offsync.Index) error {
	if idx == nil || idx.Entries == nil {
		idx = offsync.NewIndex()
	}

	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	if err := s.writeFile(offsync.IndexFilename, data); err != nil {
		return fmt.Errorf("save index: %w", err)
	}
	return nil
}

// WriteArtifact stores content under filename. When the file already holds
// identical bytes it is left untouched and changed is false.
func (s *Store) WriteArtifact(ctx context.Context, filename string, content string) (bool, error) {
	if err := validateFilename(filename); err != nil {
		return false, err
	}

	if sum, err := s.fileHash(filename); err == nil && sum == xxhash.Sum64String(content) {
		return false, nil
	}

	if err := s.writeFile(filename, []byte(content)); err != nil {
		return false, fmt.Errorf("write artifact %s: %w", filename, err)
	}
	return true, nil
}

// ReadArtifact returns the content of filename.
func (s *Store) ReadArtifact(ctx context.Context, filename string) (string, error) {
	if err := validateFilename(filename); err != nil {
		return "", err
	}

	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if errors.Is(err, fs.ErrNotExist) {
		return "", offsync.Errorf(offsync.ENOTFOUND, "artifact not found: %s", filename)
	} else if err != nil {
		return "", fmt.Errorf("read artifact %s: %w", filename, err)
	}
	return string(data), nil
}

// ArtifactExists reports whether filename is present in the offline directory.
func (s *Store) ArtifactExists(ctx context.Context, filename string) bool {
	if validateFilename(filename) != nil {
		return false
	}
	info, err := os.Stat(filepath.Join(s.dir, filename))
	return err == nil && info.Mode().IsRegular()
}

func (s *Store) fileHash(filename string) (uint64, error) {
	f, err := os.Open(filepath.Join(s.dir, filename))
	if err != nil {
		return 0, err
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}

// writeFile writes data to a temp file in the offline directory and renames
// it over filename.
func (s *Store) writeFile(filename string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, filename)); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func validateFilename(filename string) error {
	if filename == "" || filename == "." || filename == ".." ||
		strings.ContainsRune(filename, '/') || strings.ContainsRune(filename, filepath.Separator) {
		return offsync.Errorf(offsync.EINVALID, "invalid artifact filename %q", filename)
	}
	return nil
}
