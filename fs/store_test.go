package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/offsync"
	"github.com/fwojciec/offsync/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Offline Storage
// The store keeps index.json and artifacts in <base>/offline_content

func TestStore_Dir(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	store := fs.NewStore(base)

	assert.Equal(t, filepath.Join(base, "offline_content"), store.Dir())
}

func TestStore_PrepareCreatesDirectory(t *testing.T) {
	t.Parallel()

	// Given a base directory without an offline directory
	base := filepath.Join(t.TempDir(), "nested", "app")
	store := fs.NewStore(base)

	// When I prepare the store
	err := store.Prepare(context.Background())

	// Then the offline directory exists
	require.NoError(t, err)
	info, err := os.Stat(store.Dir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// And preparing again is harmless
	require.NoError(t, store.Prepare(context.Background()))
}

func TestStore_PrepareFailsWhenBaseIsAFile(t *testing.T) {
	t.Parallel()

	// Given a base path that is a regular file
	base := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(base, []byte("x"), 0644))
	store := fs.NewStore(base)

	// When I prepare the store
	err := store.Prepare(context.Background())

	// Then it fails
	require.Error(t, err)
}

func TestStore_LoadIndex(t *testing.T) {
	t.Parallel()

	t.Run("missing file yields empty index", func(t *testing.T) {
		t.Parallel()

		store := fs.NewStore(t.TempDir())

		idx, err := store.LoadIndex(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 0, idx.Len())
	})

	t.Run("corrupt file is reported as invalid", func(t *testing.T) {
		t.Parallel()

		store := fs.NewStore(t.TempDir())
		require.NoError(t, store.Prepare(context.Background()))
		require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "index.json"), []byte("{not json"), 0644))

		_, err := store.LoadIndex(context.Background())

		require.Error(t, err)
		assert.Equal(t, offsync.EINVALID, offsync.ErrorCode(err))
	})

	t.Run("null entries yields usable index", func(t *testing.T) {
		t.Parallel()

		store := fs.NewStore(t.TempDir())
		require.NoError(t, store.Prepare(context.Background()))
		require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "index.json"), []byte(`{"entries":null}`), 0644))

		idx, err := store.LoadIndex(context.Background())

		require.NoError(t, err)
		idx.Set("https://example.com/", "x.html")
		assert.Equal(t, 1, idx.Len())
	})
}

func TestStore_SaveIndexRoundTrip(t *testing.T) {
	t.Parallel()

	// Given a prepared store and an index with entries
	store := fs.NewStore(t.TempDir())
	require.NoError(t, store.Prepare(context.Background()))
	idx := offsync.NewIndex()
	idx.Set("https://attack.mitre.org/techniques/T1059/", "__attack.mitre.org_techniques_T1059_.html")
	idx.Set("https://attack.mitre.org/tactics/TA0001/", "__attack.mitre.org_tactics_TA0001_.html")

	// When I save and load it again
	require.NoError(t, store.SaveIndex(context.Background(), idx))
	loaded, err := store.LoadIndex(context.Background())

	// Then the entries survive
	require.NoError(t, err)
	assert.Equal(t, idx.Entries, loaded.Entries)

	// And the file uses the entries schema with indentation
	data, err := os.ReadFile(filepath.Join(store.Dir(), "index.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"entries\": {")

	// And no temp files remain
	assertOnlyFiles(t, store.Dir(), "index.json")
}

func TestStore_SaveIndexOverwrites(t *testing.T) {
	t.Parallel()

	store := fs.NewStore(t.TempDir())
	require.NoError(t, store.Prepare(context.Background()))

	first := offsync.NewIndex()
	first.Set("https://example.com/a", "a.html")
	first.Set("https://example.com/b", "b.html")
	require.NoError(t, store.SaveIndex(context.Background(), first))

	second := offsync.NewIndex()
	second.Set("https://example.com/c", "c.html")
	require.NoError(t, store.SaveIndex(context.Background(), second))

	loaded, err := store.LoadIndex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"https://example.com/c": "c.html"}, loaded.Entries)
}

func TestStore_SaveIndexFailsWithoutDirectory(t *testing.T) {
	t.Parallel()

	// Given a store whose directory was never created
	store := fs.NewStore(filepath.Join(t.TempDir(), "missing"))

	// When I save an index
	err := store.SaveIndex(context.Background(), offsync.NewIndex())

	// Then it fails
	require.Error(t, err)
}

func TestStore_WriteArtifact(t *testing.T) {
	t.Parallel()

	t.Run("writes new content", func(t *testing.T) {
		t.Parallel()

		store := fs.NewStore(t.TempDir())
		require.NoError(t, store.Prepare(context.Background()))

		changed, err := store.WriteArtifact(context.Background(), "page.html", "<p>hello</p>")

		require.NoError(t, err)
		assert.True(t, changed)
		data, err := os.ReadFile(filepath.Join(store.Dir(), "page.html"))
		require.NoError(t, err)
		assert.Equal(t, "<p>hello</p>", string(data))
		assertOnlyFiles(t, store.Dir(), "page.html")
	})

	t.Run("writes names at the derived length limit", func(t *testing.T) {
		t.Parallel()

		// Given the longest name DeriveFilename produces
		name := offsync.DeriveFilename("https://ja.example.org/wiki/" + strings.Repeat("日", 150))
		store := fs.NewStore(t.TempDir())
		require.NoError(t, store.Prepare(context.Background()))

		changed, err := store.WriteArtifact(context.Background(), name, "<p>日本</p>")

		require.NoError(t, err)
		assert.True(t, changed)
		assert.True(t, store.ArtifactExists(context.Background(), name))
		assertOnlyFiles(t, store.Dir(), name)
	})

	t.Run("skips identical content", func(t *testing.T) {
		t.Parallel()

		// Given an artifact already on disk
		store := fs.NewStore(t.TempDir())
		require.NoError(t, store.Prepare(context.Background()))
		_, err := store.WriteArtifact(context.Background(), "page.html", "same")
		require.NoError(t, err)
		path := filepath.Join(store.Dir(), "page.html")
		old := time.Now().Add(-time.Hour).Truncate(time.Second)
		require.NoError(t, os.Chtimes(path, old, old))

		// When I write the same content
		changed, err := store.WriteArtifact(context.Background(), "page.html", "same")

		// Then nothing changes
		require.NoError(t, err)
		assert.False(t, changed)
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.True(t, info.ModTime().Equal(old))
	})

	t.Run("overwrites different content", func(t *testing.T) {
		t.Parallel()

		store := fs.NewStore(t.TempDir())
		require.NoError(t, store.Prepare(context.Background()))
		_, err := store.WriteArtifact(context.Background(), "page.html", "v1")
		require.NoError(t, err)

		changed, err := store.WriteArtifact(context.Background(), "page.html", "v2")

		require.NoError(t, err)
		assert.True(t, changed)
		content, err := store.ReadArtifact(context.Background(), "page.html")
		require.NoError(t, err)
		assert.Equal(t, "v2", content)
	})

	t.Run("rejects path traversal", func(t *testing.T) {
		t.Parallel()

		store := fs.NewStore(t.TempDir())
		require.NoError(t, store.Prepare(context.Background()))

		for _, name := range []string{"", "..", "../escape.html", "dir/file.html"} {
			_, err := store.WriteArtifact(context.Background(), name, "x")
			require.Error(t, err, name)
			assert.Equal(t, offsync.EINVALID, offsync.ErrorCode(err), name)
		}
	})

	t.Run("fails without directory", func(t *testing.T) {
		t.Parallel()

		store := fs.NewStore(filepath.Join(t.TempDir(), "missing"))

		_, err := store.WriteArtifact(context.Background(), "page.html", "x")

		require.Error(t, err)
	})
}

func TestStore_ReadArtifact(t *testing.T) {
	t.Parallel()

	t.Run("missing artifact is not found", func(t *testing.T) {
		t.Parallel()

		store := fs.NewStore(t.TempDir())

		_, err := store.ReadArtifact(context.Background(), "absent.html")

		require.Error(t, err)
		assert.Equal(t, offsync.ENOTFOUND, offsync.ErrorCode(err))
	})

	t.Run("returns bytes verbatim", func(t *testing.T) {
		t.Parallel()

		store := fs.NewStore(t.TempDir())
		require.NoError(t, store.Prepare(context.Background()))
		content := "<!DOCTYPE html>\n<p>café &amp; ☕</p>\n"
		_, err := store.WriteArtifact(context.Background(), "page.html", content)
		require.NoError(t, err)

		got, err := store.ReadArtifact(context.Background(), "page.html")

		require.NoError(t, err)
		assert.Equal(t, content, got)
	})
}

func TestStore_ArtifactExists(t *testing.T) {
	t.Parallel()

	// Given an artifact on disk
	store := fs.NewStore(t.TempDir())
	require.NoError(t, store.Prepare(context.Background()))
	_, err := store.WriteArtifact(context.Background(), "page.html", "x")
	require.NoError(t, err)

	// Then it exists
	assert.True(t, store.ArtifactExists(context.Background(), "page.html"))
	assert.False(t, store.ArtifactExists(context.Background(), "other.html"))
	assert.False(t, store.ArtifactExists(context.Background(), "../page.html"))

	// When it is removed out of band
	require.NoError(t, os.Remove(filepath.Join(store.Dir(), "page.html")))

	// Then it no longer exists
	assert.False(t, store.ArtifactExists(context.Background(), "page.html"))
}

func assertOnlyFiles(t *testing.T, dir string, names ...string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	got := make([]string, 0, len(entries))
	for _, e := range entries {
		got = append(got, e.Name())
	}
	assert.ElementsMatch(t, names, got)
}
