package offline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/offsync"
	"github.com/fwojciec/offsync/fs"
	"github.com/fwojciec/offsync/goquery"
	"github.com/fwojciec/offsync/mock"
	"github.com/fwojciec/offsync/offline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommands(t *testing.T) {
	t.Parallel()

	t.Run("download then query", func(t *testing.T) {
		t.Parallel()

		// Given a host wired to the command set
		engine, _ := newEngine(t, pages(nil))
		var progress []offsync.SyncProgress
		var ready []string
		engine.Notifier = offsync.NotifierFuncs{
			ProgressFn:     func(p offsync.SyncProgress) { progress = append(progress, p) },
			ContentReadyFn: func(c string) { ready = append(ready, c) },
		}
		cmds := offline.NewCommands(engine)

		// When it downloads two URLs
		require.NoError(t, cmds.DownloadAndStore(context.Background(), []string{urlA, urlB}))

		// Then progress ends with the completion snapshot
		require.NotEmpty(t, progress)
		assert.True(t, progress[len(progress)-1].IsComplete)

		// And raw content is returned without a notification
		raw, ok, err := cmds.GetOfflineContentRaw(context.Background(), urlA)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Contains(t, raw, urlA)
		assert.Empty(t, ready)

		// And the legacy availability check pushes the content
		available, err := cmds.IsOfflineAvailable(context.Background(), urlA)
		require.NoError(t, err)
		assert.True(t, available)
		assert.Equal(t, []string{raw}, ready)

		// And batch availability follows input order
		got, err := cmds.CheckOfflineAvailability(context.Background(), []string{urlC, urlA, urlB})
		require.NoError(t, err)
		assert.Equal(t, []bool{false, true, true}, got)
	})

	t.Run("missing content is not an error", func(t *testing.T) {
		t.Parallel()

		engine, _ := newEngine(t, pages(nil))
		cmds := offline.NewCommands(engine)

		raw, ok, err := cmds.GetOfflineContentRaw(context.Background(), urlA)

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, raw)
	})

	t.Run("legacy check is false when the artifact was removed", func(t *testing.T) {
		t.Parallel()

		// Given a synced URL whose file was deleted out of band
		engine, store := newEngine(t, pages(nil))
		cmds := offline.NewCommands(engine)
		require.NoError(t, cmds.DownloadAndStore(context.Background(), []string{urlA}))
		require.NoError(t, os.Remove(filepath.Join(store.Dir(), offsync.DeriveFilename(urlA))))
		engine.Notifier = offsync.NotifierFuncs{
			ContentReadyFn: func(string) { t.Error("unexpected content notification") },
		}

		// When the host asks whether it is available
		available, err := cmds.IsOfflineAvailable(context.Background(), urlA)

		// Then it is not, and nothing is pushed
		require.NoError(t, err)
		assert.False(t, available)
	})

	t.Run("fatal sync error becomes one message", func(t *testing.T) {
		t.Parallel()

		base := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(base, nil, 0644))
		cmds := offline.NewCommands(&offline.Engine{
			Fetcher:   pages(nil),
			Extractor: goquery.NewExtractor(),
			Index:     fs.NewStore(base),
			Artifacts: fs.NewStore(base),
		})

		err := cmds.DownloadAndStore(context.Background(), []string{urlA})

		require.Error(t, err)
		assert.Equal(t, offsync.EINTERNAL, offsync.ErrorCode(err))
		assert.Contains(t, offsync.ErrorMessage(err), "download and store failed: prepare offline storage")
	})

	t.Run("query errors keep their code", func(t *testing.T) {
		t.Parallel()

		cmds := offline.NewCommands(&offline.Engine{
			Index: &mock.IndexStore{
				LoadIndexFn: func(context.Context) (*offsync.Index, error) {
					return nil, errors.New("permission denied")
				},
			},
		})

		_, err := cmds.CheckOfflineAvailability(context.Background(), []string{urlA})

		require.Error(t, err)
		assert.Contains(t, offsync.ErrorMessage(err), "check offline availability failed")
		assert.Contains(t, offsync.ErrorMessage(err), "permission denied")
	})

	t.Run("wrapped application errors keep only their message", func(t *testing.T) {
		t.Parallel()

		cmds := offline.NewCommands(&offline.Engine{
			Index: &mock.IndexStore{
				LoadIndexFn: func(context.Context) (*offsync.Index, error) {
					return nil, offsync.Errorf(offsync.ENOTFOUND, "base directory missing")
				},
			},
		})

		_, err := cmds.IsOfflineAvailable(context.Background(), urlA)

		require.Error(t, err)
		assert.Equal(t, offsync.ENOTFOUND, offsync.ErrorCode(err))
		assert.Equal(t, "check offline availability failed: base directory missing", offsync.ErrorMessage(err))
	})
}
