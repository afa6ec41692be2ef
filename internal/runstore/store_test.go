package runstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keymemory/KETIPreDataIntegration/schema"
)

// sqliteStore creates a run store backed by a temp SQLite file.
func sqliteStore(t *testing.T) (*RunStoreImpl, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	store, err := NewRunStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	impl, ok := store.(*RunStoreImpl)
	require.True(t, ok)
	return impl, dbPath
}

func TestRunStore_NoneBackend(t *testing.T) {
	store, err := NewRunStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	// BeginRun should return 0 for NoneBackend
	runID, err := store.BeginRun(time.Now(), map[string]any{"strategy": "downsample"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	// Other operations should not error
	assert.NoError(t, store.EndRun(1, time.Now(), schema.RunRecord{}))

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.Equal(t, schema.NoneBackend, status.Backend)
	assert.Equal(t, 0, status.TotalRuns)

	assert.NoError(t, store.Clear())
	assert.NoError(t, store.Close())
}

func TestRunStore_SQLiteLifecycle(t *testing.T) {
	store, dbPath := sqliteStore(t)
	defer func() { _ = store.Close() }()

	start := time.Now()
	runID, err := store.BeginRun(start, map[string]any{
		"strategy": "embedding",
		"emb_dim":  16,
	})
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	rec := schema.RunRecord{
		Strategy:       "embedding",
		InputRows1:     100,
		InputRows2:     20,
		OverlapRows:    95,
		OutputRows:     85,
		OutputColumns:  16,
		FinalLoss:      0.031,
		CheckpointPath: "checkpoints/best_model.gob",
	}
	require.NoError(t, store.EndRun(runID, start.Add(2*time.Second), rec))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, schema.SQLiteBackend, status.Backend)
	assert.Equal(t, dbPath, status.Location)
	assert.Equal(t, 1, status.TotalRuns)
	assert.WithinDuration(t, start, status.LastRun, time.Second)
}

func TestRunStore_SQLiteMultipleRuns(t *testing.T) {
	store, _ := sqliteStore(t)
	defer func() { _ = store.Close() }()

	var ids []int64
	for range 3 {
		id, err := store.BeginRun(time.Now(), map[string]any{"strategy": "downsample"})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	// Run IDs are unique and increasing.
	assert.Less(t, ids[0], ids[1])
	assert.Less(t, ids[1], ids[2])

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 3, status.TotalRuns)
}

func TestRunStore_SQLiteClear(t *testing.T) {
	store, dbPath := sqliteStore(t)

	_, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)

	require.NoError(t, store.Clear())

	// Clearing SQLite removes the database file entirely.
	_, statErr := os.Stat(dbPath)
	assert.True(t, os.IsNotExist(statErr))

	// The store is inert after Clear.
	assert.NoError(t, store.Close())
}

func TestRunStore_UnsupportedBackend(t *testing.T) {
	_, err := NewRunStore(schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
}

func TestRunStoreManager(t *testing.T) {
	mgr := &RunStoreManager{}
	assert.Nil(t, mgr.GetRunStore())

	store, err := NewRunStore(schema.NoneBackend, "")
	require.NoError(t, err)
	mgr.setRunStore(store)
	assert.Equal(t, store, mgr.GetRunStore())
}
