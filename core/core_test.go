package core

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keymemory/KETIPreDataIntegration/internal/contract"
	"github.com/keymemory/KETIPreDataIntegration/internal/seriesio"
	"github.com/keymemory/KETIPreDataIntegration/schema"
)

// recordingStore captures run tracking calls.
type recordingStore struct {
	begun    int
	ended    int
	lastRec  schema.RunRecord
	beginErr error
}

func (s *recordingStore) BeginRun(time.Time, map[string]any) (int64, error) {
	if s.beginErr != nil {
		return 0, s.beginErr
	}
	s.begun++
	return int64(s.begun), nil
}

func (s *recordingStore) EndRun(_ int64, _ time.Time, rec schema.RunRecord) error {
	s.ended++
	s.lastRec = rec
	return nil
}

func (s *recordingStore) GetStatus() (schema.RunStoreStatus, error) {
	return schema.RunStoreStatus{}, nil
}

func (s *recordingStore) Clear() error { return nil }
func (s *recordingStore) Close() error { return nil }

type recordingManager struct {
	store *recordingStore
}

func (m *recordingManager) GetRunStore() contract.RunStore { return m.store }

// nilStoreManager mimics a manager whose store was never initialized.
type nilStoreManager struct{}

func (nilStoreManager) GetRunStore() contract.RunStore { return nil }

// writeFixtures saves two CSV series and returns their paths.
func writeFixtures(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	fast, slow := alignFixtures(t)

	p1 := filepath.Join(dir, "fast.csv")
	p2 := filepath.Join(dir, "slow.csv")
	require.NoError(t, seriesio.WriteTable(fast, p1))
	require.NoError(t, seriesio.WriteTable(slow, p2))
	return p1, p2
}

// TestGetAlignmentResultRecordsRun checks the end-to-end path including run
// bookkeeping.
func TestGetAlignmentResultRecordsRun(t *testing.T) {
	p1, p2 := writeFixtures(t)
	store := &recordingStore{}
	cfg := &contract.Config{
		Series1Path: p1,
		Series2Path: p2,
		Strategy:    schema.DownsampleStrategy,
	}

	result, rec, err := GetAlignmentResult(context.Background(), cfg, nil, &recordingManager{store: store})
	require.NoError(t, err)

	assert.Equal(t, 1, store.begun)
	assert.Equal(t, 1, store.ended)
	assert.Equal(t, rec, store.lastRec)

	assert.Equal(t, "downsample", rec.Strategy)
	assert.Equal(t, 15, rec.InputRows1)
	assert.Equal(t, 3, rec.InputRows2)
	assert.Equal(t, 11, rec.OverlapRows)
	assert.Equal(t, 3, rec.OutputRows)
	assert.Equal(t, 2, rec.OutputColumns)
	assert.Equal(t, result.Aligned.Rows(), rec.OutputRows)
}

// TestGetAlignmentResultTrackingFailureIsNonFatal confirms a broken run
// store does not block the alignment itself.
func TestGetAlignmentResultTrackingFailureIsNonFatal(t *testing.T) {
	p1, p2 := writeFixtures(t)
	store := &recordingStore{beginErr: assert.AnError}
	cfg := &contract.Config{
		Series1Path: p1,
		Series2Path: p2,
		Strategy:    schema.DownsampleStrategy,
	}

	result, _, err := GetAlignmentResult(context.Background(), cfg, nil, &recordingManager{store: store})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Aligned.Rows())
	assert.Zero(t, store.ended)
}

// TestGetAlignmentResultWithoutRunStore checks alignment proceeds when run
// tracking was never set up at all.
func TestGetAlignmentResultWithoutRunStore(t *testing.T) {
	p1, p2 := writeFixtures(t)

	for name, mgr := range map[string]contract.RunManager{
		"nil manager":         nil,
		"uninitialized store": nilStoreManager{},
	} {
		t.Run(name, func(t *testing.T) {
			cfg := &contract.Config{
				Series1Path: p1,
				Series2Path: p2,
				Strategy:    schema.DownsampleStrategy,
			}

			result, _, err := GetAlignmentResult(context.Background(), cfg, nil, mgr)
			require.NoError(t, err)
			assert.Equal(t, 3, result.Aligned.Rows())
		})
	}
}

// TestGetAlignmentResultMissingFile checks the load error path.
func TestGetAlignmentResultMissingFile(t *testing.T) {
	cfg := &contract.Config{
		Series1Path: "no-such-file.csv",
		Series2Path: "also-missing.csv",
		Strategy:    schema.DownsampleStrategy,
	}

	_, _, err := GetAlignmentResult(context.Background(), cfg, nil, &recordingManager{store: &recordingStore{}})
	assert.Error(t, err)
}
