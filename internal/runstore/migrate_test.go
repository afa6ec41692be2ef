package runstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keymemory/KETIPreDataIntegration/schema"
)

func TestMigrateRuns_NoneBackend(t *testing.T) {
	err := MigrateRuns(schema.NoneBackend, "", -1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}

func TestMigrateRuns_UnsupportedBackend(t *testing.T) {
	err := MigrateRuns(schema.DatabaseBackend("oracle"), "", -1)
	assert.Error(t, err)
}

func TestMigrateRuns_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_migration.db")

	// Run migration to latest version (should go to version 1)
	err := MigrateRuns(schema.SQLiteBackend, dbPath, -1)
	require.NoError(t, err)

	// Verify migration was successful by checking the database file exists
	_, err = os.Stat(dbPath)
	assert.NoError(t, err)

	// Run migration again (should be a no-op)
	err = MigrateRuns(schema.SQLiteBackend, dbPath, -1)
	assert.NoError(t, err)

	// Migrate to a specific version (version 1)
	err = MigrateRuns(schema.SQLiteBackend, dbPath, 1)
	assert.NoError(t, err)

	// Rollback to version 0
	err = MigrateRuns(schema.SQLiteBackend, dbPath, 0)
	assert.NoError(t, err)

	// Migrate back up to version 1
	err = MigrateRuns(schema.SQLiteBackend, dbPath, 1)
	assert.NoError(t, err)
}

func TestMigrateRuns_SQLiteInMemory(t *testing.T) {
	err := MigrateRuns(schema.SQLiteBackend, ":memory:", -1)
	require.NoError(t, err)
}
