package keepsake

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/keepsake/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabase(t *testing.T) {
	t.Run("create new database", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		db, err := NewDatabase(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()

		// Verify components are initialized
		assert.NotNil(t, db.MemoryRepository())
		assert.NotNil(t, db.LocationRepository())
		assert.NotNil(t, db.TaskRepository())
		assert.NotNil(t, db.ContactRepository())
		assert.NotNil(t, db.backend)
		assert.NotNil(t, db.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// Try to create a database at a file path instead of directory
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		db, err := NewDatabase(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, db)
	})
}

func TestDatabase_Close(t *testing.T) {
	tmpDir := t.TempDir()
	db, err := NewDatabase(tmpDir)
	require.NoError(t, err)
	require.NotNil(t, db)

	err = db.Close()
	assert.NoError(t, err)
}

func TestDatabase_Persistence(t *testing.T) {
	tmpDir := t.TempDir()
	ctx := context.Background()

	db, err := NewDatabase(tmpDir)
	require.NoError(t, err)

	added, err := db.MemoryRepository().AddMemories(ctx, &core.Memory{
		Title: "First Walk",
		Kind:  core.MemoryKindText,
	})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopen and verify the record survived
	db, err = NewDatabase(tmpDir)
	require.NoError(t, err)
	defer db.Close()

	retrieved, err := db.MemoryRepository().GetMemory(ctx, added[0].Id)
	require.NoError(t, err)
	assert.Equal(t, "First Walk", retrieved.Title)
}

func TestDatabase_NewSearcher(t *testing.T) {
	tmpDir := t.TempDir()
	db, err := NewDatabase(tmpDir)
	require.NoError(t, err)
	defer db.Close()

	searcher, err := db.NewSearcher()
	require.NoError(t, err)
	require.NotNil(t, searcher)
	defer searcher.Release()

	ctx := context.Background()

	_, err = db.MemoryRepository().AddMemories(ctx, &core.Memory{
		Title: "Birthday Party",
		Kind:  core.MemoryKindPhoto,
	})
	require.NoError(t, err)

	results, err := searcher.Search(ctx, "birthday")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, core.ResultTypeMemory, results[0].Type)
	assert.Equal(t, "Birthday Party", results[0].Title)
}
