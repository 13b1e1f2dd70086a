package provider

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("enumerates sql scripts in path order", func(t *testing.T) {
		fsys := fstest.MapFS{
			"002_AddIndex.sql":    {Data: []byte("CREATE INDEX idx ON users (id);")},
			"001_CreateTable.sql": {Data: []byte("CREATE TABLE users (id INTEGER);")},
			"README.md":           {Data: []byte("not a script")},
		}

		scripts, err := NewFS(fsys).Scripts(ctx)
		require.NoError(t, err)
		require.Len(t, scripts, 2)
		assert.Equal(t, "001_CreateTable.sql", scripts[0].Name)
		assert.Equal(t, "002_AddIndex.sql", scripts[1].Name)
		assert.Equal(t, "CREATE TABLE users (id INTEGER);", scripts[0].Content)
		assert.NotEmpty(t, scripts[0].Hash)
	})

	t.Run("preserves subfolder paths in logical names", func(t *testing.T) {
		fsys := fstest.MapFS{
			"run-once/S001.sql":   {Data: []byte("INSERT INTO t VALUES (1);")},
			"run-always/S002.sql": {Data: []byte("INSERT INTO t VALUES (2);")},
		}

		scripts, err := NewFS(fsys).Scripts(ctx)
		require.NoError(t, err)
		require.Len(t, scripts, 2)
		assert.Equal(t, "run-always/S002.sql", scripts[0].Name)
		assert.Equal(t, "run-once/S001.sql", scripts[1].Name)
	})

	t.Run("extension match is case-insensitive", func(t *testing.T) {
		fsys := fstest.MapFS{
			"001_Upper.SQL": {Data: []byte("SELECT 1;")},
		}

		scripts, err := NewFS(fsys).Scripts(ctx)
		require.NoError(t, err)
		assert.Len(t, scripts, 1)
	})

	t.Run("empty script fails discovery", func(t *testing.T) {
		fsys := fstest.MapFS{
			"001_Empty.sql": {Data: []byte("")},
		}

		_, err := NewFS(fsys).Scripts(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "001_Empty.sql")
	})

	t.Run("reads from an on-disk directory", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "001_CreateTable.sql")
		require.NoError(t, os.WriteFile(path, []byte("CREATE TABLE t (id INTEGER);"), 0644))

		scripts, err := NewDir(dir).Scripts(ctx)
		require.NoError(t, err)
		require.Len(t, scripts, 1)
		assert.Equal(t, "001_CreateTable.sql", scripts[0].Name)
	})

	t.Run("cancellation aborts enumeration", func(t *testing.T) {
		fsys := fstest.MapFS{
			"001.sql": {Data: []byte("SELECT 1;")},
		}

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := NewFS(fsys).Scripts(cancelled)
		require.Error(t, err)
	})
}
