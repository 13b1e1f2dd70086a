package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	database, err := Open(path, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestOpen(t *testing.T) {
	t.Run("enables WAL mode", func(t *testing.T) {
		database := openTestDB(t)

		var mode string
		require.NoError(t, database.QueryRow("PRAGMA journal_mode").Scan(&mode))
		assert.Equal(t, "wal", mode)
	})

	t.Run("enables foreign keys", func(t *testing.T) {
		database := openTestDB(t)

		var enabled int
		require.NoError(t, database.QueryRow("PRAGMA foreign_keys").Scan(&enabled))
		assert.Equal(t, 1, enabled)
	})

	t.Run("sets busy timeout", func(t *testing.T) {
		database := openTestDB(t)

		var timeout int
		require.NoError(t, database.QueryRow("PRAGMA busy_timeout").Scan(&timeout))
		assert.Equal(t, SQLiteBusyTimeoutMS, timeout)
	})

	t.Run("nil logger operates silently", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "silent.db")
		database, err := Open(path, nil)
		require.NoError(t, err)
		defer database.Close()

		require.NoError(t, database.Ping())
	})
}

func TestConns(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)
	conns := NewConns(database)

	t.Run("runs fn with a live connection", func(t *testing.T) {
		var got int
		err := conns.WithConn(ctx, func(conn *sql.Conn) error {
			return conn.QueryRowContext(ctx, "SELECT 42").Scan(&got)
		})
		require.NoError(t, err)
		assert.Equal(t, 42, got)
	})

	t.Run("propagates fn errors", func(t *testing.T) {
		err := conns.WithConn(ctx, func(conn *sql.Conn) error {
			_, execErr := conn.ExecContext(ctx, "NOT VALID SQL")
			return execErr
		})
		require.Error(t, err)
	})

	t.Run("fails on cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		err := conns.WithConn(cancelled, func(conn *sql.Conn) error { return nil })
		require.Error(t, err)
	})
}
