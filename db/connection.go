// Package db implements Causeway's SQLite collaborators: the connection
// lifecycle, the scoped connection manager, the migration and seed journal
// stores, and the SQL executor. The orchestration core in package migrate
// sees these only through its interfaces.
package db

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/causeway-db/causeway/errors"
)

// SQLiteBusyTimeoutMS is how long SQLite waits on a locked database before
// failing. Five seconds covers a slow concurrent reader without hanging a
// migration run indefinitely.
const SQLiteBusyTimeoutMS = 5000

// Open opens a SQLite database at the specified path with optimized settings.
// If logger is provided, logs database operations; otherwise operates silently.
func Open(path string, logger *zap.SugaredLogger) (*sql.DB, error) {
	if logger != nil {
		logger.Debugw("Opening database", "path", path)
	}
	database, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	// Enable WAL mode for concurrent reads during writes
	if _, err := database.Exec("PRAGMA journal_mode = WAL"); err != nil {
		database.Close()
		return nil, errors.Wrap(err, "failed to enable WAL mode")
	}

	// Enable foreign key constraints
	if _, err := database.Exec("PRAGMA foreign_keys = ON"); err != nil {
		database.Close()
		return nil, errors.Wrap(err, "failed to enable foreign keys")
	}

	if _, err := database.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		database.Close()
		return nil, errors.Wrap(err, "failed to set busy timeout")
	}

	if logger != nil {
		logger.Infow("Database opened successfully",
			"path", path,
			"wal_mode", true,
			"foreign_keys", true,
		)
	}

	return database, nil
}

// Conns implements migrate.ConnManager over a *sql.DB pool: a dedicated
// connection is checked out for the operation and released on every exit
// path, including cancellation.
type Conns struct {
	db *sql.DB
}

// NewConns creates a connection manager over an open database.
func NewConns(database *sql.DB) *Conns {
	return &Conns{db: database}
}

// WithConn runs fn with a dedicated connection.
func (c *Conns) WithConn(ctx context.Context, fn func(*sql.Conn) error) error {
	conn, err := c.db.Conn(ctx)
	if err != nil {
		return errors.Wrap(err, "acquiring connection")
	}
	defer conn.Close()

	return fn(conn)
}
