package db

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/causeway-db/causeway/errors"
)

// SQLExecutor implements migrate.Executor for SQL stores. Each script runs
// in its own transaction: a failed script rolls back cleanly, while scripts
// already applied in this run stay committed.
type SQLExecutor struct {
	logger *zap.SugaredLogger
}

// NewSQLExecutor creates an executor. logger may be nil.
func NewSQLExecutor(logger *zap.SugaredLogger) *SQLExecutor {
	return &SQLExecutor{logger: logger}
}

// Execute runs the script content inside a transaction on conn.
func (e *SQLExecutor) Execute(ctx context.Context, content string, conn *sql.Conn) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}

	if _, err := tx.ExecContext(ctx, content); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && e.logger != nil {
			e.logger.Warnw("Rollback failed after script error", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "committing transaction")
	}
	return nil
}
