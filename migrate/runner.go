package migrate

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/causeway-db/causeway/errors"
	"github.com/causeway-db/causeway/logger"
)

// Runner applies one script at a time: variable substitution, execution via
// the injected Executor, duration measurement, and the journal update that
// follows a successful run.
type Runner struct {
	executor Executor
	journal  Journal
	conns    ConnManager
	vars     Variables
	logger   *zap.SugaredLogger
}

// NewRunner wires a Runner. vars may be nil when substitution is disabled.
func NewRunner(executor Executor, journal Journal, conns ConnManager, vars Variables) *Runner {
	return &Runner{
		executor: executor,
		journal:  journal,
		conns:    conns,
		vars:     vars,
		logger:   logger.ComponentLogger("migrate.runner"),
	}
}

// RunUpgrade applies a migration's upgrade script and records it in the
// journal. The journal entry is keyed by the ORIGINAL pre-substitution
// hash: substitution changes runtime content, never identity.
//
// On executor failure no journal write occurs and the result carries the
// migration name with the underlying message.
func (r *Runner) RunUpgrade(ctx context.Context, m Migration) Result {
	content := Substitute(m.Upgrade.Content, r.vars)

	duration, err := r.execute(ctx, content)
	if err != nil {
		r.logger.Errorw("Migration failed",
			logger.FieldMigration, m.Name,
			logger.FieldError, err.Error(),
		)
		return failedResult(&m.Upgrade, errors.NewExecutionError(m.Name, err), duration)
	}

	result := successResult(&m.Upgrade, duration)
	if err := r.journal.RecordApplied(ctx, m, result); err != nil {
		return failedResult(&m.Upgrade, errors.WrapJournal(err, "recording migration "+m.Name), duration)
	}

	r.logger.Infow("Applied migration",
		logger.FieldMigration, m.Name,
		logger.FieldHash, m.Upgrade.Hash,
		logger.FieldDurationMS, duration.Milliseconds(),
	)
	return result
}

// RunDowngrade reverses one applied migration from its journal entry. An
// entry without downgrade content yields an immediate failed result; the
// executor is never called. On success the entry is deleted by hash; on
// failure it is left untouched.
func (r *Runner) RunDowngrade(ctx context.Context, entry JournalEntry) Result {
	if entry.Downgrade == "" {
		return Result{
			Successful: false,
			Message:    "migration " + entry.Name + " does not support downgrade",
		}
	}

	content := Substitute(entry.Downgrade, r.vars)

	duration, err := r.execute(ctx, content)
	if err != nil {
		r.logger.Errorw("Downgrade failed",
			logger.FieldMigration, entry.Name,
			logger.FieldError, err.Error(),
		)
		return failedResult(nil, errors.NewExecutionError(entry.Name, err), duration)
	}

	if err := r.journal.RemoveApplied(ctx, entry.Hash); err != nil {
		return failedResult(nil, errors.WrapJournal(err, "removing journal entry for "+entry.Name), duration)
	}

	r.logger.Infow("Reverted migration",
		logger.FieldMigration, entry.Name,
		logger.FieldHash, entry.Hash,
		logger.FieldDurationMS, duration.Milliseconds(),
	)
	return Result{Successful: true, Message: "reverted " + entry.Name, Duration: duration}
}

// execute runs content against a scoped connection, measuring wall time
// from before to after the executor call.
func (r *Runner) execute(ctx context.Context, content string) (time.Duration, error) {
	start := time.Now()
	err := r.conns.WithConn(ctx, func(conn *sql.Conn) error {
		return r.executor.Execute(ctx, content, conn)
	})
	return time.Since(start), err
}
