package seed

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/causeway-db/causeway/errors"
	"github.com/causeway-db/causeway/logger"
	"github.com/causeway-db/causeway/migrate"
)

// Options configures a seed Runner.
type Options struct {
	// Providers enumerate seed scripts. Required.
	Providers []migrate.Provider

	// Journal records seed runs. Required.
	Journal Journal

	// Executor applies seed content to the target store. Required.
	Executor migrate.Executor

	// Conns scopes connections around executions. Required.
	Conns migrate.ConnManager

	// Variables substituted into seed content as ${name}. Optional.
	Variables migrate.Variables

	// Default applies to seeds whose path carries no strategy token.
	Default Strategy
}

func (o Options) validate() error {
	if len(o.Providers) == 0 {
		return errors.NewConfigurationError("no seed provider configured")
	}
	if o.Journal == nil {
		return errors.NewConfigurationError("no seed journal configured")
	}
	if o.Executor == nil {
		return errors.NewConfigurationError("no executor configured")
	}
	if o.Conns == nil {
		return errors.NewConfigurationError("no connection manager configured")
	}
	return nil
}

// Runner applies seeds sequentially per their strategies: enumerate once,
// decide per seed against current journal state, execute, record. Fail-fast
// like migration runs; cancellation is checked between seeds.
type Runner struct {
	opts   Options
	logger *zap.SugaredLogger
}

// NewRunner validates the options and builds a Runner.
func NewRunner(opts Options) (*Runner, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Runner{
		opts:   opts,
		logger: logger.ComponentLogger("seed.runner"),
	}, nil
}

// Run applies every seed whose strategy says it must run now.
func (r *Runner) Run(ctx context.Context) migrate.BatchResult {
	batch := migrate.BatchResult{Successful: true}

	if err := r.opts.Journal.EnsureJournal(ctx); err != nil {
		return failBatch(batch, errors.WrapJournal(err, "ensuring seed journal table"))
	}

	scripts, err := r.discover(ctx)
	if err != nil {
		return failBatch(batch, err)
	}

	for _, script := range scripts {
		if err := ctx.Err(); err != nil {
			batch.Successful = false
			batch.Message = "run cancelled before seed " + script.Name
			return batch
		}

		result, ran := r.runSeed(ctx, script)
		if !ran {
			continue
		}
		batch.Results = append(batch.Results, result)
		if !result.Successful {
			batch.Successful = false
			batch.Message = result.Message
			return batch
		}
	}

	return batch
}

// Pending returns the seeds whose strategy would run them now, for status
// output. No execution happens.
func (r *Runner) Pending(ctx context.Context) ([]migrate.Script, error) {
	if err := r.opts.Journal.EnsureJournal(ctx); err != nil {
		return nil, errors.WrapJournal(err, "ensuring seed journal table")
	}

	scripts, err := r.discover(ctx)
	if err != nil {
		return nil, err
	}

	var pending []migrate.Script
	for _, script := range scripts {
		run, err := r.strategyFor(script).ShouldRun(ctx, r.opts.Journal, script)
		if err != nil {
			return nil, errors.WrapJournal(err, "deciding seed "+script.Name)
		}
		if run {
			pending = append(pending, script)
		}
	}
	return pending, nil
}

func (r *Runner) discover(ctx context.Context) ([]migrate.Script, error) {
	var scripts []migrate.Script
	for _, p := range r.opts.Providers {
		batch, err := p.Scripts(ctx)
		if err != nil {
			return nil, errors.Wrap(errors.Wrap(errors.ErrDiscovery, err.Error()), "enumerating seed scripts")
		}
		scripts = append(scripts, batch...)
	}
	return scripts, nil
}

func (r *Runner) strategyFor(script migrate.Script) Strategy {
	if strategy, found := ParseStrategy(script.Name); found {
		return strategy
	}
	return r.opts.Default
}

// runSeed decides and, when due, executes one seed. ran=false means the
// strategy skipped it.
func (r *Runner) runSeed(ctx context.Context, script migrate.Script) (migrate.Result, bool) {
	strategy := r.strategyFor(script)

	run, err := strategy.ShouldRun(ctx, r.opts.Journal, script)
	if err != nil {
		return migrate.Result{
			Script:     &script,
			Successful: false,
			Err:        errors.WrapJournal(err, "deciding seed "+script.Name),
			Message:    err.Error(),
		}, true
	}
	if !run {
		r.logger.Debugw("Skipping seed",
			logger.FieldSeed, script.Name,
			logger.FieldStrategy, strategy.String(),
		)
		return migrate.Result{}, false
	}

	content := migrate.Substitute(script.Content, r.opts.Variables)

	start := time.Now()
	err = r.opts.Conns.WithConn(ctx, func(conn *sql.Conn) error {
		return r.opts.Executor.Execute(ctx, content, conn)
	})
	duration := time.Since(start)

	if err != nil {
		wrapped := errors.NewExecutionError(script.Name, err)
		r.logger.Errorw("Seed failed",
			logger.FieldSeed, script.Name,
			logger.FieldError, err.Error(),
		)
		return migrate.Result{
			Script:     &script,
			Successful: false,
			Err:        wrapped,
			Message:    wrapped.Error(),
			Duration:   duration,
		}, true
	}

	if err := r.opts.Journal.RecordRun(ctx, script); err != nil {
		wrapped := errors.WrapJournal(err, "recording seed "+script.Name)
		return migrate.Result{
			Script:     &script,
			Successful: false,
			Err:        wrapped,
			Message:    wrapped.Error(),
			Duration:   duration,
		}, true
	}

	r.logger.Infow("Applied seed",
		logger.FieldSeed, script.Name,
		logger.FieldStrategy, strategy.String(),
		logger.FieldDurationMS, duration.Milliseconds(),
	)
	return migrate.Result{Script: &script, Successful: true, Duration: duration}, true
}

func failBatch(batch migrate.BatchResult, err error) migrate.BatchResult {
	batch.Successful = false
	batch.Message = err.Error()
	return batch
}
