package migrate

import (
	"context"

	"go.uber.org/zap"

	"github.com/causeway-db/causeway/errors"
	"github.com/causeway-db/causeway/logger"
)

// Options configures an Engine. Build it once and pass it to NewEngine;
// the engine never mutates it.
type Options struct {
	// Providers enumerate upgrade scripts. Required unless Source is set.
	Providers []Provider

	// Resolver locates downgrade content per upgrade script. Optional.
	Resolver DowngradeResolver

	// Source supplies a pre-built, pre-ordered migration list. When set it
	// is authoritative: Providers and Order are ignored.
	Source MigrationSource

	// Journal records applied migrations. Required.
	Journal Journal

	// Executor applies script content to the target store. Required.
	Executor Executor

	// Conns scopes connections around executions. Required.
	Conns ConnManager

	// Variables substituted into script content as ${name}. Optional.
	Variables Variables

	// Order for pending upgrades. Defaults to OrderAscending.
	Order Order
}

// validate checks the configuration eagerly, before any execution starts.
func (o Options) validate() error {
	if o.Source == nil && len(o.Providers) == 0 {
		return errors.NewConfigurationError("no script provider configured")
	}
	if o.Journal == nil {
		return errors.NewConfigurationError("no journal configured")
	}
	if o.Executor == nil {
		return errors.NewConfigurationError("no executor configured")
	}
	if o.Conns == nil {
		return errors.NewConfigurationError("no connection manager configured")
	}
	return nil
}

// Engine composes pairing, filtering, and execution into the public
// migration operations. One Engine instance drives one target store; runs
// are strictly sequential and fail-fast.
type Engine struct {
	opts   Options
	filter *Filter
	runner *Runner
	logger *zap.SugaredLogger
}

// NewEngine validates the options and builds an Engine. Configuration
// errors fail here, before any side effect.
func NewEngine(opts Options) (*Engine, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	var filter *Filter
	if opts.Source != nil {
		filter = NewPreorderedFilter(opts.Journal)
	} else {
		filter = NewFilter(opts.Journal, opts.Order)
	}

	return &Engine{
		opts:   opts,
		filter: filter,
		runner: NewRunner(opts.Executor, opts.Journal, opts.Conns, opts.Variables),
		logger: logger.ComponentLogger("migrate.engine"),
	}, nil
}

// discover enumerates scripts once into an immutable working set. New
// scripts appearing mid-run are not picked up until the next run.
func (e *Engine) discover(ctx context.Context) ([]Migration, error) {
	if e.opts.Source != nil {
		migrations, err := e.opts.Source.Migrations(ctx)
		if err != nil {
			return nil, errors.Wrap(errors.Wrap(errors.ErrDiscovery, err.Error()), "loading migrations from source")
		}
		return migrations, nil
	}
	return NewBuilder(e.opts.Resolver, e.opts.Providers...).Build(ctx)
}

// Run applies everything pending: first downgrades for journal entries
// whose source migration was removed, then pending upgrades. Reverting
// removed migrations first keeps a rename (remove + add) from applying the
// new script on top of the old schema.
func (e *Engine) Run(ctx context.Context) BatchResult {
	batch := BatchResult{Successful: true}

	migrations, err := e.prepare(ctx, &batch)
	if err != nil {
		return batch
	}

	entries, err := e.filter.EntriesToDowngrade(ctx, migrations)
	if err != nil {
		return failBatch(batch, err)
	}
	if !e.runDowngrades(ctx, entries, &batch) {
		return batch
	}

	pending, err := e.filter.Pending(ctx, migrations)
	if err != nil {
		return failBatch(batch, err)
	}
	e.runUpgrades(ctx, pending, &batch)
	return batch
}

// ApplyUpgrades runs only the pending upgrades.
func (e *Engine) ApplyUpgrades(ctx context.Context) BatchResult {
	batch := BatchResult{Successful: true}

	migrations, err := e.prepare(ctx, &batch)
	if err != nil {
		return batch
	}

	pending, err := e.filter.Pending(ctx, migrations)
	if err != nil {
		return failBatch(batch, err)
	}

	if len(pending) == 0 {
		e.logger.Infow("No pending migrations")
		return batch
	}

	e.logger.Infow("Applying pending migrations", logger.FieldPendingCount, len(pending))
	e.runUpgrades(ctx, pending, &batch)
	return batch
}

// ApplyDowngrades reverses journal entries whose source migration no longer
// exists, most recently applied first.
func (e *Engine) ApplyDowngrades(ctx context.Context) BatchResult {
	batch := BatchResult{Successful: true}

	migrations, err := e.prepare(ctx, &batch)
	if err != nil {
		return batch
	}

	entries, err := e.filter.EntriesToDowngrade(ctx, migrations)
	if err != nil {
		return failBatch(batch, err)
	}

	if len(entries) == 0 {
		e.logger.Infow("No migrations to downgrade")
		return batch
	}

	e.runDowngrades(ctx, entries, &batch)
	return batch
}

// ApplyLastDowngrade reverses the most recently applied journal entry,
// whether or not its source migration still exists.
func (e *Engine) ApplyLastDowngrade(ctx context.Context) BatchResult {
	batch := BatchResult{Successful: true}

	if err := e.ensureJournal(ctx); err != nil {
		return failBatch(batch, err)
	}

	entries, err := e.opts.Journal.AppliedEntries(ctx)
	if err != nil {
		return failBatch(batch, errors.WrapJournal(err, "reading journal entries"))
	}
	if len(entries) == 0 {
		batch.Message = "journal is empty, nothing to downgrade"
		return batch
	}

	batch.append(e.runner.RunDowngrade(ctx, entries[len(entries)-1]))
	return batch
}

// HasPendingUpgrades reports whether any discovered migration is missing
// from the journal.
func (e *Engine) HasPendingUpgrades(ctx context.Context) (bool, error) {
	if err := e.ensureJournal(ctx); err != nil {
		return false, err
	}
	migrations, err := e.discover(ctx)
	if err != nil {
		return false, err
	}
	return e.filter.HasPending(ctx, migrations)
}

// PendingUpgrades returns the migrations awaiting application, in
// execution order.
func (e *Engine) PendingUpgrades(ctx context.Context) ([]Migration, error) {
	if err := e.ensureJournal(ctx); err != nil {
		return nil, err
	}
	migrations, err := e.discover(ctx)
	if err != nil {
		return nil, err
	}
	return e.filter.Pending(ctx, migrations)
}

// AppliedUpgrades returns the discovered migrations the journal confirms as
// executed.
func (e *Engine) AppliedUpgrades(ctx context.Context) ([]Migration, error) {
	if err := e.ensureJournal(ctx); err != nil {
		return nil, err
	}
	migrations, err := e.discover(ctx)
	if err != nil {
		return nil, err
	}
	return e.filter.Applied(ctx, migrations)
}

// EntriesToDowngrade exposes the orphaned journal entries for status output.
func (e *Engine) EntriesToDowngrade(ctx context.Context) ([]JournalEntry, error) {
	if err := e.ensureJournal(ctx); err != nil {
		return nil, err
	}
	migrations, err := e.discover(ctx)
	if err != nil {
		return nil, err
	}
	return e.filter.EntriesToDowngrade(ctx, migrations)
}

// prepare ensures the journal exists and discovers the working set,
// recording any failure on the batch.
func (e *Engine) prepare(ctx context.Context, batch *BatchResult) ([]Migration, error) {
	if err := e.ensureJournal(ctx); err != nil {
		*batch = failBatch(*batch, err)
		return nil, err
	}
	migrations, err := e.discover(ctx)
	if err != nil {
		*batch = failBatch(*batch, err)
		return nil, err
	}
	return migrations, nil
}

func (e *Engine) ensureJournal(ctx context.Context) error {
	if err := e.opts.Journal.EnsureJournal(ctx); err != nil {
		return errors.WrapJournal(err, "ensuring journal table")
	}
	return nil
}

// runUpgrades applies pending migrations in order, fail-fast, checking
// cancellation between scripts. Returns false if the batch halted.
func (e *Engine) runUpgrades(ctx context.Context, pending []Migration, batch *BatchResult) bool {
	for _, m := range pending {
		if err := ctx.Err(); err != nil {
			batch.Successful = false
			batch.Message = "run cancelled before migration " + m.Name
			return false
		}
		batch.append(e.runner.RunUpgrade(ctx, m))
		if !batch.Successful {
			return false
		}
	}
	return true
}

// runDowngrades reverses journal entries in order, fail-fast, checking
// cancellation between scripts. Returns false if the batch halted.
func (e *Engine) runDowngrades(ctx context.Context, entries []JournalEntry, batch *BatchResult) bool {
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			batch.Successful = false
			batch.Message = "run cancelled before downgrade of " + entry.Name
			return false
		}
		batch.append(e.runner.RunDowngrade(ctx, entry))
		if !batch.Successful {
			return false
		}
	}
	return true
}

func failBatch(batch BatchResult, err error) BatchResult {
	batch.Successful = false
	batch.Message = err.Error()
	return batch
}
