// Package migrate implements the schema-migration orchestration core.
//
// The core is store-agnostic: script discovery, journal persistence, and SQL
// execution are injected behind the Provider, Journal, Executor, and
// ConnManager interfaces. Production implementations live in the db and
// provider packages; tests use in-memory fakes.
//
// A migration run is strictly sequential. Scripts are enumerated once into an
// immutable working set, classified against the journal, and applied one at a
// time in lexical order. Cancellation is cooperative: it is checked between
// scripts, never during one.
package migrate

import (
	"context"
	"database/sql"
)

// Provider enumerates the current set of scripts from some source
// (a directory, an embed.FS, a test fixture).
type Provider interface {
	Scripts(ctx context.Context) ([]Script, error)
}

// Journal is the durable record of applied migrations. One row per applied
// upgrade, unique on the upgrade script's content hash.
//
// Implementations must propagate the store's own errors unchanged; the core
// wraps them for context but never swallows or retries them.
type Journal interface {
	// EnsureJournal creates the journal table if it does not exist
	EnsureJournal(ctx context.Context) error

	// HasBeenApplied reports whether an entry exists for the given hash
	HasBeenApplied(ctx context.Context, hash string) (bool, error)

	// RecordApplied stores a journal entry for a successful upgrade
	RecordApplied(ctx context.Context, m Migration, r Result) error

	// RemoveApplied deletes the entry for the given hash after a
	// successful downgrade
	RemoveApplied(ctx context.Context, hash string) error

	// AppliedEntries returns all entries in application (insertion) order
	AppliedEntries(ctx context.Context) ([]JournalEntry, error)
}

// Executor applies script content against the target store. It is the sole
// home of engine-specific execution logic; the core treats it as opaque.
type Executor interface {
	Execute(ctx context.Context, content string, conn *sql.Conn) error
}

// ConnManager scopes a connection around an operation, guaranteeing release
// on all exit paths including cancellation.
type ConnManager interface {
	WithConn(ctx context.Context, fn func(*sql.Conn) error) error
}

// DowngradeResolver locates downgrade content for an upgrade script's name.
// A missing downgrade is not an error: downgrade support is opt-in per
// migration.
type DowngradeResolver interface {
	Resolve(ctx context.Context, upgradeName string) (content string, found bool, err error)
}

// MigrationSource supplies an already-built, already-ordered migration list.
// When configured on the engine it is authoritative: the engine skips
// provider enumeration and does not re-sort.
type MigrationSource interface {
	Migrations(ctx context.Context) ([]Migration, error)
}
