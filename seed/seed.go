// Package seed implements the data-seeding workflow: scripts that populate
// data and are subject to a re-run policy instead of one-shot migration
// semantics.
//
// A seed's policy is chosen by naming convention on its logical path
// (run-once / run-always / run-if-changed folder or file-name token), with a
// configurable fallback. Policy decisions read seed journal state at
// decision time; nothing is cached.
package seed

import (
	"context"
	"time"

	"github.com/causeway-db/causeway/migrate"
)

// Entry is the durable record of a seed's runs, keyed by seed name. The
// stored hash is the content hash from the most recent run, which is what
// RunIfChanged compares against.
type Entry struct {
	Name       string
	Hash       string
	FirstRunAt time.Time
	LastRunAt  time.Time
	RunCount   int
}

// Journal persists seed run records. Implementations must propagate the
// store's own errors unchanged.
type Journal interface {
	// EnsureJournal creates the seed journal table if it does not exist
	EnsureJournal(ctx context.Context) error

	// Entry returns the record for a seed name, or nil when absent
	Entry(ctx context.Context, name string) (*Entry, error)

	// HasHash reports whether any record stores the given content hash
	HasHash(ctx context.Context, hash string) (bool, error)

	// RecordRun upserts the record for a seed after a successful run,
	// updating the stored hash and bumping the run count
	RecordRun(ctx context.Context, script migrate.Script) error
}
