package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/causeway-db/causeway/errors"
	"github.com/causeway-db/causeway/migrate"
	"github.com/causeway-db/causeway/seed"
)

const createSeedJournalTable = `
CREATE TABLE IF NOT EXISTS seed_journal (
	name TEXT PRIMARY KEY,
	hash TEXT NOT NULL,
	first_run_at TIMESTAMP NOT NULL,
	last_run_at TIMESTAMP NOT NULL,
	run_count INTEGER NOT NULL
)`

// SeedJournal implements seed.Journal over a SQLite table keyed by seed name.
// Unlike the migration journal, re-running a seed updates its row in place.
type SeedJournal struct {
	db *sql.DB
}

// NewSeedJournal creates a seed journal store.
func NewSeedJournal(database *sql.DB) *SeedJournal {
	return &SeedJournal{db: database}
}

// EnsureJournal creates the seed journal table if it does not exist.
func (j *SeedJournal) EnsureJournal(ctx context.Context) error {
	if _, err := j.db.ExecContext(ctx, createSeedJournalTable); err != nil {
		return errors.WrapJournal(err, "creating seed journal table")
	}
	return nil
}

// Entry returns the record for a seed name, or nil if the seed never ran.
func (j *SeedJournal) Entry(ctx context.Context, name string) (*seed.Entry, error) {
	var entry seed.Entry
	err := j.db.QueryRowContext(ctx,
		`SELECT name, hash, first_run_at, last_run_at, run_count
		 FROM seed_journal WHERE name = ?`, name,
	).Scan(&entry.Name, &entry.Hash, &entry.FirstRunAt, &entry.LastRunAt, &entry.RunCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WrapJournal(err, "querying seed entry")
	}
	return &entry, nil
}

// HasHash reports whether any seed has been recorded with the given content
// hash, regardless of name.
func (j *SeedJournal) HasHash(ctx context.Context, hash string) (bool, error) {
	var count int
	err := j.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM seed_journal WHERE hash = ?`, hash,
	).Scan(&count)
	if err != nil {
		return false, errors.WrapJournal(err, "querying seed hash")
	}
	return count > 0, nil
}

// RecordRun upserts the row for the seed, bumping the run count and the
// last-run timestamp on repeat runs.
func (j *SeedJournal) RecordRun(ctx context.Context, script migrate.Script) error {
	now := time.Now().UTC()
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO seed_journal (name, hash, first_run_at, last_run_at, run_count)
		 VALUES (?, ?, ?, ?, 1)
		 ON CONFLICT(name) DO UPDATE SET
			hash = excluded.hash,
			last_run_at = excluded.last_run_at,
			run_count = run_count + 1`,
		script.Name, script.Hash, now, now,
	)
	if err != nil {
		return errors.WrapJournal(err, "recording seed run")
	}
	return nil
}
