package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/causeway-db/causeway/errors"
	"github.com/causeway-db/causeway/migrate"
)

const createJournalTable = `
CREATE TABLE IF NOT EXISTS migration_journal (
	id TEXT PRIMARY KEY,
	hash TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	downgrade_script TEXT,
	applied_at TIMESTAMP NOT NULL,
	duration_ms INTEGER NOT NULL,
	applied_with TEXT NOT NULL
)`

// MigrationJournal implements migrate.Journal over a SQLite table. Rows are
// unique on the upgrade script's content hash; insertion order is preserved
// via rowid, which AppliedEntries relies on.
type MigrationJournal struct {
	db          *sql.DB
	appliedWith string
}

// NewMigrationJournal creates a journal store. appliedWith is recorded on
// every entry, typically the tool version string.
func NewMigrationJournal(database *sql.DB, appliedWith string) *MigrationJournal {
	return &MigrationJournal{db: database, appliedWith: appliedWith}
}

// EnsureJournal creates the journal table if it does not exist.
func (j *MigrationJournal) EnsureJournal(ctx context.Context) error {
	if _, err := j.db.ExecContext(ctx, createJournalTable); err != nil {
		return errors.WrapJournal(err, "creating migration journal table")
	}
	return nil
}

// HasBeenApplied reports whether an entry exists for the given hash.
func (j *MigrationJournal) HasBeenApplied(ctx context.Context, hash string) (bool, error) {
	var count int
	err := j.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM migration_journal WHERE hash = ?`, hash,
	).Scan(&count)
	if err != nil {
		return false, errors.WrapJournal(err, "querying applied hash")
	}
	return count > 0, nil
}

// RecordApplied stores a journal entry for a successful upgrade. The hash is
// the upgrade script's original content hash, before variable substitution.
func (j *MigrationJournal) RecordApplied(ctx context.Context, m migrate.Migration, r migrate.Result) error {
	var downgrade any
	if m.CanDowngrade() {
		downgrade = m.Downgrade
	}

	_, err := j.db.ExecContext(ctx,
		`INSERT INTO migration_journal (id, hash, name, downgrade_script, applied_at, duration_ms, applied_with)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(),
		m.Upgrade.Hash,
		m.Name,
		downgrade,
		time.Now().UTC(),
		r.Duration.Milliseconds(),
		j.appliedWith,
	)
	if err != nil {
		return errors.WrapJournal(err, "recording applied migration")
	}
	return nil
}

// RemoveApplied deletes the entry for the given hash after a successful
// downgrade. Removing an absent hash is not an error.
func (j *MigrationJournal) RemoveApplied(ctx context.Context, hash string) error {
	if _, err := j.db.ExecContext(ctx,
		`DELETE FROM migration_journal WHERE hash = ?`, hash,
	); err != nil {
		return errors.WrapJournal(err, "removing journal entry")
	}
	return nil
}

// AppliedEntries returns all entries in application order.
func (j *MigrationJournal) AppliedEntries(ctx context.Context) ([]migrate.JournalEntry, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, hash, name, downgrade_script, applied_at, duration_ms, applied_with
		 FROM migration_journal ORDER BY rowid`,
	)
	if err != nil {
		return nil, errors.WrapJournal(err, "querying journal entries")
	}
	defer rows.Close()

	var entries []migrate.JournalEntry
	for rows.Next() {
		var (
			entry      migrate.JournalEntry
			downgrade  sql.NullString
			durationMS int64
		)
		if err := rows.Scan(
			&entry.ID, &entry.Hash, &entry.Name, &downgrade,
			&entry.AppliedAt, &durationMS, &entry.AppliedWith,
		); err != nil {
			return nil, errors.WrapJournal(err, "scanning journal entry")
		}
		entry.Downgrade = downgrade.String
		entry.Duration = time.Duration(durationMS) * time.Millisecond
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapJournal(err, "iterating journal entries")
	}
	return entries, nil
}
