package migrate

import (
	"context"
	"sort"
	"strings"

	"github.com/causeway-db/causeway/errors"
)

// Order is the execution order for pending upgrades.
type Order int

const (
	// OrderAscending applies migrations in ascending lexical name order.
	OrderAscending Order = iota
	// OrderDescending applies migrations in descending lexical name order.
	OrderDescending
)

// String returns the config-file spelling of the order.
func (o Order) String() string {
	if o == OrderDescending {
		return "descending"
	}
	return "ascending"
}

// ParseOrder maps a config-file spelling to an Order.
func ParseOrder(s string) (Order, bool) {
	switch strings.ToLower(s) {
	case "ascending", "asc", "":
		return OrderAscending, true
	case "descending", "desc":
		return OrderDescending, true
	default:
		return OrderAscending, false
	}
}

// Filter classifies migrations against the journal: pending (not yet
// applied), applied (recorded), and journal entries with no corresponding
// migration (candidates for downgrade after a source removal).
type Filter struct {
	journal Journal
	order   Order

	// preordered skips sorting: the supplied migration list came from an
	// authoritative MigrationSource and its order stands.
	preordered bool
}

// NewFilter creates a Filter sorting pending migrations by the given order.
func NewFilter(journal Journal, order Order) *Filter {
	return &Filter{journal: journal, order: order}
}

// NewPreorderedFilter creates a Filter that preserves the caller's
// migration order instead of re-sorting.
func NewPreorderedFilter(journal Journal) *Filter {
	return &Filter{journal: journal, preordered: true}
}

// Pending returns the migrations whose upgrade hash the journal has not
// recorded, sorted per the configured order. Case-sensitive lexical
// comparison on the migration name is both sort and tie-break key.
func (f *Filter) Pending(ctx context.Context, migrations []Migration) ([]Migration, error) {
	pending, _, err := f.partition(ctx, migrations)
	if err != nil {
		return nil, err
	}
	f.sortMigrations(pending)
	return pending, nil
}

// Applied returns the migrations the journal confirms as executed, in the
// same configured order.
func (f *Filter) Applied(ctx context.Context, migrations []Migration) ([]Migration, error) {
	_, applied, err := f.partition(ctx, migrations)
	if err != nil {
		return nil, err
	}
	f.sortMigrations(applied)
	return applied, nil
}

// HasPending reports whether any migration is pending, short-circuiting on
// the first one found.
func (f *Filter) HasPending(ctx context.Context, migrations []Migration) (bool, error) {
	for _, m := range migrations {
		applied, err := f.journal.HasBeenApplied(ctx, m.Upgrade.Hash)
		if err != nil {
			return false, errors.WrapJournal(err, "checking journal for pending migrations")
		}
		if !applied {
			return true, nil
		}
	}
	return false, nil
}

// EntriesToDowngrade returns journal entries whose hash matches no current
// migration — the migration's source was deleted or renamed — in reverse
// application order, so downgrades undo in the opposite order upgrades were
// applied.
func (f *Filter) EntriesToDowngrade(ctx context.Context, migrations []Migration) ([]JournalEntry, error) {
	entries, err := f.journal.AppliedEntries(ctx)
	if err != nil {
		return nil, errors.WrapJournal(err, "reading journal entries")
	}

	known := make(map[string]bool, len(migrations))
	for _, m := range migrations {
		known[m.Upgrade.Hash] = true
	}

	var orphaned []JournalEntry
	for _, e := range entries {
		if !known[e.Hash] {
			orphaned = append(orphaned, e)
		}
	}

	// Reverse: most recently applied first
	for i, j := 0, len(orphaned)-1; i < j; i, j = i+1, j-1 {
		orphaned[i], orphaned[j] = orphaned[j], orphaned[i]
	}
	return orphaned, nil
}

func (f *Filter) partition(ctx context.Context, migrations []Migration) (pending, applied []Migration, err error) {
	for _, m := range migrations {
		isApplied, err := f.journal.HasBeenApplied(ctx, m.Upgrade.Hash)
		if err != nil {
			return nil, nil, errors.WrapJournal(err, "checking journal for migration "+m.Name)
		}
		if isApplied {
			applied = append(applied, m)
		} else {
			pending = append(pending, m)
		}
	}
	return pending, applied, nil
}

func (f *Filter) sortMigrations(migrations []Migration) {
	if f.preordered {
		return
	}
	sort.SliceStable(migrations, func(i, j int) bool {
		if f.order == OrderDescending {
			return migrations[i].Name > migrations[j].Name
		}
		return migrations[i].Name < migrations[j].Name
	})
}
