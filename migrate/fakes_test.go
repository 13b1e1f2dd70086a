package migrate

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/causeway-db/causeway/errors"
)

// memJournal is an in-memory Journal preserving insertion order.
type memJournal struct {
	entries  []JournalEntry
	failWith error // when set, every operation fails with this error
}

func (j *memJournal) EnsureJournal(ctx context.Context) error {
	return j.failWith
}

func (j *memJournal) HasBeenApplied(ctx context.Context, hash string) (bool, error) {
	if j.failWith != nil {
		return false, j.failWith
	}
	for _, e := range j.entries {
		if e.Hash == hash {
			return true, nil
		}
	}
	return false, nil
}

func (j *memJournal) RecordApplied(ctx context.Context, m Migration, r Result) error {
	if j.failWith != nil {
		return j.failWith
	}
	j.entries = append(j.entries, JournalEntry{
		ID:        m.Name,
		Hash:      m.Upgrade.Hash,
		Name:      m.Name,
		Downgrade: m.Downgrade,
		AppliedAt: time.Now(),
		Duration:  r.Duration,
	})
	return nil
}

func (j *memJournal) RemoveApplied(ctx context.Context, hash string) error {
	if j.failWith != nil {
		return j.failWith
	}
	for i, e := range j.entries {
		if e.Hash == hash {
			j.entries = append(j.entries[:i], j.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

func (j *memJournal) AppliedEntries(ctx context.Context) ([]JournalEntry, error) {
	if j.failWith != nil {
		return nil, j.failWith
	}
	out := make([]JournalEntry, len(j.entries))
	copy(out, j.entries)
	return out, nil
}

// fakeExecutor records executed content and can be told to fail.
type fakeExecutor struct {
	executed []string
	failWith error
	failOn   string // fail only when content contains this substring
}

func (e *fakeExecutor) Execute(ctx context.Context, content string, conn *sql.Conn) error {
	if e.failWith != nil {
		if e.failOn == "" || strings.Contains(content, e.failOn) {
			return e.failWith
		}
	}
	e.executed = append(e.executed, content)
	return nil
}

// fakeConns satisfies ConnManager without a real database; the fake
// executor never touches the connection.
type fakeConns struct {
	calls int
}

func (c *fakeConns) WithConn(ctx context.Context, fn func(*sql.Conn) error) error {
	c.calls++
	return fn(nil)
}

// fakeProvider serves a fixed script set.
type fakeProvider struct {
	scripts  []Script
	failWith error
}

func (p *fakeProvider) Scripts(ctx context.Context) ([]Script, error) {
	if p.failWith != nil {
		return nil, p.failWith
	}
	return p.scripts, nil
}

func mustScript(name, content string) Script {
	s, err := NewScript(name, content)
	if err != nil {
		panic(err)
	}
	return s
}

var errBoom = errors.New("boom")
