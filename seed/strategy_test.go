package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/causeway-db/causeway/migrate"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		path  string
		want  Strategy
		found bool
	}{
		{"Seeds/run-once/S001.sql", RunOnce, true},
		{"Seeds/run-always/S001.sql", RunAlways, true},
		{"Seeds/run-if-changed/S001.sql", RunIfChanged, true},
		// Nearest enclosing folder wins when strategy folders nest
		{"Seeds/run-always/run-once/S.sql", RunOnce, true},
		{"Seeds/run-once/run-always/S.sql", RunAlways, true},
		// File-name convention
		{"Seeds/S001.run-always.sql", RunAlways, true},
		// Windows-style separators
		{`Seeds\run-if-changed\S001.sql`, RunIfChanged, true},
		// Case-insensitive, '_' and space normalized to '-'
		{"Seeds/Run_Once/S001.sql", RunOnce, true},
		{"Seeds/RUN ALWAYS/S001.sql", RunAlways, true},
		// No recognizable token
		{"Seeds/S001.sql", RunOnce, false},
		{"S001.sql", RunOnce, false},
	}

	for _, tt := range tests {
		got, found := ParseStrategy(tt.path)
		assert.Equal(t, tt.found, found, "path %q", tt.path)
		if tt.found {
			assert.Equal(t, tt.want, got, "path %q", tt.path)
		}
	}
}

func TestParseStrategyName(t *testing.T) {
	tests := []struct {
		name string
		want Strategy
		ok   bool
	}{
		{"run-once", RunOnce, true},
		{"run_always", RunAlways, true},
		{"Run-If-Changed", RunIfChanged, true},
		{"", RunOnce, true},
		{"sometimes", RunOnce, false},
	}

	for _, tt := range tests {
		got, ok := ParseStrategyName(tt.name)
		assert.Equal(t, tt.ok, ok, "name %q", tt.name)
		assert.Equal(t, tt.want, got, "name %q", tt.name)
	}
}

func mustScript(t *testing.T, name, content string) migrate.Script {
	t.Helper()
	s, err := migrate.NewScript(name, content)
	require.NoError(t, err)
	return s
}

func TestShouldRun(t *testing.T) {
	ctx := context.Background()

	t.Run("run-once runs only while the hash is unrecorded", func(t *testing.T) {
		journal := &memSeedJournal{}
		script := mustScript(t, "Seeds/run-once/S001.sql", "INSERT INTO t VALUES (1);")

		run, err := RunOnce.ShouldRun(ctx, journal, script)
		require.NoError(t, err)
		assert.True(t, run)

		require.NoError(t, journal.RecordRun(ctx, script))

		run, err = RunOnce.ShouldRun(ctx, journal, script)
		require.NoError(t, err)
		assert.False(t, run)
	})

	t.Run("run-once reruns after a content edit", func(t *testing.T) {
		journal := &memSeedJournal{}
		original := mustScript(t, "S001.sql", "INSERT INTO t VALUES (1);")
		require.NoError(t, journal.RecordRun(ctx, original))

		edited := mustScript(t, "S001.sql", "INSERT INTO t VALUES (2);")
		run, err := RunOnce.ShouldRun(ctx, journal, edited)
		require.NoError(t, err)
		assert.True(t, run, "new hash has no record")
	})

	t.Run("run-always ignores journal state", func(t *testing.T) {
		journal := &memSeedJournal{}
		script := mustScript(t, "S001.sql", "INSERT INTO t VALUES (1);")
		require.NoError(t, journal.RecordRun(ctx, script))

		run, err := RunAlways.ShouldRun(ctx, journal, script)
		require.NoError(t, err)
		assert.True(t, run)
	})

	t.Run("run-if-changed detects content drift", func(t *testing.T) {
		journal := &memSeedJournal{}
		original := mustScript(t, "S001.sql", "INSERT INTO t VALUES (1);")

		run, err := RunIfChanged.ShouldRun(ctx, journal, original)
		require.NoError(t, err)
		assert.True(t, run, "never run before")

		require.NoError(t, journal.RecordRun(ctx, original))

		run, err = RunIfChanged.ShouldRun(ctx, journal, original)
		require.NoError(t, err)
		assert.False(t, run, "unchanged content")

		edited := mustScript(t, "S001.sql", "INSERT INTO t VALUES (2);")
		run, err = RunIfChanged.ShouldRun(ctx, journal, edited)
		require.NoError(t, err)
		assert.True(t, run, "stored hash differs")
	})
}
