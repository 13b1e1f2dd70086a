package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/causeway-db/causeway/errors"
)

func TestNewScript(t *testing.T) {
	t.Run("hashes content at construction", func(t *testing.T) {
		s, err := NewScript("001_CreateTable.sql", "CREATE TABLE users (id INTEGER);")
		require.NoError(t, err)
		assert.Equal(t, "001_CreateTable.sql", s.Name)
		assert.NotEmpty(t, s.Hash)
		assert.Len(t, s.Hash, 64, "hex sha-256")
	})

	t.Run("rejects empty content", func(t *testing.T) {
		_, err := NewScript("001_Empty.sql", "")
		require.Error(t, err)
		assert.True(t, errors.IsDiscoveryError(err))
		assert.Contains(t, err.Error(), "001_Empty.sql")
	})
}

func TestHashContent(t *testing.T) {
	t.Run("is deterministic", func(t *testing.T) {
		content := "CREATE TABLE users (id INTEGER);"
		assert.Equal(t, HashContent(content), HashContent(content))
	})

	t.Run("identical content yields identical hash regardless of name", func(t *testing.T) {
		a := mustScript("001_A.sql", "SELECT 1;")
		b := mustScript("totally/else/where/B.sql", "SELECT 1;")
		assert.Equal(t, a.Hash, b.Hash)
	})

	t.Run("different content yields different hash", func(t *testing.T) {
		assert.NotEqual(t, HashContent("SELECT 1;"), HashContent("SELECT 2;"))
	})
}

func TestMigrationName(t *testing.T) {
	tests := []struct {
		scriptName string
		want       string
	}{
		{"001_CreateTable.sql", "001_CreateTable"},
		{"002_AddIndex.SQL", "002_AddIndex"},
		{"noextension", "noextension"},
		{"migrations/003_Seed.sql", "migrations/003_Seed"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MigrationName(tt.scriptName))
	}
}

func TestCanDowngrade(t *testing.T) {
	up := mustScript("001.sql", "CREATE TABLE t (id INTEGER);")

	with := Migration{Name: "001", Upgrade: up, Downgrade: "DROP TABLE t;"}
	without := Migration{Name: "001", Upgrade: up}

	assert.True(t, with.CanDowngrade())
	assert.False(t, without.CanDowngrade())
}
