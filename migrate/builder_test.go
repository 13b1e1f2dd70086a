package migrate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/causeway-db/causeway/errors"
)

func TestBuilder(t *testing.T) {
	ctx := context.Background()

	t.Run("derives migration names and attaches downgrades", func(t *testing.T) {
		upgrades := &fakeProvider{scripts: []Script{
			mustScript("001_CreateTable.sql", "CREATE TABLE users (id INTEGER);"),
			mustScript("002_AddIndex.sql", "CREATE INDEX idx ON users (id);"),
		}}
		downgrades := &fakeProvider{scripts: []Script{
			mustScript("001_CreateTable.sql", "DROP TABLE users;"),
		}}

		b := NewBuilder(NewMatchingResolver(downgrades, DefaultMatchOptions()), upgrades)
		migrations, err := b.Build(ctx)
		require.NoError(t, err)
		require.Len(t, migrations, 2)

		assert.Equal(t, "001_CreateTable", migrations[0].Name)
		assert.Equal(t, "DROP TABLE users;", migrations[0].Downgrade)
		assert.True(t, migrations[0].CanDowngrade())

		assert.Equal(t, "002_AddIndex", migrations[1].Name)
		assert.False(t, migrations[1].CanDowngrade())
	})

	t.Run("nil resolver leaves all downgrades absent", func(t *testing.T) {
		upgrades := &fakeProvider{scripts: []Script{
			mustScript("001_CreateTable.sql", "CREATE TABLE users (id INTEGER);"),
		}}

		migrations, err := NewBuilder(nil, upgrades).Build(ctx)
		require.NoError(t, err)
		require.Len(t, migrations, 1)
		assert.False(t, migrations[0].CanDowngrade())
	})

	t.Run("multiple providers preserve enumeration order", func(t *testing.T) {
		first := &fakeProvider{scripts: []Script{
			mustScript("002_Second.sql", "SELECT 2;"),
		}}
		second := &fakeProvider{scripts: []Script{
			mustScript("001_First.sql", "SELECT 1;"),
		}}

		migrations, err := NewBuilder(nil, first, second).Build(ctx)
		require.NoError(t, err)
		require.Len(t, migrations, 2)
		// Builder does not order; that is the filter's job
		assert.Equal(t, "002_Second", migrations[0].Name)
		assert.Equal(t, "001_First", migrations[1].Name)
	})

	t.Run("duplicate names are a warning, not a failure", func(t *testing.T) {
		a := &fakeProvider{scripts: []Script{
			mustScript("001_Dup.sql", "SELECT 1;"),
		}}
		b := &fakeProvider{scripts: []Script{
			mustScript("001_Dup.sql", "SELECT 2;"),
		}}

		migrations, err := NewBuilder(nil, a, b).Build(ctx)
		require.NoError(t, err)
		assert.Len(t, migrations, 2)
	})

	t.Run("provider failure is a discovery error", func(t *testing.T) {
		_, err := NewBuilder(nil, &fakeProvider{failWith: errBoom}).Build(ctx)
		require.Error(t, err)
		assert.True(t, errors.IsDiscoveryError(err))
		assert.Contains(t, err.Error(), "boom")
	})
}
