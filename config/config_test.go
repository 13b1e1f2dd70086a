package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/causeway-db/causeway/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "causeway.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	t.Run("reads values and applies defaults", func(t *testing.T) {
		path := writeConfig(t, `
[database]
path = "app.db"

[migrations]
dir = "db/migrations"
match = "suffix"

[variables]
schema = "app"
`)

		cfg, err := LoadFromFile(path)
		require.NoError(t, err)

		assert.Equal(t, "app.db", cfg.Database.Path)
		assert.Equal(t, "db/migrations", cfg.Migrations.Dir)
		assert.Equal(t, "suffix", cfg.Migrations.Match)
		assert.Equal(t, "app", cfg.Variables["schema"])

		// Unset keys fall back to defaults
		assert.Equal(t, "ascending", cfg.Migrations.Order)
		assert.Equal(t, "seeds", cfg.Seeds.Dir)
		assert.Equal(t, "run-once", cfg.Seeds.DefaultStrategy)
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.toml"))
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config { return Default() }

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(c *Config) {}, ""},
		{"empty database path", func(c *Config) { c.Database.Path = "" }, "database.path"},
		{"empty migrations dir", func(c *Config) { c.Migrations.Dir = "" }, "migrations.dir"},
		{"unknown match mode", func(c *Config) { c.Migrations.Match = "fuzzy" }, "migrations.match"},
		{"unknown order", func(c *Config) { c.Migrations.Order = "random" }, "migrations.order"},
		{"unknown strategy", func(c *Config) { c.Seeds.DefaultStrategy = "sometimes" }, "default_strategy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsConfigurationError(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCheckRequiredVersion(t *testing.T) {
	t.Run("no constraint passes", func(t *testing.T) {
		cfg := Default()
		require.NoError(t, cfg.CheckRequiredVersion("1.0.0"))
	})

	t.Run("satisfied constraint passes", func(t *testing.T) {
		cfg := Default()
		cfg.RequiredVersion = ">= 1.2"
		require.NoError(t, cfg.CheckRequiredVersion("1.3.0"))
	})

	t.Run("unsatisfied constraint fails", func(t *testing.T) {
		cfg := Default()
		cfg.RequiredVersion = ">= 2.0"
		err := cfg.CheckRequiredVersion("1.3.0")
		require.Error(t, err)
		assert.True(t, errors.IsConfigurationError(err))
	})

	t.Run("dev builds skip the check", func(t *testing.T) {
		cfg := Default()
		cfg.RequiredVersion = ">= 2.0"
		require.NoError(t, cfg.CheckRequiredVersion("dev"))
	})

	t.Run("malformed constraint fails", func(t *testing.T) {
		cfg := Default()
		cfg.RequiredVersion = "not a constraint"
		err := cfg.CheckRequiredVersion("1.0.0")
		require.Error(t, err)
		assert.True(t, errors.IsConfigurationError(err))
	})
}

func TestPersist(t *testing.T) {
	t.Run("round trips through TOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "causeway.toml")
		cfg := Default()
		cfg.Database.Path = "app.db"
		cfg.Variables = map[string]string{"schema": "app"}

		require.NoError(t, Persist(cfg, path))

		loaded, err := LoadFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "app.db", loaded.Database.Path)
		assert.Equal(t, "app", loaded.Variables["schema"])
	})

	t.Run("rotates a backup of the existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "causeway.toml")
		cfg := Default()

		require.NoError(t, Persist(cfg, path))
		cfg.Database.Path = "second.db"
		require.NoError(t, Persist(cfg, path))

		_, err := os.Stat(path + ".back1")
		require.NoError(t, err, "previous file kept as .back1")
	})
}
