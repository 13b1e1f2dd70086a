package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/causeway-db/causeway/errors"
	"github.com/causeway-db/causeway/logger"
)

// createBackup creates rotating backups (.back1, .back2, .back3) before
// modifying a config file
func createBackup(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil // No file to backup
	}

	// Rotate: .back3 -> delete, .back2 -> .back3, .back1 -> .back2, current -> .back1
	back3 := configPath + ".back3"
	back2 := configPath + ".back2"
	back1 := configPath + ".back1"

	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		logger.Warnw("Failed to delete old backup", "path", back3, "error", err)
	}

	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "failed to rotate .back2 to .back3")
		}
	}

	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "failed to rotate .back1 to .back2")
		}
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}

	if err := os.WriteFile(back1, content, 0644); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}

	return nil
}

// Persist writes the configuration to the given path, rotating backups of
// any existing file first.
func Persist(c *Config, configPath string) error {
	if err := createBackup(configPath); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write config")
	}

	return nil
}

// Default returns a configuration populated with the standard defaults.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "causeway.db"},
		Migrations: MigrationsConfig{
			Dir:             "migrations",
			Match:           "same-name",
			UpgradeSuffix:   ".sql",
			DowngradeSuffix: ".sql",
			Order:           "ascending",
		},
		Seeds: SeedsConfig{
			Dir:             "seeds",
			DefaultStrategy: "run-once",
		},
	}
}
