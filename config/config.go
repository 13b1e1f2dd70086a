// Package config loads and validates Causeway configuration from TOML files
// and CAUSEWAY_* environment variables.
package config

// Config represents the core Causeway configuration
type Config struct {
	Database   DatabaseConfig    `mapstructure:"database" toml:"database"`
	Migrations MigrationsConfig  `mapstructure:"migrations" toml:"migrations"`
	Seeds      SeedsConfig       `mapstructure:"seeds" toml:"seeds"`
	Variables  map[string]string `mapstructure:"variables" toml:"variables,omitempty"`

	// RequiredVersion is a semver constraint the running tool must satisfy,
	// e.g. ">= 1.2". Empty means no requirement.
	RequiredVersion string `mapstructure:"required_version" toml:"required_version,omitempty"`
}

// DatabaseConfig configures the target SQLite database
type DatabaseConfig struct {
	Path string `mapstructure:"path" toml:"path"`
}

// MigrationsConfig configures script discovery and downgrade pairing
type MigrationsConfig struct {
	Dir           string `mapstructure:"dir" toml:"dir"`
	DowngradesDir string `mapstructure:"downgrades_dir" toml:"downgrades_dir,omitempty"` // empty = same directory as upgrades

	// Match selects how downgrade scripts pair with upgrades:
	// same-name, suffix, or prefix
	Match           string `mapstructure:"match" toml:"match"`
	MatchPattern    string `mapstructure:"match_pattern" toml:"match_pattern,omitempty"`
	UpgradeSuffix   string `mapstructure:"upgrade_suffix" toml:"upgrade_suffix,omitempty"`
	DowngradeSuffix string `mapstructure:"downgrade_suffix" toml:"downgrade_suffix,omitempty"`

	// Order of upgrade application: ascending or descending
	Order string `mapstructure:"order" toml:"order"`
}

// SeedsConfig configures seed discovery and the fallback run policy
type SeedsConfig struct {
	Dir             string `mapstructure:"dir" toml:"dir"`
	DefaultStrategy string `mapstructure:"default_strategy" toml:"default_strategy"`
}
