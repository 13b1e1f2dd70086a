package config

import "github.com/spf13/viper"

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Database defaults
	v.SetDefault("database.path", "causeway.db")

	// Migration defaults
	v.SetDefault("migrations.dir", "migrations")
	v.SetDefault("migrations.match", "same-name")
	v.SetDefault("migrations.upgrade_suffix", ".sql")
	v.SetDefault("migrations.downgrade_suffix", ".sql")
	v.SetDefault("migrations.order", "ascending")

	// Seed defaults
	v.SetDefault("seeds.dir", "seeds")
	v.SetDefault("seeds.default_strategy", "run-once")
}
