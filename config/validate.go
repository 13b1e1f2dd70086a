package config

import (
	"github.com/Masterminds/semver/v3"

	"github.com/causeway-db/causeway/errors"
	"github.com/causeway-db/causeway/migrate"
	"github.com/causeway-db/causeway/seed"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return errors.NewConfigurationError("database.path cannot be empty")
	}
	if c.Migrations.Dir == "" {
		return errors.NewConfigurationError("migrations.dir cannot be empty")
	}

	mode, ok := migrate.ParseMatchMode(c.Migrations.Match)
	if !ok {
		return errors.NewConfigurationError("migrations.match %q is not a known mode (same-name, suffix, prefix)", c.Migrations.Match)
	}
	if mode != migrate.MatchSameName && c.Migrations.MatchPattern == "" {
		return errors.NewConfigurationError("migrations.match_pattern is required for match mode %q", mode)
	}
	if _, ok := migrate.ParseOrder(c.Migrations.Order); !ok {
		return errors.NewConfigurationError("migrations.order %q is not a known order (ascending, descending)", c.Migrations.Order)
	}
	if _, ok := seed.ParseStrategyName(c.Seeds.DefaultStrategy); !ok {
		return errors.NewConfigurationError("seeds.default_strategy %q is not a known strategy (run-once, run-always, run-if-changed)", c.Seeds.DefaultStrategy)
	}

	return nil
}

// CheckRequiredVersion verifies the running tool version against the
// required_version constraint. Non-semver tool versions such as dev builds
// skip the check rather than failing it.
func (c *Config) CheckRequiredVersion(toolVersion string) error {
	if c.RequiredVersion == "" {
		return nil
	}

	constraint, err := semver.NewConstraint(c.RequiredVersion)
	if err != nil {
		return errors.NewConfigurationError("required_version %q is not a valid constraint", c.RequiredVersion)
	}

	current, err := semver.NewVersion(toolVersion)
	if err != nil {
		return nil
	}

	if !constraint.Check(current) {
		return errors.NewConfigurationError("version %s does not satisfy required_version %q", toolVersion, c.RequiredVersion)
	}
	return nil
}
