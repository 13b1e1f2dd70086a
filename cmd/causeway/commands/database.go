package commands

import (
	"database/sql"
	"strings"

	"github.com/causeway-db/causeway/config"
	"github.com/causeway-db/causeway/db"
	"github.com/causeway-db/causeway/errors"
	"github.com/causeway-db/causeway/logger"
	"github.com/causeway-db/causeway/migrate"
	"github.com/causeway-db/causeway/provider"
	"github.com/causeway-db/causeway/seed"
	"github.com/causeway-db/causeway/version"
)

// loadConfig loads and validates the effective configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openDatabase opens the configured target database with the global logger.
func openDatabase(cfg *config.Config) (*sql.DB, error) {
	database, err := db.Open(cfg.Database.Path, logger.Logger)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database at %s", cfg.Database.Path)
	}
	return database, nil
}

// buildEngine wires the migration engine from configuration: filesystem
// providers, the downgrade resolver, the SQLite journal, and the executor.
func buildEngine(cfg *config.Config, database *sql.DB) (*migrate.Engine, error) {
	upgrades, downgrades := scriptProviders(cfg)

	var resolver migrate.DowngradeResolver
	if downgrades != nil {
		resolver = migrate.NewMatchingResolver(downgrades, matchOptions(cfg))
	}

	order, _ := migrate.ParseOrder(cfg.Migrations.Order)

	return migrate.NewEngine(migrate.Options{
		Providers: []migrate.Provider{upgrades},
		Resolver:  resolver,
		Journal:   db.NewMigrationJournal(database, "causeway "+version.Version),
		Executor:  db.NewSQLExecutor(logger.Logger),
		Conns:     db.NewConns(database),
		Variables: migrate.Variables(cfg.Variables),
		Order:     order,
	})
}

// buildSeedRunner wires the seed runner from configuration.
func buildSeedRunner(cfg *config.Config, database *sql.DB) (*seed.Runner, error) {
	defaultStrategy, _ := seed.ParseStrategyName(cfg.Seeds.DefaultStrategy)

	return seed.NewRunner(seed.Options{
		Providers: []migrate.Provider{provider.NewDir(cfg.Seeds.Dir)},
		Journal:   db.NewSeedJournal(database),
		Executor:  db.NewSQLExecutor(logger.Logger),
		Conns:     db.NewConns(database),
		Variables: migrate.Variables(cfg.Variables),
		Default:   defaultStrategy,
	})
}

// scriptProviders returns the upgrade and downgrade providers. With a
// dedicated downgrades directory the split is by location. Without one,
// suffix and prefix modes split a shared directory by naming convention,
// and same-name mode cannot tell the two apart, so downgrades are off.
func scriptProviders(cfg *config.Config) (upgrades, downgrades migrate.Provider) {
	base := provider.NewDir(cfg.Migrations.Dir)

	if cfg.Migrations.DowngradesDir != "" {
		return base, provider.NewDir(cfg.Migrations.DowngradesDir)
	}

	mode, _ := migrate.ParseMatchMode(cfg.Migrations.Match)
	if mode == migrate.MatchSameName {
		return base, nil
	}

	isDowngrade := downgradeNameMatcher(cfg, mode)
	upgrades = provider.NewFiltered(base, func(name string) bool { return !isDowngrade(name) })
	downgrades = provider.NewFiltered(base, isDowngrade)
	return upgrades, downgrades
}

// downgradeNameMatcher reports whether a script name follows the configured
// downgrade naming convention.
func downgradeNameMatcher(cfg *config.Config, mode migrate.MatchMode) func(string) bool {
	pattern := cfg.Migrations.MatchPattern
	suffix := cfg.Migrations.DowngradeSuffix

	return func(name string) bool {
		base := strings.TrimSuffix(name, suffix)
		if mode == migrate.MatchSuffix {
			return strings.HasSuffix(base, pattern)
		}
		return strings.HasPrefix(base, pattern)
	}
}

func matchOptions(cfg *config.Config) migrate.MatchOptions {
	mode, _ := migrate.ParseMatchMode(cfg.Migrations.Match)
	opts := migrate.DefaultMatchOptions()
	opts.Mode = mode
	opts.Pattern = cfg.Migrations.MatchPattern
	if cfg.Migrations.UpgradeSuffix != "" {
		opts.UpgradeSuffix = cfg.Migrations.UpgradeSuffix
	}
	if cfg.Migrations.DowngradeSuffix != "" {
		opts.DowngradeSuffix = cfg.Migrations.DowngradeSuffix
	}
	return opts
}
