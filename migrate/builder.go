package migrate

import (
	"context"

	"go.uber.org/zap"

	"github.com/causeway-db/causeway/errors"
	"github.com/causeway-db/causeway/logger"
)

// Builder combines discovered upgrade scripts with optional downgrade
// content into Migration units. It performs no ordering and no
// deduplication; duplicate names across providers are surfaced as a
// discovery-time warning, not a hard failure.
type Builder struct {
	providers []Provider
	resolver  DowngradeResolver
	logger    *zap.SugaredLogger
}

// NewBuilder creates a Builder over the given providers. resolver may be nil
// when no downgrade scripts exist.
func NewBuilder(resolver DowngradeResolver, providers ...Provider) *Builder {
	return &Builder{
		providers: providers,
		resolver:  resolver,
		logger:    logger.ComponentLogger("migrate.builder"),
	}
}

// Build enumerates every provider once and pairs each upgrade script with
// its downgrade content, preserving provider enumeration order.
func (b *Builder) Build(ctx context.Context) ([]Migration, error) {
	var migrations []Migration
	seen := make(map[string]bool)

	for _, p := range b.providers {
		scripts, err := p.Scripts(ctx)
		if err != nil {
			return nil, errors.Wrap(errors.Wrap(errors.ErrDiscovery, err.Error()), "enumerating upgrade scripts")
		}

		for _, script := range scripts {
			name := MigrationName(script.Name)
			if seen[name] {
				b.logger.Warnw("Duplicate migration name discovered",
					logger.FieldMigration, name,
					logger.FieldScript, script.Name,
				)
			}
			seen[name] = true

			m := Migration{Name: name, Upgrade: script}

			if b.resolver != nil {
				content, found, err := b.resolver.Resolve(ctx, script.Name)
				if err != nil {
					return nil, errors.Wrapf(errors.Wrap(errors.ErrDiscovery, err.Error()),
						"resolving downgrade for %q", name)
				}
				if found {
					m.Downgrade = content
				}
			}

			migrations = append(migrations, m)
		}
	}

	b.logger.Debugw("Built migrations", logger.FieldCount, len(migrations))
	return migrations, nil
}
