package provider

import (
	"context"

	"github.com/causeway-db/causeway/migrate"
)

// Filtered wraps a provider, keeping only scripts whose logical name
// satisfies keep. It lets one directory serve as both upgrade and downgrade
// source when the two are distinguished by naming convention.
type Filtered struct {
	inner migrate.Provider
	keep  func(name string) bool
}

// NewFiltered creates a filtering provider.
func NewFiltered(inner migrate.Provider, keep func(name string) bool) *Filtered {
	return &Filtered{inner: inner, keep: keep}
}

// Scripts enumerates the inner provider and drops non-matching scripts.
func (p *Filtered) Scripts(ctx context.Context) ([]migrate.Script, error) {
	scripts, err := p.inner.Scripts(ctx)
	if err != nil {
		return nil, err
	}

	kept := scripts[:0:0]
	for _, s := range scripts {
		if p.keep(s.Name) {
			kept = append(kept, s)
		}
	}
	return kept, nil
}
