package seed

import (
	"context"
	"strings"

	"github.com/causeway-db/causeway/migrate"
)

// Strategy is a seed re-run policy. It is a pure value: parsing a path into
// a Strategy and deciding whether a seed runs are separate concerns.
type Strategy int

const (
	// RunOnce runs a seed only while no journal record exists for its
	// content hash. Editing the seed changes the hash, so it runs again.
	RunOnce Strategy = iota

	// RunAlways runs a seed on every invocation, regardless of journal
	// state.
	RunAlways

	// RunIfChanged runs a seed when it has never run, or when its content
	// hash differs from the stored one (content drift detection).
	RunIfChanged
)

// String returns the convention token for the strategy.
func (s Strategy) String() string {
	switch s {
	case RunAlways:
		return "run-always"
	case RunIfChanged:
		return "run-if-changed"
	default:
		return "run-once"
	}
}

// ParseStrategyName maps a config-file spelling to a Strategy.
func ParseStrategyName(name string) (Strategy, bool) {
	switch normalizeToken(name) {
	case "run-once", "":
		return RunOnce, true
	case "run-always":
		return RunAlways, true
	case "run-if-changed":
		return RunIfChanged, true
	default:
		return RunOnce, false
	}
}

// ParseStrategy inspects a seed script's logical path for a strategy token.
// Path segments (split on '.', '/', and '\') are scanned from the immediate
// parent outward, so the nearest enclosing folder wins when strategy
// folders nest. Tokens match case-insensitively with '_' and space
// normalized to '-'.
//
// Returns found=false when no segment matches; the caller applies the
// configured default.
func ParseStrategy(path string) (Strategy, bool) {
	segments := strings.FieldsFunc(path, func(r rune) bool {
		return r == '.' || r == '/' || r == '\\'
	})

	for i := len(segments) - 1; i >= 0; i-- {
		switch normalizeToken(segments[i]) {
		case "run-once":
			return RunOnce, true
		case "run-always":
			return RunAlways, true
		case "run-if-changed":
			return RunIfChanged, true
		}
	}
	return RunOnce, false
}

func normalizeToken(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.ReplaceAll(s, " ", "-")
	return s
}

// ShouldRun decides whether a seed must run now, reading journal state at
// decision time. One pure decision function per variant.
func (s Strategy) ShouldRun(ctx context.Context, journal Journal, script migrate.Script) (bool, error) {
	switch s {
	case RunAlways:
		return shouldRunAlways(), nil
	case RunIfChanged:
		return shouldRunIfChanged(ctx, journal, script)
	default:
		return shouldRunOnce(ctx, journal, script)
	}
}

func shouldRunOnce(ctx context.Context, journal Journal, script migrate.Script) (bool, error) {
	exists, err := journal.HasHash(ctx, script.Hash)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

func shouldRunAlways() bool {
	return true
}

func shouldRunIfChanged(ctx context.Context, journal Journal, script migrate.Script) (bool, error) {
	entry, err := journal.Entry(ctx, script.Name)
	if err != nil {
		return false, err
	}
	if entry == nil {
		return true, nil
	}
	return entry.Hash != script.Hash, nil
}
