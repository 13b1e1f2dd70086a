package migrate

import (
	"context"
	"strings"
)

// MatchMode selects how a downgrade script's name is derived from an
// upgrade script's name.
type MatchMode int

const (
	// MatchSameName requires an identical base name (extension-normalized).
	// Typically used with a separate downgrades folder.
	MatchSameName MatchMode = iota

	// MatchSuffix requires the upgrade's base name with Pattern appended,
	// e.g. 001_CreateTable + "_downgrade".
	MatchSuffix

	// MatchPrefix requires Pattern prepended to the upgrade's base name,
	// e.g. "revert_" + 001_CreateTable.
	MatchPrefix
)

// String returns the config-file spelling of the mode.
func (m MatchMode) String() string {
	switch m {
	case MatchSameName:
		return "same-name"
	case MatchSuffix:
		return "suffix"
	case MatchPrefix:
		return "prefix"
	default:
		return "unknown"
	}
}

// ParseMatchMode maps a config-file spelling to a MatchMode.
func ParseMatchMode(s string) (MatchMode, bool) {
	switch strings.ToLower(s) {
	case "same-name", "samename", "":
		return MatchSameName, true
	case "suffix":
		return MatchSuffix, true
	case "prefix":
		return MatchPrefix, true
	default:
		return MatchSameName, false
	}
}

// MatchOptions governs downgrade name derivation. Immutable once the
// orchestrator is configured.
type MatchOptions struct {
	Mode    MatchMode
	Pattern string

	// Suffixes stripped before base-name comparison.
	UpgradeSuffix   string
	DowngradeSuffix string
}

// DefaultMatchOptions matches a downgrade script of the same name in the
// downgrade provider, with .sql extensions normalized away.
func DefaultMatchOptions() MatchOptions {
	return MatchOptions{
		Mode:            MatchSameName,
		UpgradeSuffix:   ".sql",
		DowngradeSuffix: ".sql",
	}
}

// MatchingResolver resolves downgrade content from a downgrade script
// provider using name-matching conventions. Resolution returns found=false
// rather than failing when no script matches.
type MatchingResolver struct {
	provider Provider
	opts     MatchOptions
}

// NewMatchingResolver creates a resolver over the downgrade script provider.
func NewMatchingResolver(provider Provider, opts MatchOptions) *MatchingResolver {
	return &MatchingResolver{provider: provider, opts: opts}
}

// Resolve locates downgrade content for the named upgrade script.
func (r *MatchingResolver) Resolve(ctx context.Context, upgradeName string) (string, bool, error) {
	scripts, err := r.provider.Scripts(ctx)
	if err != nil {
		return "", false, err
	}

	want := r.opts.wantedName(upgradeName)
	for _, s := range scripts {
		if strings.TrimSuffix(s.Name, r.opts.DowngradeSuffix) == want {
			return s.Content, true, nil
		}
	}
	return "", false, nil
}

// wantedName derives the downgrade base name expected for an upgrade script.
func (o MatchOptions) wantedName(upgradeName string) string {
	base := strings.TrimSuffix(upgradeName, o.UpgradeSuffix)
	switch o.Mode {
	case MatchSuffix:
		return base + o.Pattern
	case MatchPrefix:
		return o.Pattern + base
	default:
		return base
	}
}
