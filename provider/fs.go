// Package provider implements script providers over fs.FS, serving both
// on-disk directories (os.DirFS) and compiled-in scripts (embed.FS).
package provider

import (
	"context"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/causeway-db/causeway/errors"
	"github.com/causeway-db/causeway/migrate"
)

// FS enumerates .sql scripts from a filesystem. Logical script names are
// slash-separated paths relative to the filesystem root, so folder naming
// conventions (seed strategies, downgrade folders) survive enumeration.
type FS struct {
	fsys fs.FS
	ext  string
}

// NewFS creates a provider over any fs.FS.
func NewFS(fsys fs.FS) *FS {
	return &FS{fsys: fsys, ext: ".sql"}
}

// NewDir creates a provider over an on-disk directory.
func NewDir(dir string) *FS {
	return NewFS(os.DirFS(dir))
}

// Scripts walks the filesystem and returns every script in ascending path
// order. Enumeration is synchronous; callers enumerate once per run.
func (p *FS) Scripts(ctx context.Context) ([]migrate.Script, error) {
	var scripts []migrate.Script

	err := fs.WalkDir(p.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(path), p.ext) {
			return nil
		}

		content, err := fs.ReadFile(p.fsys, path)
		if err != nil {
			return errors.Wrapf(err, "reading script %s", path)
		}

		script, err := migrate.NewScript(path, string(content))
		if err != nil {
			return err
		}
		scripts = append(scripts, script)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "enumerating scripts")
	}

	sort.Slice(scripts, func(i, j int) bool { return scripts[i].Name < scripts[j].Name })
	return scripts, nil
}
