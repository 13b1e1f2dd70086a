package migrate

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"
	"time"

	"github.com/causeway-db/causeway/errors"
)

// Script is an immutable named unit of change content. The hash is computed
// once at construction and is the script's sole identity key: two scripts
// with identical content are indistinguishable to the journal, whatever
// their names.
type Script struct {
	Name    string
	Content string
	Hash    string
}

// NewScript builds a Script, hashing the content. Empty content is rejected:
// an empty script has no observable effect and would collide with every
// other empty script under content-hash identity.
func NewScript(name, content string) (Script, error) {
	if content == "" {
		return Script{}, errors.Wrapf(errors.ErrDiscovery, "script %q has no content", name)
	}
	return Script{
		Name:    name,
		Content: content,
		Hash:    HashContent(content),
	}, nil
}

// HashContent returns the hex SHA-256 digest of the content's UTF-8 bytes.
func HashContent(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Migration pairs an upgrade script with optional downgrade content.
// Name is the upgrade script's logical name with the extension stripped.
type Migration struct {
	Name      string
	Upgrade   Script
	Downgrade string
}

// CanDowngrade reports whether the migration carries downgrade content.
func (m Migration) CanDowngrade() bool {
	return m.Downgrade != ""
}

// MigrationName derives a migration name from a script's logical name by
// stripping the file extension.
func MigrationName(scriptName string) string {
	return strings.TrimSuffix(scriptName, filepath.Ext(scriptName))
}

// JournalEntry is the durable record of one applied migration.
type JournalEntry struct {
	ID          string
	Hash        string
	Name        string
	Downgrade   string
	AppliedAt   time.Time
	Duration    time.Duration
	AppliedWith string
}
