// schema.go embeds the SQLite schema and executes it.
//
// Schema files live in sql/ and run in name order, hence the numeric
// prefixes. Each file uses IF NOT EXISTS so Init is idempotent.

package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed sql/*.sql
var schemas embed.FS

var (
	// ErrNotFound indicates the requested snapshot does not exist.
	ErrNotFound = errors.New("snapshot not found")
	// ErrAmbiguous indicates an ID prefix selects more than one snapshot.
	ErrAmbiguous = errors.New("snapshot id is ambiguous")
	// ErrLocked is returned when another process is indexing into the same
	// database.
	ErrLocked = errors.New("snapshot database is locked by another indexer")
)

// ExecEmbedded executes all .sql files from an embedded filesystem in
// alphabetical order.
func ExecEmbedded(db *sql.DB, fsys embed.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("read schema directory: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := dir + "/" + entry.Name()
		data, err := fsys.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if _, err := db.Exec(string(data)); err != nil {
			return fmt.Errorf("exec %s: %w", entry.Name(), err)
		}
	}
	return nil
}

func execSchema(db *sql.DB) error {
	return ExecEmbedded(db, schemas, "sql")
}
