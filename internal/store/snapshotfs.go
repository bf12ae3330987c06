package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jpl-au/globfs/internal/fsys"
)

// SnapshotFS is a snapshot loaded into memory as a file system. Names
// compare case-insensitively for snapshots taken under Windows rules.
type SnapshotFS struct {
	*fsys.Memory
	Snapshot Snapshot

	// Skipped lists indexed paths that could not be loaded because an
	// earlier entry took the same name under Windows rules. Entries below a
	// skipped directory are listed too.
	Skipped []string
}

// Environment returns an environment rooted at the snapshot root, so
// relative patterns resolve the same way they did on the indexed tree.
func (f *SnapshotFS) Environment() fsys.Environment {
	return fsys.NewEnvironment(f.Snapshot.Root, f.Snapshot.Unix)
}

// FileSystem loads the snapshot selected by id (or a unique prefix of it).
func (s *SQLiteStore) FileSystem(ctx context.Context, id string) (*SnapshotFS, error) {
	snap, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT path, is_dir, size FROM entries WHERE snapshot_id = ? ORDER BY path`, snap.ID)
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", snap.ShortID(), err)
	}
	defer rows.Close()

	mem := fsys.NewMemory(snap.Unix)
	if err := mem.AddDirectory(snap.Root); err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", snap.ShortID(), err)
	}
	sfs := &SnapshotFS{Memory: mem, Snapshot: *snap}
	for rows.Next() {
		var (
			p    string
			dir  bool
			size int64
		)
		if err := rows.Scan(&p, &dir, &size); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		if dir {
			err = mem.AddDirectory(p)
		} else {
			err = mem.AddFile(p, size)
		}
		switch {
		case err == nil:
		case !snap.Unix && (errors.Is(err, fsys.ErrConflict) || errors.Is(err, fsys.ErrCollision)):
			// First spelling in path order wins.
			sfs.Skipped = append(sfs.Skipped, p)
		default:
			return nil, fmt.Errorf("load snapshot %s: %w", snap.ShortID(), err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sfs, nil
}
