// index.go records a directory tree on disk as a snapshot.
//
// Indexing walks the tree first and writes every entry in a single
// transaction, so a snapshot is either complete or absent. A lock file next
// to the database keeps two indexers from racing; readers are unaffected.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/jpl-au/globfs/internal/path"
	"github.com/jpl-au/globfs/internal/progress"
)

type indexEntry struct {
	path string
	dir  bool
	size int64
}

// Index walks root and stores it as a new snapshot. Unreadable directories
// below root are skipped; an unreadable root is an error.
func (s *SQLiteStore) Index(ctx context.Context, root string, opts IndexOptions) (*Snapshot, error) {
	lock := flock.New(s.path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire index lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}
	defer func() { _ = lock.Unlock() }()

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", root, err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("index %s: not a directory", root)
	}

	entries, err := walkTree(ctx, abs, opts)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		ID:        uuid.NewString(),
		Root:      path.New(filepath.ToSlash(abs)).String(),
		Unix:      opts.Unix,
		CreatedAt: time.Now().Unix(),
	}
	for _, e := range entries {
		if e.dir {
			snap.Directories++
		} else {
			snap.Files++
			snap.Bytes += e.size
		}
	}

	err = s.Tx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO snapshots (`+snapshotColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			snap.ID, snap.Root, snap.Unix, snap.CreatedAt, snap.Directories, snap.Files, snap.Bytes)
		if err != nil {
			return fmt.Errorf("insert snapshot: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO entries (snapshot_id, path, is_dir, size) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare entries: %w", err)
		}
		defer stmt.Close()

		var bar *progress.Bar
		if opts.Progress {
			bar = progress.New("Writing", len(entries))
			defer bar.Done()
		}
		for _, e := range entries {
			if _, err := stmt.ExecContext(ctx, snap.ID, e.path, e.dir, e.size); err != nil {
				return fmt.Errorf("insert %s: %w", e.path, err)
			}
			if bar != nil {
				bar.Increment()
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func walkTree(ctx context.Context, root string, opts IndexOptions) ([]indexEntry, error) {
	var counter *progress.Counter
	if opts.Progress {
		counter = progress.NewCounter("Indexing")
		defer counter.Stop()
	}

	var entries []indexEntry
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return err
			}
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		e := indexEntry{path: path.New(filepath.ToSlash(p)).String()}
		switch {
		case d.IsDir():
			if p != root && opts.Skip != nil && opts.Skip(d.Name()) {
				return fs.SkipDir
			}
			e.dir = true
		case d.Type()&fs.ModeSymlink != 0:
			// Linked directories are not followed, matching the live file system.
			fi, err := os.Stat(p)
			if err != nil || fi.IsDir() {
				return nil
			}
			e.size = fi.Size()
		default:
			fi, err := d.Info()
			if err != nil {
				return nil
			}
			e.size = fi.Size()
		}

		entries = append(entries, e)
		if counter != nil {
			counter.Add(1)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("index %s: %w", root, err)
	}
	return entries, nil
}
