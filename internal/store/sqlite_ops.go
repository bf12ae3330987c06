// sqlite_ops.go provides SQLite connection management and low-level operations.
//
// This is the only file that imports the SQLite driver. WAL mode lets the
// MCP server read snapshots while the CLI indexes a new one; the busy
// timeout covers the short window where both want the write lock.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Register sqlite driver
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on a single SQLite database file.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

var _ Store = (*SQLiteStore)(nil)

// Open opens the SQLite database file at path. The caller should call Close
// on the returned store.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	// 5 seconds is generous; indexing commits in one transaction.
	if _, err := db.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	// NORMAL is safe against corruption under WAL. The only loss on an OS
	// crash is the last transaction, and a snapshot can be indexed again.
	if _, err := db.Exec(`PRAGMA synchronous=NORMAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting synchronous mode: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Init creates tables and indexes if they don't exist. Safe to call multiple
// times.
func (s *SQLiteStore) Init() error {
	return execSchema(s.db)
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// Path returns the database file the store was opened from.
func (s *SQLiteStore) Path() string {
	return s.path
}

// scanner abstracts sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const snapshotColumns = `id, root, unix, created_at, directories, files, bytes`

func scanSnap(sc scanner) (Snapshot, error) {
	var s Snapshot
	err := sc.Scan(&s.ID, &s.Root, &s.Unix, &s.CreatedAt, &s.Directories, &s.Files, &s.Bytes)
	return s, err
}

// scanSnapshot converts sql.ErrNoRows to ErrNotFound.
func (s *SQLiteStore) scanSnapshot(row *sql.Row) (*Snapshot, error) {
	snap, err := scanSnap(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan snapshot: %w", err)
	}
	return &snap, nil
}

func (s *SQLiteStore) scanSnapshots(rows *sql.Rows) ([]Snapshot, error) {
	var out []Snapshot
	for rows.Next() {
		snap, err := scanSnap(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

// Tx executes fn within a database transaction. fn returning an error rolls
// the transaction back; otherwise it is committed.
//
//	err := s.Tx(ctx, func(tx *sql.Tx) error {
//	    _, err := tx.ExecContext(ctx, `DELETE ...`)
//	    return err
//	})
func (s *SQLiteStore) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
