package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// List returns every snapshot, newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+snapshotColumns+` FROM snapshots ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()
	return s.scanSnapshots(rows)
}

// Get returns the snapshot whose ID equals id or, failing that, the single
// snapshot whose ID starts with id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Snapshot, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return nil, ErrNotFound
	}

	snap, err := s.scanSnapshot(s.db.QueryRowContext(ctx,
		`SELECT `+snapshotColumns+` FROM snapshots WHERE id = ?`, id))
	if !errors.Is(err, ErrNotFound) {
		return snap, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+snapshotColumns+` FROM snapshots WHERE id LIKE ? ESCAPE '\' LIMIT 2`,
		escapeLike(id)+"%")
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	defer rows.Close()
	matches, err := s.scanSnapshots(rows)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	case 1:
		return &matches[0], nil
	}
	return nil, fmt.Errorf("%w: %s", ErrAmbiguous, id)
}

// Latest returns the newest snapshot of root.
func (s *SQLiteStore) Latest(ctx context.Context, root string) (*Snapshot, error) {
	return s.scanSnapshot(s.db.QueryRowContext(ctx,
		`SELECT `+snapshotColumns+` FROM snapshots WHERE root = ? ORDER BY created_at DESC LIMIT 1`,
		root))
}

// Delete removes a snapshot and its entries. id may be a unique prefix.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	snap, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.Tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE snapshot_id = ?`, snap.ID); err != nil {
			return fmt.Errorf("delete entries: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, snap.ID); err != nil {
			return fmt.Errorf("delete snapshot: %w", err)
		}
		return nil
	})
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
