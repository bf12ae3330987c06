// interfaces.go defines the storage abstraction for snapshots.
//
// The interfaces are granular so consumers only depend on what they use:
// the MCP server needs a Reader, the snapshot command a full Store.

package store

import (
	"context"
	"database/sql"
)

// Reader defines read-only snapshot operations.
type Reader interface {
	// List returns every snapshot, newest first.
	List(ctx context.Context) ([]Snapshot, error)

	// Get returns the snapshot whose ID equals or starts with id.
	// Returns ErrNotFound for no match and ErrAmbiguous for several.
	Get(ctx context.Context, id string) (*Snapshot, error)

	// Latest returns the newest snapshot of root.
	Latest(ctx context.Context, root string) (*Snapshot, error)

	// FileSystem loads a snapshot so patterns can be matched against it.
	FileSystem(ctx context.Context, id string) (*SnapshotFS, error)

	// Stats returns aggregate figures across all snapshots.
	Stats(ctx context.Context) (*Stats, error)
}

// Writer defines operations that add or remove snapshots.
type Writer interface {
	// Index walks root on disk and records it as a new snapshot.
	Index(ctx context.Context, root string, opts IndexOptions) (*Snapshot, error)

	// Delete removes a snapshot and its entries.
	Delete(ctx context.Context, id string) error
}

// Maintainer defines database lifecycle operations.
type Maintainer interface {
	Close() error
	DB() *sql.DB
	Checkpoint(ctx context.Context) error
	Compact(ctx context.Context) error
}

// Store is the full snapshot persistence interface.
type Store interface {
	Reader
	Writer
	Maintainer
}
