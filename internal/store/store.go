// Package store persists snapshots of directory trees so patterns can be
// matched against a tree as it was when indexed. Consumers depend on the
// Store interface; SQLiteStore is the implementation.
package store

import (
	"encoding/json"
	"time"
)

// Snapshot describes one indexed tree.
type Snapshot struct {
	ID          string // UUID
	Root        string // absolute root directory, "/" separated
	Unix        bool   // path rules the tree was indexed under
	CreatedAt   int64  // Unix timestamp
	Directories int64  // directory count, root included
	Files       int64
	Bytes       int64 // sum of file sizes
}

// ShortID returns the first eight characters of the ID, enough to select a
// snapshot with Get in practice.
func (s *Snapshot) ShortID() string {
	if len(s.ID) < 8 {
		return s.ID
	}
	return s.ID[:8]
}

// SnapshotJSON is the API representation of a Snapshot.
type SnapshotJSON struct {
	ID          string `json:"id"`
	Root        string `json:"root"`
	Platform    string `json:"platform"`
	CreatedAt   string `json:"created_at"`
	Directories int64  `json:"directories"`
	Files       int64  `json:"files"`
	Bytes       int64  `json:"bytes"`
}

// ToJSON converts a Snapshot to its API representation with RFC3339 timestamps.
func (s *Snapshot) ToJSON() SnapshotJSON {
	platform := "windows"
	if s.Unix {
		platform = "unix"
	}
	return SnapshotJSON{
		ID:          s.ID,
		Root:        s.Root,
		Platform:    platform,
		CreatedAt:   time.Unix(s.CreatedAt, 0).UTC().Format(time.RFC3339),
		Directories: s.Directories,
		Files:       s.Files,
		Bytes:       s.Bytes,
	}
}

// MarshalJSON encodes a value with indentation for human-readable CLI output.
// Use this instead of json.Marshal when the output will be displayed to users.
func MarshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// IndexOptions configures an Index operation.
type IndexOptions struct {
	// Skip prunes directories by name. The root itself is never skipped.
	Skip func(name string) bool
	// Unix records the path rules the snapshot is matched with later.
	Unix bool
	// Progress shows a spinner on stderr while walking.
	Progress bool
}

// Stats provides aggregate figures across all snapshots.
type Stats struct {
	Snapshots int64
	Entries   int64 // stored directory and file rows
	Bytes     int64 // sum of indexed file sizes
	Oldest    int64 // Unix timestamp, 0 if empty
	Newest    int64
}
