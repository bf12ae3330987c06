// Package fsys defines the file-system surface the glob engine walks.
//
// The engine only ever asks three questions of a file system: list the child
// directories of X, list the child files of X, and does a child named N exist
// under X. Everything else (creating, copying, streaming) is out of scope, so
// the interfaces here stay read-only and small.
//
// Implementations:
//   - OS walks the real file system through package os
//   - Memory is an in-memory tree for tests and tooling
//   - store.SnapshotFS serves a tree previously indexed into SQLite
package fsys

import "github.com/jpl-au/globfs/internal/path"

// Entry is anything that can appear in a directory listing.
type Entry interface {
	// Path is the full path of the entry.
	Path() path.Path

	// Name is the last path segment.
	Name() string

	// IsDir reports whether the entry is a directory.
	IsDir() bool

	// Exists reports whether the entry is present. Lookups of missing paths
	// return an Entry with Exists() == false rather than an error.
	Exists() bool
}

// Directory is a directory entry that can list its children.
type Directory interface {
	Entry

	// Directories returns the immediate child directories.
	Directories() ([]Directory, error)

	// Files returns the immediate child files.
	Files() ([]File, error)
}

// File is a file entry.
type File interface {
	Entry

	// Length returns the size in bytes, or 0 when unknown.
	Length() int64
}

// FileSystem resolves paths to entries.
type FileSystem interface {
	Directory(p path.DirectoryPath) Directory
	File(p path.FilePath) File
}

// Environment supplies the context a relative pattern is resolved against.
type Environment interface {
	// WorkingDirectory is the absolute directory relative patterns start from.
	WorkingDirectory() path.DirectoryPath

	// IsUnix reports whether patterns follow Unix rules (a leading "/" is the
	// root, no drive letters).
	IsUnix() bool
}
