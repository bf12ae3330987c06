//go:build !windows

// path_unix.go holds the platform defaults for Unix systems (Linux, macOS,
// etc). File names are case-sensitive and "/" is the only root.

package path

// DefaultCaseSensitive is true on Unix: "ABC" and "abc" are different files.
const DefaultCaseSensitive = true

// DefaultUnix reports whether patterns are parsed with Unix semantics.
const DefaultUnix = true
