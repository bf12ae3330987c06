//go:build windows

// path_windows.go holds the platform defaults for Windows. File names are
// case-insensitive and absolute paths start with a drive root such as "C:".

package path

// DefaultCaseSensitive is false on Windows: "ABC" and "abc" are the same file.
const DefaultCaseSensitive = false

// DefaultUnix reports whether patterns are parsed with Unix semantics.
const DefaultUnix = false
