// Package validate checks user input at the CLI and MCP boundary before it
// reaches the glob engine or the snapshot store.
//
// Validation is minimal. The glob parser already rejects characters the
// platform forbids; this package adds the limits that protect the process
// (pattern length, encoding) and the checks that need the real file system
// (a root must exist).
//
// All errors wrap a sentinel from errors.go; use errors.Is:
//
//	if errors.Is(err, validate.ErrPatternTooLong) {
//	    // suggest raising limits.max_pattern
//	}
package validate
