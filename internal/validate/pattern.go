package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Pattern checks a glob pattern before parsing.
//
// Rules:
//   - valid UTF-8
//   - no NUL bytes, on any platform
//   - at most maxLen bytes when maxLen > 0
//
// A blank pattern is valid; it matches nothing.
func Pattern(p string, maxLen int) error {
	if !utf8.ValidString(p) {
		return fmt.Errorf("%w: not valid UTF-8", ErrInvalidPattern)
	}
	if strings.ContainsRune(p, 0) {
		return fmt.Errorf("%w: null byte in pattern", ErrInvalidPattern)
	}
	if maxLen > 0 && len(p) > maxLen {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrPatternTooLong, len(p), maxLen)
	}
	return nil
}

// Name checks a single directory name used to prune walks, such as an
// --exclude value. It may contain wildcards but no separators.
func Name(n string) error {
	if strings.TrimSpace(n) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if strings.ContainsAny(n, `/\`) {
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, n)
	}
	if strings.ContainsRune(n, 0) {
		return fmt.Errorf("%w: null byte in name", ErrInvalidName)
	}
	return nil
}

// Root resolves dir to an absolute path and checks it is an existing
// directory. An empty dir means the current directory.
func Root(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidRoot, err)
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidRoot, err)
	}
	if !fi.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, abs)
	}
	return abs, nil
}
