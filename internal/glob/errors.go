// errors.go defines the error kinds raised while interpreting a pattern.
//
// Only parsing fails. Walking the file system never produces these errors:
// a missing directory or a rejected predicate just contributes no matches.

package glob

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for unusable inputs such as a nil file system.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrIllegalCharacter is returned when a pattern contains a character the
	// platform does not allow in paths.
	ErrIllegalCharacter = errors.New("illegal character in pattern")
	// ErrUnsupported is returned for pattern shapes with no defined meaning,
	// such as ".." directly after "**".
	ErrUnsupported = errors.New("unsupported pattern")
	// ErrUnexpectedToken is returned when a token appears where the grammar
	// does not allow it.
	ErrUnexpectedToken = errors.New("unexpected token")
)

// PatternError describes why a pattern could not be parsed.
type PatternError struct {
	Pattern string
	Pos     int    // byte offset into Pattern
	Err     error  // one of the sentinel errors above
	Detail  string // human-readable specifics
}

func (e *PatternError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("pattern %q at offset %d: %v", e.Pattern, e.Pos, e.Err)
	}
	return fmt.Sprintf("pattern %q at offset %d: %v: %s", e.Pattern, e.Pos, e.Err, e.Detail)
}

// Unwrap returns the sentinel error so callers can use errors.Is.
func (e *PatternError) Unwrap() error { return e.Err }
