// node.go defines the parsed form of a pattern.
//
// A pattern parses to a singly linked chain: exactly one root node at the
// head, followed by zero or more segment nodes. The chain owns its nodes and
// is immutable once Parse returns.

package glob

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// NodeKind identifies the variant of a Node.
type NodeKind int

const (
	RelativeRoot NodeKind = iota
	UnixRoot
	WindowsRoot
	ParentSegment
	IdentifierSegment
	WildcardSegment
	RecursiveWildcardSegment
	PatternSegment
)

func (k NodeKind) String() string {
	switch k {
	case RelativeRoot:
		return "relative root"
	case UnixRoot:
		return "unix root"
	case WindowsRoot:
		return "windows root"
	case ParentSegment:
		return "parent"
	case IdentifierSegment:
		return "identifier"
	case WildcardSegment:
		return "wildcard"
	case RecursiveWildcardSegment:
		return "recursive wildcard"
	case PatternSegment:
		return "pattern"
	default:
		return fmt.Sprintf("node(%d)", int(k))
	}
}

// Node is one element of a parsed pattern.
type Node struct {
	Kind NodeKind
	// Text is the segment as written: the identifier for IdentifierSegment,
	// the drive ("C:") for WindowsRoot and the raw segment for PatternSegment.
	Text string
	Next *Node

	pattern string // doublestar form of a PatternSegment
	pos     int
}

// IsRoot reports whether n is one of the root kinds.
func (n *Node) IsRoot() bool {
	switch n.Kind {
	case RelativeRoot, UnixRoot, WindowsRoot:
		return true
	}
	return false
}

// IsMatch reports whether the single path segment name satisfies n.
// Roots and parent segments match nothing.
func (n *Node) IsMatch(name string, ignoreCase bool) bool {
	switch n.Kind {
	case WildcardSegment, RecursiveWildcardSegment:
		return true
	case IdentifierSegment:
		if ignoreCase {
			return strings.EqualFold(n.Text, name)
		}
		return n.Text == name
	case PatternSegment:
		pattern := n.pattern
		if ignoreCase {
			pattern = strings.ToLower(pattern)
			name = strings.ToLower(name)
		}
		ok, err := doublestar.Match(pattern, name)
		return err == nil && ok
	}
	return false
}

// segment returns the text n contributes to a rendered pattern.
func (n *Node) segment() string {
	switch n.Kind {
	case RelativeRoot:
		return "."
	case UnixRoot:
		return ""
	case ParentSegment:
		return ".."
	case WildcardSegment:
		return "*"
	case RecursiveWildcardSegment:
		return "**"
	}
	return n.Text
}

// String renders the chain starting at n in normalised form, using "/" as
// the separator. Relative patterns render with a leading "./".
func (n *Node) String() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	for cur := n; cur != nil; cur = cur.Next {
		if cur != n {
			b.WriteByte('/')
		}
		b.WriteString(cur.segment())
	}
	s := b.String()
	switch {
	case n.Kind == UnixRoot && n.Next == nil:
		return "/"
	case n.Kind == WindowsRoot && n.Next == nil:
		return s + "/"
	}
	return s
}

// Segments returns the chain as a slice, root first.
func (n *Node) Segments() []*Node {
	var out []*Node
	for cur := n; cur != nil; cur = cur.Next {
		out = append(out, cur)
	}
	return out
}
