// comparer.go implements case-aware path equality and hashing.
//
// Whether "ABC" and "abc" name the same entry depends on the platform, so
// equality is never a plain string comparison. Comparer folds both sides the
// same way for Equal and Hash, which keeps Set lookups consistent.

package path

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Comparer compares paths with or without regard to case.
type Comparer struct {
	caseSensitive bool
}

// NewComparer returns a Comparer. Pass DefaultCaseSensitive for the
// behaviour of the current platform.
func NewComparer(caseSensitive bool) Comparer {
	return Comparer{caseSensitive: caseSensitive}
}

// CaseSensitive reports whether the comparer distinguishes case.
func (c Comparer) CaseSensitive() bool { return c.caseSensitive }

// Equal reports whether a and b denote the same path.
func (c Comparer) Equal(a, b Path) bool {
	return c.fold(a.full) == c.fold(b.full)
}

// EqualName reports whether two single segment names are equal.
func (c Comparer) EqualName(a, b string) bool {
	return c.fold(a) == c.fold(b)
}

// Hash returns a 64-bit hash consistent with Equal.
func (c Comparer) Hash(p Path) uint64 {
	return xxhash.Sum64String(c.fold(p.full))
}

func (c Comparer) fold(s string) string {
	if c.caseSensitive {
		return s
	}
	return strings.ToLower(s)
}

// Set is an insertion-ordered set of paths keyed by a Comparer.
type Set struct {
	cmp     Comparer
	buckets map[uint64][]int
	items   []Path
}

// NewSet returns an empty Set using cmp for equality.
func NewSet(cmp Comparer) *Set {
	return &Set{cmp: cmp, buckets: make(map[uint64][]int)}
}

// Add inserts p and reports whether it was not already present.
func (s *Set) Add(p Path) bool {
	h := s.cmp.Hash(p)
	for _, i := range s.buckets[h] {
		if s.cmp.Equal(s.items[i], p) {
			return false
		}
	}
	s.buckets[h] = append(s.buckets[h], len(s.items))
	s.items = append(s.items, p)
	return true
}
