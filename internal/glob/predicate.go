package glob

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/jpl-au/globfs/internal/fsys"
)

// NameMatcher returns a function reporting whether a single path segment
// matches any of patterns. Each pattern is a single-segment doublestar
// pattern such as ".git" or "node_*". It returns nil for no patterns.
func NameMatcher(ignoreCase bool, patterns ...string) (func(string) bool, error) {
	compiled := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if strings.ContainsAny(p, `/\`) || !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%w: exclude pattern %q", ErrInvalidArgument, p)
		}
		if ignoreCase {
			p = strings.ToLower(p)
		}
		compiled = append(compiled, p)
	}
	if len(compiled) == 0 {
		return nil, nil
	}
	return func(name string) bool {
		if ignoreCase {
			name = strings.ToLower(name)
		}
		for _, p := range compiled {
			if ok, _ := doublestar.Match(p, name); ok {
				return true
			}
		}
		return false
	}, nil
}

// ExcludeNames returns a Predicate rejecting directories whose name matches
// any of patterns, as understood by NameMatcher.
func ExcludeNames(ignoreCase bool, patterns ...string) (Predicate, error) {
	match, err := NameMatcher(ignoreCase, patterns...)
	if err != nil || match == nil {
		return nil, err
	}
	return func(d fsys.Directory) bool {
		return !match(d.Name())
	}, nil
}

// All returns a Predicate accepting a directory only when every non-nil
// predicate does. It returns nil when none are given.
func All(preds ...Predicate) Predicate {
	var live []Predicate
	for _, p := range preds {
		if p != nil {
			live = append(live, p)
		}
	}
	switch len(live) {
	case 0:
		return nil
	case 1:
		return live[0]
	}
	return func(d fsys.Directory) bool {
		for _, p := range live {
			if !p(d) {
				return false
			}
		}
		return true
	}
}
