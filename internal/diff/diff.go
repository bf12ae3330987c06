// Package diff compares two match results, for example the same pattern
// evaluated against two snapshots, and formats the difference.
package diff

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is the number of unchanged lines shown before/after changes.
// When equal sections exceed 2*contextLines, they're collapsed with "...".
const contextLines = 3

// Result holds diff output.
type Result struct {
	Old     string   // old label
	New     string   // new label
	Diff    string   // plain diff text
	Added   []string // paths only in new, sorted
	Removed []string // paths only in old, sorted
}

// Changed reports whether the two sets differ.
func (r Result) Changed() bool {
	return len(r.Added) > 0 || len(r.Removed) > 0
}

// Compute returns the difference between two path sets. Input order and
// duplicates are irrelevant; both sides are sorted and deduplicated first.
func Compute(oldPaths, newPaths []string, oldLabel, newLabel string) Result {
	a := sortedSet(oldPaths)
	b := sortedSet(newPaths)

	dmp := diffmatchpatch.New()
	// Line mode treats each path as one unit, so "src/a" never partially
	// matches "src/ab".
	ca, cb, lines := dmp.DiffLinesToChars(join(a), join(b))
	d := dmp.DiffMain(ca, cb, false)
	d = dmp.DiffCharsToLines(d, lines)

	r := Result{Old: oldLabel, New: newLabel, Diff: format(d)}
	for _, x := range d {
		switch x.Type {
		case diffmatchpatch.DiffInsert:
			r.Added = append(r.Added, split(x.Text)...)
		case diffmatchpatch.DiffDelete:
			r.Removed = append(r.Removed, split(x.Text)...)
		}
	}
	slices.Sort(r.Added)
	slices.Sort(r.Removed)
	return r
}

func sortedSet(paths []string) []string {
	out := slices.Clone(paths)
	slices.Sort(out)
	return slices.Compact(out)
}

func join(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	return strings.Join(paths, "\n") + "\n"
}

func split(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// format converts diffs to unified-style text.
func format(diffs []diffmatchpatch.Diff) string {
	var b strings.Builder
	for _, d := range diffs {
		lines := split(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			for _, l := range lines {
				b.WriteString("- " + l + "\n")
			}
		case diffmatchpatch.DiffInsert:
			for _, l := range lines {
				b.WriteString("+ " + l + "\n")
			}
		case diffmatchpatch.DiffEqual:
			if len(lines) > 2*contextLines {
				for i := range contextLines {
					b.WriteString("  " + lines[i] + "\n")
				}
				b.WriteString("  ...\n")
				for i := len(lines) - contextLines; i < len(lines); i++ {
					b.WriteString("  " + lines[i] + "\n")
				}
			} else {
				for _, l := range lines {
					b.WriteString("  " + l + "\n")
				}
			}
		}
	}
	return b.String()
}

// Colourise adds ANSI colours to diff output.
func Colourise(d string) string {
	const (
		red   = "\033[31m"
		green = "\033[32m"
		reset = "\033[0m"
	)

	var b strings.Builder
	for _, line := range strings.Split(d, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "- "):
			b.WriteString(red + line + reset + "\n")
		case strings.HasPrefix(line, "+ "):
			b.WriteString(green + line + reset + "\n")
		default:
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// Format returns the full diff with header.
func (r Result) Format(colour bool) string {
	header := fmt.Sprintf("--- %s\n+++ %s\n", r.Old, r.New)
	if colour {
		return header + Colourise(r.Diff)
	}
	return header + r.Diff
}
