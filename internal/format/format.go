// Package format renders match results and snapshot listings for the CLI.
//
// Commands decide what to print; this package decides how: column
// alignment, tree rendering and colour.
package format

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jpl-au/globfs/internal/fsys"
	"github.com/jpl-au/globfs/internal/path"
	"github.com/jpl-au/globfs/internal/store"
)

// Options controls how paths are printed.
type Options struct {
	Long     bool   // prefix each path with its kind and size
	Colour   bool   // colour directories
	Relative string // print paths relative to this directory when under it
}

// humanSize formats a byte count as human-readable (e.g., "1.2K", "3.4M").
func humanSize(bytes int64) string {
	const (
		_        = iota
		KB int64 = 1 << (10 * iota)
		MB
		GB
	)
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1fG", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.1fM", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1fK", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

func dirColour(enabled bool) *color.Color {
	c := color.New(color.FgBlue, color.Bold)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// Display returns p as it should be printed under opts.
func Display(p path.Path, opts Options) string {
	if opts.Relative == "" {
		return p.String()
	}
	if rel, ok := p.RelativeTo(path.New(opts.Relative)); ok {
		return rel.String()
	}
	return p.String()
}

// Paths prints one entry per line. Directories end in "/".
func Paths(w io.Writer, entries []fsys.Entry, opts Options) error {
	dc := dirColour(opts.Colour)
	for _, e := range entries {
		name := Display(e.Path(), opts)
		if e.IsDir() {
			name = dc.Sprint(strings.TrimSuffix(name, "/") + "/")
		}
		if !opts.Long {
			if _, err := fmt.Fprintln(w, name); err != nil {
				return err
			}
			continue
		}

		kind, size := "dir ", "-"
		if f, ok := e.(fsys.File); ok && !e.IsDir() {
			kind, size = "file", humanSize(f.Length())
		}
		if _, err := fmt.Fprintf(w, "%s  %6s  %s\n", kind, size, name); err != nil {
			return err
		}
	}
	return nil
}

// Tree prints entries as a directory tree relative to opts.Relative.
// Entries outside that directory are printed with their full path as the
// top-level name.
func Tree(w io.Writer, entries []fsys.Entry, opts Options) error {
	if len(entries) == 0 {
		return nil
	}

	type node struct {
		children map[string]*node
		dir      bool
	}
	root := &node{children: make(map[string]*node)}

	for _, e := range entries {
		rel := Display(e.Path(), opts)
		if rel == "." {
			continue
		}
		parts := strings.Split(strings.TrimPrefix(rel, "/"), "/")
		if strings.HasPrefix(rel, "/") {
			parts[0] = "/" + parts[0]
		}
		current := root
		for i, part := range parts {
			child := current.children[part]
			if child == nil {
				child = &node{children: make(map[string]*node), dir: i < len(parts)-1}
				current.children[part] = child
			}
			if i == len(parts)-1 && e.IsDir() {
				child.dir = true
			}
			current = child
		}
	}

	dc := dirColour(opts.Colour)
	var printNode func(n *node, prefix string)
	printNode = func(n *node, prefix string) {
		names := make([]string, 0, len(n.children))
		for name := range n.children {
			names = append(names, name)
		}
		sort.Strings(names)

		for i, name := range names {
			child := n.children[name]
			last := i == len(names)-1

			connector := "├── "
			if last {
				connector = "└── "
			}

			label := name
			if child.dir {
				label = dc.Sprint(name + "/")
			}
			fmt.Fprintf(w, "%s%s%s\n", prefix, connector, label)

			pfx := prefix
			if last {
				pfx += "    "
			} else {
				pfx += "│   "
			}
			if len(child.children) > 0 {
				printNode(child, pfx)
			}
		}
	}

	printNode(root, "")
	return nil
}

// Snapshots prints snapshots in long format, newest first as given.
func Snapshots(w io.Writer, snaps []store.Snapshot) error {
	if len(snaps) == 0 {
		return nil
	}

	fmt.Fprintf(w, "%-8s  %-16s  %-7s  %7s  %7s  %6s  %s\n",
		"ID", "CREATED", "RULES", "DIRS", "FILES", "SIZE", "ROOT")
	for _, s := range snaps {
		rules := "windows"
		if s.Unix {
			rules = "unix"
		}
		fmt.Fprintf(w, "%-8s  %-16s  %-7s  %7d  %7d  %6s  %s\n",
			s.ShortID(),
			time.Unix(s.CreatedAt, 0).Format("2006-01-02 15:04"),
			rules,
			s.Directories,
			s.Files,
			humanSize(s.Bytes),
			s.Root,
		)
	}
	return nil
}
