// visitor.go walks a parsed chain against a file system.
//
// The walk is depth-first. The context keeps an explicit stack of path
// parts; each node pushes what it contributes, visits the rest of the chain
// and pops before returning, so the current directory is always the
// collapsed join of the stack. Results are collected in walk order and may
// contain duplicates; the Globber removes them.

package glob

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jpl-au/globfs/internal/fsys"
	"github.com/jpl-au/globfs/internal/path"
)

type visitContext struct {
	fs             fsys.FileSystem
	env            fsys.Environment
	predicate      Predicate
	ignoreCase     bool
	failOnIOErrors bool
	logger         *slog.Logger

	parts   []string
	results []fsys.Entry
	err     error
}

func (c *visitContext) push(part string) { c.parts = append(c.parts, part) }
func (c *visitContext) pop()             { c.parts = c.parts[:len(c.parts)-1] }

// current returns the directory described by the stack.
func (c *visitContext) current() path.DirectoryPath {
	if len(c.parts) == 0 {
		return c.env.WorkingDirectory()
	}
	s := c.parts[0]
	for _, part := range c.parts[1:] {
		s = join(s, part)
	}
	return path.NewDirectory(s).Collapse()
}

func (c *visitContext) accepts(d fsys.Directory) bool {
	return c.predicate == nil || c.predicate(d)
}

func (c *visitContext) add(e fsys.Entry) {
	c.results = append(c.results, e)
}

// listFailed records a listing error. It reports whether the walk must stop.
func (c *visitContext) listFailed(dir path.DirectoryPath, err error) bool {
	if c.failOnIOErrors {
		if c.err == nil {
			c.err = fmt.Errorf("list %s: %w", dir, err)
		}
		return true
	}
	c.logger.Debug("skipping unreadable directory", "path", dir.String(), "error", err)
	return false
}

// join appends name to dir without interpreting name, so a file called
// "C:" on Unix stays a child rather than becoming a drive.
func join(dir, name string) string {
	if strings.HasSuffix(dir, "/") {
		return dir + name
	}
	return dir + "/" + name
}

func walk(n *Node, c *visitContext) {
	if c.err != nil {
		return
	}
	switch n.Kind {
	case RelativeRoot:
		descend(n, c, c.env.WorkingDirectory().String())
	case UnixRoot:
		descend(n, c, "/")
	case WindowsRoot:
		descend(n, c, n.Text+"/")
	case ParentSegment:
		descend(n, c, "..")
	case IdentifierSegment:
		visitIdentifier(n, c)
	case WildcardSegment, PatternSegment:
		visitWildcard(n, c)
	case RecursiveWildcardSegment:
		dir := c.fs.Directory(c.current())
		if dir.Exists() {
			visitRecursive(n, c, dir)
		}
	}
}

// descend pushes part and continues with the rest of the chain.
func descend(n *Node, c *visitContext, part string) {
	c.push(part)
	next(n, c, nil)
	c.pop()
}

// next visits the node after n, or records a match when n is the last
// node. entry is the directory n resolved to, if already known.
func next(n *Node, c *visitContext, entry fsys.Entry) {
	if n.Next != nil {
		walk(n.Next, c)
		return
	}
	if entry == nil {
		dir := c.fs.Directory(c.current())
		if !dir.Exists() {
			return
		}
		entry = dir
	}
	c.add(entry)
}

func visitIdentifier(n *Node, c *visitContext) {
	cur := c.current()

	dir := c.fs.Directory(path.NewDirectory(join(cur.String(), n.Text)))
	if !dir.Exists() || !n.IsMatch(dir.Name(), c.ignoreCase) {
		dir = nil
		if c.ignoreCase {
			dir = findDirectory(n, c, cur)
		}
	}
	if dir != nil {
		if !c.accepts(dir) {
			return
		}
		c.push(dir.Name())
		next(n, c, dir)
		c.pop()
		return
	}

	if n.Next != nil {
		return
	}
	file := c.fs.File(path.NewFile(join(cur.String(), n.Text)))
	if !file.Exists() || !n.IsMatch(file.Name(), c.ignoreCase) {
		file = nil
		if c.ignoreCase {
			file = findFile(n, c, cur)
		}
	}
	if file != nil {
		c.add(file)
	}
}

// findDirectory scans cur for a directory whose name folds to n.Text.
// It backs direct lookups on file systems that are themselves
// case-sensitive.
func findDirectory(n *Node, c *visitContext, cur path.DirectoryPath) fsys.Directory {
	dirs, err := c.fs.Directory(cur).Directories()
	if err != nil {
		c.listFailed(cur, err)
		return nil
	}
	for _, d := range dirs {
		if n.IsMatch(d.Name(), true) {
			return d
		}
	}
	return nil
}

func findFile(n *Node, c *visitContext, cur path.DirectoryPath) fsys.File {
	files, err := c.fs.Directory(cur).Files()
	if err != nil {
		c.listFailed(cur, err)
		return nil
	}
	for _, f := range files {
		if n.IsMatch(f.Name(), true) {
			return f
		}
	}
	return nil
}

// visitWildcard matches one level. Directories continue the walk; files
// are considered only when n is the last node.
func visitWildcard(n *Node, c *visitContext) {
	cur := c.current()
	dir := c.fs.Directory(cur)
	if !dir.Exists() {
		return
	}

	dirs, err := dir.Directories()
	if err != nil && c.listFailed(cur, err) {
		return
	}
	for _, d := range dirs {
		if c.err != nil {
			return
		}
		if !n.IsMatch(d.Name(), c.ignoreCase) || !c.accepts(d) {
			continue
		}
		c.push(d.Name())
		next(n, c, d)
		c.pop()
	}

	if n.Next != nil {
		return
	}
	files, err := dir.Files()
	if err != nil && c.listFailed(cur, err) {
		return
	}
	for _, f := range files {
		if n.IsMatch(f.Name(), c.ignoreCase) {
			c.add(f)
		}
	}
}

// visitRecursive applies "**" at dir: once spanning zero directories, then
// again inside every accepted subdirectory. It yields directories only.
func visitRecursive(n *Node, c *visitContext, dir fsys.Directory) {
	if c.err != nil {
		return
	}
	next(n, c, dir)

	cur := c.current()
	dirs, err := dir.Directories()
	if err != nil && c.listFailed(cur, err) {
		return
	}
	for _, d := range dirs {
		if c.err != nil {
			return
		}
		if !c.accepts(d) {
			continue
		}
		c.push(d.Name())
		visitRecursive(n, c, d)
		c.pop()
	}
}
