// memory.go implements an in-memory FileSystem.
//
// Children keep insertion order, so listings are deterministic without
// sorting. Case sensitivity is a property of the tree: an insensitive tree
// finds "/ABC" when "/abc" was added, and reports the stored spelling.

package fsys

import (
	"errors"
	"fmt"

	"github.com/jpl-au/globfs/internal/path"
)

var (
	// ErrRelativePath is returned when adding an entry without a root.
	ErrRelativePath = errors.New("path must be absolute")
	// ErrConflict is returned when a path is already used by the other kind
	// of entry (a file where a directory is needed, or the reverse).
	ErrConflict = errors.New("path conflicts with existing entry")
	// ErrCollision is returned by a case-insensitive tree when an entry
	// already exists under a spelling that differs only in case.
	ErrCollision = errors.New("path differs only in case from existing entry")
)

// Memory is an in-memory file system tree.
type Memory struct {
	cmp   path.Comparer
	roots []*memNode
}

var _ FileSystem = (*Memory)(nil)

type memNode struct {
	name     string
	dir      bool
	size     int64
	parent   *memNode
	children []*memNode
}

func (n *memNode) path() path.Path {
	if n.parent == nil {
		return path.New(n.name)
	}
	return n.parent.path().Combine(n.name)
}

// NewMemory returns an empty tree.
func NewMemory(caseSensitive bool) *Memory {
	return &Memory{cmp: path.NewComparer(caseSensitive)}
}

func (m *Memory) same(a, b string) bool {
	return m.cmp.EqualName(a, b)
}

func (m *Memory) child(n *memNode, name string) *memNode {
	for _, c := range n.children {
		if m.same(c.name, name) {
			return c
		}
	}
	return nil
}

func (m *Memory) find(p path.Path) *memNode {
	p = p.Collapse()
	root := p.Root()
	if root == "" {
		return nil
	}
	var n *memNode
	for _, r := range m.roots {
		if m.same(r.name, root) {
			n = r
			break
		}
	}
	for _, seg := range p.Segments() {
		if n == nil {
			return nil
		}
		n = m.child(n, seg)
	}
	return n
}

// AddDirectory creates the directory p and any missing parents.
func (m *Memory) AddDirectory(p string) error {
	_, err := m.add(path.New(p), true, 0)
	return err
}

// AddFile creates the file p with the given size, creating parents.
func (m *Memory) AddFile(p string, size int64) error {
	_, err := m.add(path.New(p), false, size)
	return err
}

func (m *Memory) add(p path.Path, dir bool, size int64) (*memNode, error) {
	p = p.Collapse()
	root := p.Root()
	if root == "" {
		return nil, fmt.Errorf("%w: %s", ErrRelativePath, p)
	}

	var n *memNode
	for _, r := range m.roots {
		if m.same(r.name, root) {
			n = r
			break
		}
	}
	if n == nil {
		n = &memNode{name: root, dir: true}
		m.roots = append(m.roots, n)
	}

	segs := p.Segments()
	for i, seg := range segs {
		last := i == len(segs)-1
		wantDir := !last || dir
		c := m.child(n, seg)
		if c == nil {
			c = &memNode{name: seg, dir: wantDir, parent: n}
			if last && !dir {
				c.size = size
			}
			n.children = append(n.children, c)
		} else if c.dir != wantDir {
			return nil, fmt.Errorf("%w: %s", ErrConflict, c.path())
		} else if last && c.name != seg {
			return nil, fmt.Errorf("%w: %s", ErrCollision, c.path())
		}
		n = c
	}
	return n, nil
}

// Directory returns the directory at p.
func (m *Memory) Directory(p path.DirectoryPath) Directory {
	n := m.find(p.Path)
	if n != nil && !n.dir {
		n = nil
	}
	return &memDirectory{m: m, p: p.Path, node: n}
}

// File returns the file at p.
func (m *Memory) File(p path.FilePath) File {
	n := m.find(p.Path)
	if n != nil && n.dir {
		n = nil
	}
	return &memFile{p: p.Path, node: n}
}

type memDirectory struct {
	m    *Memory
	p    path.Path
	node *memNode
}

func (d *memDirectory) Path() path.Path {
	if d.node != nil {
		return d.node.path()
	}
	return d.p
}

func (d *memDirectory) Name() string { return d.Path().Name() }
func (d *memDirectory) IsDir() bool  { return true }
func (d *memDirectory) Exists() bool { return d.node != nil }

func (d *memDirectory) Directories() ([]Directory, error) {
	if d.node == nil {
		return nil, nil
	}
	var out []Directory
	for _, c := range d.node.children {
		if c.dir {
			out = append(out, &memDirectory{m: d.m, p: c.path(), node: c})
		}
	}
	return out, nil
}

func (d *memDirectory) Files() ([]File, error) {
	if d.node == nil {
		return nil, nil
	}
	var out []File
	for _, c := range d.node.children {
		if !c.dir {
			out = append(out, &memFile{p: c.path(), node: c})
		}
	}
	return out, nil
}

type memFile struct {
	p    path.Path
	node *memNode
}

func (f *memFile) Path() path.Path {
	if f.node != nil {
		return f.node.path()
	}
	return f.p
}

func (f *memFile) Name() string { return f.Path().Name() }
func (f *memFile) IsDir() bool  { return false }
func (f *memFile) Exists() bool { return f.node != nil }

func (f *memFile) Length() int64 {
	if f.node == nil {
		return 0
	}
	return f.node.size
}
