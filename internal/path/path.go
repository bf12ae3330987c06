// Package path provides the path value types used by the glob engine.
//
// Every path is held in a normalised form so that two spellings of the same
// location compare equal:
//   - Separators are forward slashes (backslashes are converted)
//   - Repeated separators collapse to one
//   - A leading "./" is trimmed
//   - No trailing separator, except on a root ("/" or "C:/")
//
// Paths are purely lexical. Nothing in this package touches the file system;
// existence checks belong to the fsys package.
package path

import "strings"

// Path is an immutable, normalised file-system path.
type Path struct {
	full string
}

// FilePath is a Path known to denote a file.
type FilePath struct {
	Path
}

// DirectoryPath is a Path known to denote a directory.
type DirectoryPath struct {
	Path
}

// New returns the normalised form of p.
func New(p string) Path {
	return Path{full: Normalise(p)}
}

// NewFile returns p as a FilePath.
func NewFile(p string) FilePath {
	return FilePath{New(p)}
}

// NewDirectory returns p as a DirectoryPath.
func NewDirectory(p string) DirectoryPath {
	return DirectoryPath{New(p)}
}

// Normalise converts raw to the canonical form described in the package
// documentation. An empty input stays empty; "./" becomes ".".
func Normalise(raw string) string {
	if raw == "" {
		return ""
	}

	p := strings.ReplaceAll(raw, "\\", "/")
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	if p == "" {
		return "."
	}

	// A bare drive ("C:") is the drive root.
	if len(p) == 2 && isDrive(p) {
		return p + "/"
	}
	for len(p) > 1 && strings.HasSuffix(p, "/") && !isDriveRoot(p) {
		p = p[:len(p)-1]
	}
	return p
}

// String returns the normalised path.
func (p Path) String() string { return p.full }

// IsRelative reports whether p has no root.
func (p Path) IsRelative() bool {
	return p.Root() == ""
}

// Root returns "/" for Unix absolute paths, the drive root (e.g. "C:/") for
// Windows absolute paths, and "" for relative paths.
func (p Path) Root() string {
	switch {
	case strings.HasPrefix(p.full, "/"):
		return "/"
	case len(p.full) >= 3 && isDrive(p.full[:2]) && p.full[2] == '/':
		return p.full[:3]
	case len(p.full) == 2 && isDrive(p.full):
		return p.full + "/"
	}
	return ""
}

// Segments returns the components after the root. The root itself is not a
// segment; use Root for that.
func (p Path) Segments() []string {
	rest := strings.TrimPrefix(p.full, p.Root())
	if rest == "" {
		return nil
	}
	return strings.Split(rest, "/")
}

// Name returns the last segment, or the root when there are no segments.
func (p Path) Name() string {
	segs := p.Segments()
	if len(segs) == 0 {
		return p.Root()
	}
	return segs[len(segs)-1]
}

// Parent returns the containing directory. The parent of a root is the root;
// the parent of a single relative segment is ".".
func (p Path) Parent() DirectoryPath {
	segs := p.Segments()
	root := p.Root()
	if len(segs) <= 1 {
		if root != "" {
			return DirectoryPath{Path{full: root}}
		}
		return DirectoryPath{Path{full: "."}}
	}
	return DirectoryPath{New(root + strings.Join(segs[:len(segs)-1], "/"))}
}

// Combine appends segment to p. An absolute segment replaces p entirely.
func (p Path) Combine(segment string) Path {
	next := New(segment)
	if !next.IsRelative() || p.full == "" || p.full == "." {
		return next
	}
	if next.full == "." {
		return p
	}
	if strings.HasSuffix(p.full, "/") {
		return New(p.full + next.full)
	}
	return New(p.full + "/" + next.full)
}

// Collapse resolves "." and ".." segments lexically. ".." never climbs above
// a root; on a relative path leading ".." segments are kept.
func (p Path) Collapse() Path {
	root := p.Root()
	var out []string
	for _, s := range p.Segments() {
		switch s {
		case ".":
			continue
		case "..":
			if len(out) > 0 && out[len(out)-1] != ".." {
				out = out[:len(out)-1]
				continue
			}
			if root != "" {
				continue
			}
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		if root != "" {
			return Path{full: root}
		}
		return Path{full: "."}
	}
	return Path{full: root + strings.Join(out, "/")}
}

// RelativeTo returns p expressed relative to base. The boolean is false when
// p is not base or below it.
func (p Path) RelativeTo(base Path) (Path, bool) {
	if p.full == base.full {
		return Path{full: "."}, true
	}
	prefix := base.full
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	if !strings.HasPrefix(p.full, prefix) {
		return p, false
	}
	return Path{full: p.full[len(prefix):]}, true
}

// Combine appends a directory segment.
func (d DirectoryPath) Combine(segment string) DirectoryPath {
	return DirectoryPath{d.Path.Combine(segment)}
}

// CombineFile appends a file name.
func (d DirectoryPath) CombineFile(name string) FilePath {
	return FilePath{d.Path.Combine(name)}
}

// Collapse resolves "." and ".." segments.
func (d DirectoryPath) Collapse() DirectoryPath {
	return DirectoryPath{d.Path.Collapse()}
}

func isDrive(s string) bool {
	if len(s) != 2 || s[1] != ':' {
		return false
	}
	c := s[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDriveRoot(s string) bool {
	return len(s) == 3 && isDrive(s[:2]) && s[2] == '/'
}
