// os.go implements FileSystem on top of package os.
//
// Symbolic links to directories are reported neither as directories nor as
// files when listing, so a recursive wildcard cannot loop through a link
// cycle. Looking a linked directory up by name still works because Exists
// follows links.
//
// Entries looked up by path report the name stored on disk, not the
// spelling asked for. On a case-insensitive volume "/x/ABC" finds "abc",
// and callers comparing names see "abc".

package fsys

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/globfs/internal/path"
)

// stat is replaced in tests to imitate a case-insensitive volume.
var stat = os.Stat

// OS is the real file system.
type OS struct{}

var _ FileSystem = OS{}

// Directory returns the directory at p. It does not check existence.
func (OS) Directory(p path.DirectoryPath) Directory {
	return &osDirectory{p: p}
}

// File returns the file at p. It does not check existence.
func (OS) File(p path.FilePath) File {
	return &osFile{p: p}
}

func native(p path.Path) string {
	return filepath.FromSlash(p.String())
}

// storedName returns the spelling of name found in dir. An exact match
// wins over a case-folded one; name is returned when neither is listed.
func storedName(dir path.DirectoryPath, name string) string {
	entries, err := os.ReadDir(native(dir.Path))
	if err != nil {
		return name
	}
	folded := ""
	for _, e := range entries {
		switch {
		case e.Name() == name:
			return name
		case folded == "" && strings.EqualFold(e.Name(), name):
			folded = e.Name()
		}
	}
	if folded != "" {
		return folded
	}
	return name
}

// resolve rewrites the last segment of p to its stored spelling.
func resolve(p path.Path) path.Path {
	if len(p.Segments()) == 0 {
		return p
	}
	parent := p.Parent()
	return parent.Path.Combine(storedName(parent, p.Name()))
}

type osDirectory struct {
	p        path.DirectoryPath
	resolved bool // p is known to carry the stored spelling
}

func (d *osDirectory) Path() path.Path { d.resolve(); return d.p.Path }
func (d *osDirectory) Name() string    { d.resolve(); return d.p.Name() }
func (d *osDirectory) IsDir() bool     { return true }

func (d *osDirectory) resolve() {
	if d.resolved {
		return
	}
	d.resolved = true
	if d.Exists() {
		d.p = path.DirectoryPath{Path: resolve(d.p.Path)}
	}
}

func (d *osDirectory) Exists() bool {
	fi, err := stat(native(d.p.Path))
	return err == nil && fi.IsDir()
}

// readDir lists the directory, treating a missing directory as empty.
func (d *osDirectory) readDir() ([]os.DirEntry, error) {
	entries, err := os.ReadDir(native(d.p.Path))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return entries, err
}

func (d *osDirectory) Directories() ([]Directory, error) {
	entries, err := d.readDir()
	if err != nil {
		return nil, err
	}
	var out []Directory
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, &osDirectory{p: d.p.Combine(e.Name()), resolved: true})
		}
	}
	return out, nil
}

func (d *osDirectory) Files() ([]File, error) {
	entries, err := d.readDir()
	if err != nil {
		return nil, err
	}
	var out []File
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		f := &osFile{p: d.p.CombineFile(e.Name()), resolved: true}
		if e.Type()&fs.ModeSymlink != 0 {
			fi, err := os.Stat(native(f.p.Path))
			if err != nil || fi.IsDir() {
				continue
			}
		}
		out = append(out, f)
	}
	return out, nil
}

type osFile struct {
	p        path.FilePath
	resolved bool
}

func (f *osFile) Path() path.Path { f.resolve(); return f.p.Path }
func (f *osFile) Name() string    { f.resolve(); return f.p.Name() }
func (f *osFile) IsDir() bool     { return false }

func (f *osFile) resolve() {
	if f.resolved {
		return
	}
	f.resolved = true
	if f.Exists() {
		f.p = path.FilePath{Path: resolve(f.p.Path)}
	}
}

func (f *osFile) Exists() bool {
	fi, err := stat(native(f.p.Path))
	return err == nil && !fi.IsDir()
}

func (f *osFile) Length() int64 {
	fi, err := stat(native(f.p.Path))
	if err != nil {
		return 0
	}
	return fi.Size()
}
