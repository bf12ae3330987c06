package glob

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jpl-au/globfs/internal/fsys"
	"github.com/jpl-au/globfs/internal/path"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTree(t *testing.T) *fsys.Memory {
	t.Helper()
	m := fsys.NewMemory(true)
	for _, f := range []string{
		"/work/src/main.go",
		"/work/src/util.go",
		"/work/src/app/app.go",
		"/work/src/lib/bin/tool",
		"/work/src/lib/README.md",
		"/work/docs/guide.md",
		"/work/docs/Notes.txt",
		"/work/.git/config",
		"/work/build.sh",
		"/other/x.txt",
	} {
		require.NoError(t, m.AddFile(f, int64(len(f))))
	}
	require.NoError(t, m.AddDirectory("/work/src/app/bin"))
	return m
}

func newGlobber(t *testing.T, fs fsys.FileSystem, opts ...Option) *Globber {
	t.Helper()
	g, err := New(fs, fsys.NewEnvironment("/work", true), opts...)
	require.NoError(t, err)
	return g
}

func strs(paths []path.Path) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = p.String()
	}
	return out
}

func TestGlobber_Match(t *testing.T) {
	g := newGlobber(t, newTree(t))

	tests := []struct {
		pattern string
		want    []string
	}{
		{"src/*", []string{"/work/src/app", "/work/src/lib", "/work/src/main.go", "/work/src/util.go"}},
		{"src/*.go", []string{"/work/src/main.go", "/work/src/util.go"}},
		{"src/**", []string{"/work/src", "/work/src/app", "/work/src/app/bin", "/work/src/lib", "/work/src/lib/bin"}},
		{"src/**/*.go", []string{"/work/src/main.go", "/work/src/util.go", "/work/src/app/app.go"}},
		{"src/*/bin", []string{"/work/src/app/bin", "/work/src/lib/bin"}},
		{"src/lib/bin/tool", []string{"/work/src/lib/bin/tool"}},
		{"src/lib", []string{"/work/src/lib"}},
		{"./build.sh", []string{"/work/build.sh"}},
		{"/other/*.txt", []string{"/other/x.txt"}},
		{"../other/x.txt", []string{"/other/x.txt"}},
		{"..", []string{"/"}},
		{".", []string{"/work"}},
		{"src/app/..", []string{"/work/src"}},
		{"src/*/..", []string{"/work/src"}},
		{`src\lib\*`, []string{"/work/src/lib/bin", "/work/src/lib/README.md"}},
		{"docs/????.md", nil},
		{"docs/?????.md", []string{"/work/docs/guide.md"}},
		{"missing/*", nil},
		{"src/main.go/*", nil},
		{"docs/notes.txt", nil},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := g.Match(tt.pattern, nil)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, strs(got))
		})
	}
}

func TestGlobber_RecursiveYieldsDirectoriesUnderBase(t *testing.T) {
	g := newGlobber(t, newTree(t))

	entries, err := g.MatchEntries("src/**", nil)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	for _, e := range entries {
		assert.True(t, e.IsDir(), e.Path().String())
		assert.True(t, strings.HasPrefix(e.Path().String(), "/work/src"), e.Path().String())
	}
}

func TestGlobber_NoDuplicates(t *testing.T) {
	g := newGlobber(t, newTree(t))

	once, err := g.Match("src/**", nil)
	require.NoError(t, err)
	twice, err := g.Match("src/**/**", nil)
	require.NoError(t, err)

	assert.Equal(t, strs(once), strs(twice))

	parents, err := g.Match("src/*/../*/..", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"/work/src"}, strs(parents))
}

func TestGlobber_RecursiveMatchesEveryFileOnce(t *testing.T) {
	g := newGlobber(t, newTree(t))

	got, err := g.Match("/**/*", nil)
	require.NoError(t, err)

	var files []string
	for _, p := range got {
		if strings.Contains(p.Name(), ".") && p.Name() != ".git" {
			files = append(files, p.String())
		}
	}
	want := []string{
		"/work/src/main.go", "/work/src/util.go", "/work/src/app/app.go",
		"/work/src/lib/README.md", "/work/docs/guide.md", "/work/docs/Notes.txt",
		"/work/build.sh", "/other/x.txt",
	}
	less := func(a, b string) bool { return a < b }
	if diff := cmp.Diff(want, files, cmpopts.SortSlices(less)); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
}

func TestGlobber_Predicate(t *testing.T) {
	g := newGlobber(t, newTree(t))
	noGit, err := ExcludeNames(false, ".git")
	require.NoError(t, err)

	t.Run("prunes recursive walk", func(t *testing.T) {
		got, err := g.Match("**", noGit)
		require.NoError(t, err)
		assert.NotContains(t, strs(got), "/work/.git")
		assert.Contains(t, strs(got), "/work/docs")
	})

	t.Run("applies to wildcard", func(t *testing.T) {
		got, err := g.Match("*/config", noGit)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("applies to literal directory", func(t *testing.T) {
		got, err := g.Match(".git/config", noGit)
		require.NoError(t, err)
		assert.Empty(t, got)

		got, err = g.Match(".git/config", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"/work/.git/config"}, strs(got))
	})

	t.Run("combined", func(t *testing.T) {
		noBin, err := ExcludeNames(false, "b*")
		require.NoError(t, err)
		got, err := g.Match("src/**", All(noGit, noBin))
		require.NoError(t, err)
		assert.Equal(t, []string{"/work/src", "/work/src/app", "/work/src/lib"}, strs(got))
	})
}

func TestExcludeNames(t *testing.T) {
	_, err := ExcludeNames(false, "a/b")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ExcludeNames(false, "[")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	pred, err := ExcludeNames(false)
	require.NoError(t, err)
	assert.Nil(t, pred)

	m := fsys.NewMemory(true)
	require.NoError(t, m.AddDirectory("/Node_Modules"))
	dir := m.Directory(path.NewDirectory("/Node_Modules"))

	pred, err = ExcludeNames(true, "node_*")
	require.NoError(t, err)
	assert.False(t, pred(dir))

	pred, err = ExcludeNames(false, "node_*")
	require.NoError(t, err)
	assert.True(t, pred(dir))
}

func TestNameMatcher(t *testing.T) {
	match, err := NameMatcher(true, ".git", "*.tmp")
	require.NoError(t, err)
	assert.True(t, match(".GIT"))
	assert.True(t, match("build.TMP"))
	assert.False(t, match("src"))

	match, err = NameMatcher(false)
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestGlobber_CaseSensitivity(t *testing.T) {
	m := fsys.NewMemory(true)
	require.NoError(t, m.AddFile("/work/abc/File.TXT", 1))

	t.Run("sensitive", func(t *testing.T) {
		g := newGlobber(t, m)
		assert.True(t, g.CaseSensitive())

		got, err := g.Match("ABC", nil)
		require.NoError(t, err)
		assert.Empty(t, got)

		got, err = g.Match("abc/*.txt", nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("insensitive", func(t *testing.T) {
		g := newGlobber(t, m, WithCaseSensitive(false))

		got, err := g.Match("ABC", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"/work/abc"}, strs(got))

		got, err = g.Match("ABC/*.txt", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"/work/abc/File.TXT"}, strs(got))

		got, err = g.Match("abc/file.txt", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"/work/abc/File.TXT"}, strs(got))
	})

	t.Run("sensitive rules on an insensitive tree", func(t *testing.T) {
		folded := fsys.NewMemory(false)
		require.NoError(t, folded.AddDirectory("/work/abc"))
		g := newGlobber(t, folded)

		got, err := g.Match("ABC", nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestGlobber_Windows(t *testing.T) {
	m := fsys.NewMemory(false)
	require.NoError(t, m.AddFile("C:/Work/Src/Main.go", 1))
	require.NoError(t, m.AddFile("D:/data/x.bin", 1))

	g, err := New(m, fsys.NewEnvironment("C:/Work", false))
	require.NoError(t, err)
	assert.False(t, g.CaseSensitive())
	assert.False(t, g.Unix())

	tests := []struct {
		pattern string
		want    []string
	}{
		{`src\*.GO`, []string{"C:/Work/Src/Main.go"}},
		{`c:\work\src`, []string{"C:/Work/Src"}},
		{"D:/*/*", []string{"D:/data/x.bin"}},
		{"..", []string{"C:/"}},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := g.Match(tt.pattern, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, strs(got))
		})
	}

	_, err = g.Match("/work", nil)
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = g.Match("src|x", nil)
	assert.ErrorIs(t, err, ErrIllegalCharacter)
}

type countingFS struct {
	fsys.FileSystem
	calls int
}

func (c *countingFS) Directory(p path.DirectoryPath) fsys.Directory {
	c.calls++
	return c.FileSystem.Directory(p)
}

func (c *countingFS) File(p path.FilePath) fsys.File {
	c.calls++
	return c.FileSystem.File(p)
}

func TestGlobber_BlankPatternSkipsFileSystem(t *testing.T) {
	fs := &countingFS{FileSystem: newTree(t)}
	g := newGlobber(t, fs)

	for _, p := range []string{"", " ", "\t\n"} {
		got, err := g.Match(p, nil)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
	assert.Zero(t, fs.calls)
}

var errDenied = errors.New("permission denied")

type failingFS struct {
	fsys.FileSystem
	fail string
}

func (f *failingFS) Directory(p path.DirectoryPath) fsys.Directory {
	d := f.FileSystem.Directory(p)
	if p.String() == f.fail {
		return failingDir{d}
	}
	return d
}

type failingDir struct{ fsys.Directory }

func (failingDir) Directories() ([]fsys.Directory, error) { return nil, errDenied }
func (failingDir) Files() ([]fsys.File, error)            { return nil, errDenied }

func TestGlobber_IOErrors(t *testing.T) {
	fs := &failingFS{FileSystem: newTree(t), fail: "/work/src/lib"}

	t.Run("skipped by default", func(t *testing.T) {
		g := newGlobber(t, fs)
		got, err := g.Match("src/*/*", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"/work/src/app/bin", "/work/src/app/app.go"}, strs(got))
	})

	t.Run("fail on request", func(t *testing.T) {
		g := newGlobber(t, fs, WithFailOnIOErrors())
		_, err := g.Match("src/*/*", nil)
		assert.ErrorIs(t, err, errDenied)
		assert.Contains(t, err.Error(), "/work/src/lib")
	})
}

func TestGlobber_ParseErrors(t *testing.T) {
	g := newGlobber(t, newTree(t))

	_, err := g.Match("**/..", nil)
	assert.ErrorIs(t, err, ErrUnsupported)

	var pe *PatternError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 3, pe.Pos)
}

func TestNew_InvalidArguments(t *testing.T) {
	env := fsys.NewEnvironment("/work", true)

	_, err := New(nil, env)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = New(fsys.NewMemory(true), nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestGlobber_OverridesUnixRules(t *testing.T) {
	m := fsys.NewMemory(true)
	require.NoError(t, m.AddFile("/work/a|b", 1))

	g, err := New(m, fsys.NewEnvironment("/work", true), WithUnix(false))
	require.NoError(t, err)
	assert.False(t, g.CaseSensitive())
	_, err = g.Match("a|b", nil)
	assert.ErrorIs(t, err, ErrIllegalCharacter)

	g, err = New(m, fsys.NewEnvironment("/work", true))
	require.NoError(t, err)
	got, err := g.Match("a|b", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"/work/a|b"}, strs(got))
}
