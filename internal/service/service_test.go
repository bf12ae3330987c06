package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jpl-au/globfs/internal/config"
	"github.com/jpl-au/globfs/internal/glob"
	"github.com/jpl-au/globfs/internal/service"
	"github.com/jpl-au/globfs/internal/store"
	"github.com/jpl-au/globfs/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTree creates a small project tree and returns its root.
func setupTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	for _, name := range []string{"a.txt", "src/main.go", "src/util.go", "vendor/x.go"} {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(name), 0644))
	}
	return root
}

// newService returns a Service whose snapshot database lives in a temp dir.
func newService(t *testing.T, cfg *config.Config) *service.Service {
	t.Helper()

	t.Setenv(config.EnvDB, filepath.Join(t.TempDir(), "snapshots.db"))
	svc := service.New(cfg, nil)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestService_Match(t *testing.T) {
	root := setupTree(t)
	svc := newService(t, nil)
	ctx := context.Background()

	res, err := svc.Match(ctx, service.Request{Root: root, Patterns: []string{"**/*.go"}})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"src/main.go", "src/util.go", "vendor/x.go"}, res.Relative())
	assert.Nil(t, res.Snapshot)
	assert.Equal(t, "live "+res.Root, res.Label())

	t.Run("union without duplicates", func(t *testing.T) {
		res, err := svc.Match(ctx, service.Request{Root: root, Patterns: []string{"src/*.go", "**/main.go"}})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"src/main.go", "src/util.go"}, res.Relative())
	})

	t.Run("absolute paths", func(t *testing.T) {
		res, err := svc.Match(ctx, service.Request{Root: root, Patterns: []string{"a.txt"}})
		require.NoError(t, err)
		assert.Equal(t, []string{res.Root + "/a.txt"}, res.Paths())
	})

	t.Run("blank pattern", func(t *testing.T) {
		res, err := svc.Match(ctx, service.Request{Root: root, Patterns: []string{"  "}})
		require.NoError(t, err)
		assert.NotNil(t, res.Entries)
		assert.Empty(t, res.Entries)
	})

	t.Run("root from environment", func(t *testing.T) {
		t.Setenv(config.EnvRoot, root)
		res, err := svc.Match(ctx, service.Request{Patterns: []string{"src"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"src"}, res.Relative())
	})
}

func TestService_MatchExclude(t *testing.T) {
	root := setupTree(t)
	cfg := &config.Config{Glob: config.Glob{Exclude: []string{"vendor"}}}
	svc := newService(t, cfg)
	ctx := context.Background()

	res, err := svc.Match(ctx, service.Request{Root: root, Patterns: []string{"**/*.go"}})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"src/main.go", "src/util.go"}, res.Relative())

	res, err = svc.Match(ctx, service.Request{Root: root, Patterns: []string{"**/*.go"}, Exclude: []string{"s*"}})
	require.NoError(t, err)
	assert.Empty(t, res.Entries)

	_, err = svc.Match(ctx, service.Request{Root: root, Patterns: []string{"*"}, Exclude: []string{"a/b"}})
	assert.ErrorIs(t, err, validate.ErrInvalidName)
}

func TestService_MatchOverrides(t *testing.T) {
	root := setupTree(t)
	ctx := context.Background()

	t.Run("case insensitive", func(t *testing.T) {
		svc := newService(t, nil)
		no := false
		res, err := svc.Match(ctx, service.Request{Root: root, Patterns: []string{"SRC/*.GO"}, CaseSensitive: &no})
		require.NoError(t, err)
		assert.False(t, res.CaseSensitive)
		assert.ElementsMatch(t, []string{"src/main.go", "src/util.go"}, res.Relative())
	})

	t.Run("config case sensitivity", func(t *testing.T) {
		svc := newService(t, &config.Config{Glob: config.Glob{CaseSensitive: "false"}})
		res, err := svc.Match(ctx, service.Request{Root: root, Patterns: []string{"A.TXT"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"a.txt"}, res.Relative())
	})

	t.Run("platform", func(t *testing.T) {
		svc := newService(t, nil)
		res, err := svc.Match(ctx, service.Request{Root: root, Patterns: []string{"*.txt"}, Platform: "unix"})
		require.NoError(t, err)
		assert.True(t, res.Unix)
		assert.True(t, res.CaseSensitive)

		_, err = svc.Match(ctx, service.Request{Root: root, Patterns: []string{"*"}, Platform: "beos"})
		assert.ErrorIs(t, err, glob.ErrInvalidArgument)
	})

	t.Run("pattern limit", func(t *testing.T) {
		limit := 4
		svc := newService(t, &config.Config{Limits: config.Limits{MaxPattern: &limit}})
		_, err := svc.Match(ctx, service.Request{Root: root, Patterns: []string{"**/*.go"}})
		assert.ErrorIs(t, err, validate.ErrPatternTooLong)
	})

	t.Run("missing root", func(t *testing.T) {
		svc := newService(t, nil)
		_, err := svc.Match(ctx, service.Request{Root: filepath.Join(root, "nope"), Patterns: []string{"*"}})
		assert.ErrorIs(t, err, validate.ErrInvalidRoot)
	})
}

func TestParsePlatform(t *testing.T) {
	for name, want := range map[string]*bool{"": nil, "auto": nil} {
		got, err := service.ParsePlatform(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	unix, err := service.ParsePlatform("unix")
	require.NoError(t, err)
	assert.True(t, *unix)

	win, err := service.ParsePlatform("windows")
	require.NoError(t, err)
	assert.False(t, *win)
}

func TestService_Snapshot(t *testing.T) {
	root := setupTree(t)
	svc := newService(t, &config.Config{Glob: config.Glob{Exclude: []string{"vendor"}, Platform: "unix"}})
	ctx := context.Background()

	snap, err := svc.Index(ctx, root, false)
	require.NoError(t, err)
	assert.True(t, snap.Unix)
	assert.Equal(t, int64(3), snap.Files) // vendor is pruned

	res, err := svc.Match(ctx, service.Request{Snapshot: snap.ShortID(), Patterns: []string{"**/*.go"}})
	require.NoError(t, err)
	require.NotNil(t, res.Snapshot)
	assert.Equal(t, snap.ID, res.Snapshot.ID)
	assert.Equal(t, snap.Root, res.Root)
	assert.Equal(t, "snapshot "+snap.ShortID(), res.Label())
	assert.ElementsMatch(t, []string{"src/main.go", "src/util.go"}, res.Relative())

	_, err = svc.Match(ctx, service.Request{Snapshot: snap.ID, Root: root, Patterns: []string{"*"}})
	assert.ErrorIs(t, err, service.ErrRootWithSnapshot)

	_, err = svc.Match(ctx, service.Request{Snapshot: "zzzzzzzz", Patterns: []string{"*"}})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestService_Diff(t *testing.T) {
	root := setupTree(t)
	svc := newService(t, nil)
	ctx := context.Background()

	before, err := svc.Index(ctx, root, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "new.go"), []byte("new"), 0644))
	require.NoError(t, os.Remove(filepath.Join(root, "vendor", "x.go")))

	req := service.Request{Patterns: []string{"**/*.go"}}

	t.Run("against live tree", func(t *testing.T) {
		d, err := svc.Diff(ctx, req, before.ID, "")
		require.NoError(t, err)
		assert.True(t, d.Changed())
		assert.Equal(t, []string{"src/new.go"}, d.Added)
		assert.Equal(t, []string{"vendor/x.go"}, d.Removed)
		assert.Equal(t, "snapshot "+before.ShortID(), d.Old)
	})

	t.Run("between snapshots", func(t *testing.T) {
		after, err := svc.Index(ctx, root, false)
		require.NoError(t, err)

		d, err := svc.Diff(ctx, req, before.ID, after.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"src/new.go"}, d.Added)
		assert.Equal(t, []string{"vendor/x.go"}, d.Removed)

		same, err := svc.Diff(ctx, req, after.ID, after.ID)
		require.NoError(t, err)
		assert.False(t, same.Changed())
	})

	t.Run("requires a from snapshot", func(t *testing.T) {
		for _, from := range []string{"", "  "} {
			assert.NotPanics(t, func() {
				_, err := svc.Diff(ctx, req, from, "")
				assert.ErrorIs(t, err, glob.ErrInvalidArgument)
			})
		}
	})
}

func TestResult_ToJSON(t *testing.T) {
	root := setupTree(t)
	svc := newService(t, nil)

	res, err := svc.Match(context.Background(), service.Request{Root: root, Patterns: []string{"src", "a.txt"}, Platform: "unix"})
	require.NoError(t, err)

	j := res.ToJSON(true)
	assert.Equal(t, res.Root, j.Root)
	assert.Equal(t, "unix", j.Platform)
	assert.Empty(t, j.Snapshot)
	assert.Equal(t, 2, j.Count)
	require.Len(t, j.Matches, 2)
	assert.Equal(t, service.EntryJSON{Path: "src", Type: "dir"}, j.Matches[0])
	assert.Equal(t, "a.txt", j.Matches[1].Path)
	assert.Equal(t, "file", j.Matches[1].Type)
	require.NotNil(t, j.Matches[1].Size)
	assert.Equal(t, int64(len("a.txt")), *j.Matches[1].Size)

	abs := res.ToJSON(false)
	assert.Equal(t, res.Root+"/src", abs.Matches[0].Path)
}
