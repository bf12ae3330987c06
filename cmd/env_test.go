// The cmd/ package holds CLI integration tests that exercise the full stack:
// command parsing -> extension -> service -> globber or snapshot store.
//
// Each test builds a throwaway tree and runs the real binary against it with
// HOME and GLOBFS_DB pointed into temp directories, so neither the user's
// config nor their snapshots are touched.

package cmd

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the globfs binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "globfs-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "globfs"
		if os.PathSeparator == '\\' {
			binaryName = "globfs.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Project root is the parent of cmd/
		projectRoot := filepath.Dir(mustGetwd())

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testTree is the tree every test environment starts with.
var testTree = []string{
	"README.md",
	"docs/guide.md",
	"src/main.go",
	"src/util/strings.go",
	"vendor/lib/lib.go",
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string // working directory holding testTree
	home   string
	binary string
}

// newTestEnv creates a temporary tree with an isolated home directory and
// snapshot database.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		t:      t,
		dir:    t.TempDir(),
		home:   t.TempDir(),
		binary: buildBinary(t),
	}
	for _, name := range testTree {
		env.write(name, name)
	}
	return env
}

// write creates a file under the tree, with parent directories.
func (e *testEnv) write(name, content string) {
	e.t.Helper()
	p := filepath.Join(e.dir, filepath.FromSlash(name))
	require.NoError(e.t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(e.t, os.WriteFile(p, []byte(content), 0644))
}

// remove deletes a file or directory under the tree.
func (e *testEnv) remove(name string) {
	e.t.Helper()
	require.NoError(e.t, os.RemoveAll(filepath.Join(e.dir, filepath.FromSlash(name))))
}

// environ returns the process environment with the home directory and
// snapshot database redirected.
func (e *testEnv) environ() []string {
	var out []string
	for _, kv := range os.Environ() {
		switch {
		case strings.HasPrefix(kv, "HOME="),
			strings.HasPrefix(kv, "USERPROFILE="),
			strings.HasPrefix(kv, "GLOBFS_"):
			continue
		}
		out = append(out, kv)
	}
	return append(out,
		"HOME="+e.home,
		"USERPROFILE="+e.home,
		"GLOBFS_DB="+filepath.Join(e.home, "snapshots.db"),
	)
}

// run executes globfs with the given args and returns stdout.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("globfs %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes globfs and returns its combined output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()

	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = e.environ()
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// runJSON executes globfs with -o json and decodes the output into v.
func (e *testEnv) runJSON(v any, args ...string) {
	e.t.Helper()
	out := e.run(append(args, "-o", "json")...)
	require.NoError(e.t, json.Unmarshal([]byte(out), v), "output: %s", out)
}

// lines splits output into trimmed, non-empty lines.
func lines(out string) []string {
	var res []string
	for _, l := range strings.Split(out, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			res = append(res, l)
		}
	}
	return res
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// notContains checks that output does not contain a string.
func (e *testEnv) notContains(output, unexpected string) {
	e.t.Helper()
	assert.NotContains(e.t, output, unexpected)
}

// equals checks if output equals expected string (trimmed).
func (e *testEnv) equals(output, expected string) {
	e.t.Helper()
	assert.Equal(e.t, strings.TrimSpace(expected), strings.TrimSpace(output))
}
