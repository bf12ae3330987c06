package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jpl-au/globfs/internal/config"
	"github.com/jpl-au/globfs/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandlers(t *testing.T) (*handlers, string) {
	t.Helper()

	t.Setenv(config.EnvDB, filepath.Join(t.TempDir(), "snapshots.db"))
	root := t.TempDir()
	for _, name := range []string{"README.md", "docs/guide.md", "src/main.go"} {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(name), 0644))
	}

	svc := service.New(nil, nil)
	t.Cleanup(func() { svc.Close() })
	return &handlers{svc: svc}, root
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return tc.Text
}

func TestMatchTool(t *testing.T) {
	h, root := newHandlers(t)
	ctx := context.Background()

	res, err := h.match(ctx, callRequest(map[string]any{
		"patterns": []any{"**/*.md"},
		"root":     root,
		"relative": true,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	var got service.ResultJSON
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	assert.Equal(t, 2, got.Count)
	var paths []string
	for _, m := range got.Matches {
		paths = append(paths, m.Path)
		assert.Equal(t, "file", m.Type)
	}
	assert.ElementsMatch(t, []string{"README.md", "docs/guide.md"}, paths)

	t.Run("single pattern string", func(t *testing.T) {
		res, err := h.match(ctx, callRequest(map[string]any{"pattern": "src", "root": root}))
		require.NoError(t, err)
		require.False(t, res.IsError)
		assert.Contains(t, resultText(t, res), `"type": "dir"`)
	})

	t.Run("missing patterns", func(t *testing.T) {
		res, err := h.match(ctx, callRequest(map[string]any{"root": root}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
	})

	t.Run("bad root", func(t *testing.T) {
		res, err := h.match(ctx, callRequest(map[string]any{"patterns": []any{"*"}, "root": filepath.Join(root, "nope")}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
	})
}

func TestSnapshotTools(t *testing.T) {
	h, root := newHandlers(t)
	ctx := context.Background()

	snap, err := h.svc.Index(ctx, root, false)
	require.NoError(t, err)

	res, err := h.listSnapshots(ctx, callRequest(map[string]any{}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), snap.ID)

	res, err = h.listSnapshots(ctx, callRequest(map[string]any{"root": "/somewhere/else"}))
	require.NoError(t, err)
	assert.Equal(t, "[]", resultText(t, res))

	res, err = h.snapshotMatch(ctx, callRequest(map[string]any{
		"snapshot": snap.ShortID(),
		"patterns": []any{"*/*.go"},
		"relative": true,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))
	assert.Contains(t, resultText(t, res), `"path": "src/main.go"`)

	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "util.go"), nil, 0644))
	res, err = h.snapshotDiff(ctx, callRequest(map[string]any{"pattern": "**/*.go", "from": snap.ID}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))
	assert.Contains(t, resultText(t, res), "src/util.go")

	res, err = h.snapshotDiff(ctx, callRequest(map[string]any{"pattern": "*.md", "from": snap.ID}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "no changes")

	res, err = h.snapshotMatch(ctx, callRequest(map[string]any{"patterns": []any{"*"}}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = h.snapshotDiff(ctx, callRequest(map[string]any{"pattern": "*", "from": ""}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "from is required", resultText(t, res))
}

func TestConfigAndGuideTools(t *testing.T) {
	h, _ := newHandlers(t)
	ctx := context.Background()

	res, err := h.configGet(ctx, callRequest(map[string]any{"key": "glob.platform"}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), `"glob.platform": "auto"`)

	res, err = h.configGet(ctx, callRequest(map[string]any{"key": "nope"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = h.getGuide(ctx, callRequest(map[string]any{"topic": "patterns"}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "**")

	res, err = h.getGuide(ctx, callRequest(map[string]any{"topic": "no-such-topic"}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "available_topics")
}

func TestParseSnapshotURI(t *testing.T) {
	id, err := parseSnapshotURI("globfs://snapshots/0f3a")
	require.NoError(t, err)
	assert.Equal(t, "0f3a", id)

	_, err = parseSnapshotURI("globfs://snapshots/")
	assert.ErrorIs(t, err, ErrEmptyID)

	_, err = parseSnapshotURI("other://snapshots/0f3a")
	assert.ErrorIs(t, err, ErrInvalidURI)

	_, err = parseSnapshotURI("globfs://snapshots/a/b")
	assert.ErrorIs(t, err, ErrInvalidURI)
}

func TestGetStrings(t *testing.T) {
	req := callRequest(map[string]any{"list": []any{"a", 1, "b"}, "one": "x"})
	assert.Equal(t, []string{"a", "b"}, getStrings(req, "list"))
	assert.Equal(t, []string{"x"}, getStrings(req, "one"))
	assert.Nil(t, getStrings(req, "missing"))
}

func TestNewServer_ListsTools(t *testing.T) {
	h, _ := newHandlers(t)
	s := NewServer(h.svc, nil)

	resp := s.HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	data, err := json.Marshal(resp)
	require.NoError(t, err)

	for _, name := range []string{"globfs_match", "globfs_snapshot_match", "globfs_snapshots", "globfs_snapshot_diff", "globfs_config_get", "globfs_guide"} {
		assert.Contains(t, string(data), `"`+name+`"`)
	}
}
