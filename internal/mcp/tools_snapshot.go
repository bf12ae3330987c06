// tools_snapshot.go implements the read-only snapshot tools. Creating and
// deleting snapshots stays with the CLI; indexing a large tree can take
// long enough that an MCP client would time out.

package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/jpl-au/globfs/internal/log"
	"github.com/jpl-au/globfs/internal/path"
	"github.com/jpl-au/globfs/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// listSnapshots handles globfs_snapshots tool calls.
func (h *handlers) listSnapshots(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root := getString(req, "root", "")

	st, err := h.svc.Store()
	var snaps []store.Snapshot
	if err == nil {
		snaps, err = st.List(ctx)
	}

	result := make([]store.SnapshotJSON, 0, len(snaps))
	if err == nil {
		for i := range snaps {
			if root != "" && snaps[i].Root != path.Normalise(root) {
				continue
			}
			result = append(result, snaps[i].ToJSON())
		}
	}

	log.Event("mcp:snapshots", "list").Root(root).Count(len(result)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}

// snapshotDiff handles globfs_snapshot_diff tool calls.
func (h *handlers) snapshotDiff(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pattern, err := req.RequireString("pattern")
	if err != nil {
		return mcp.NewToolResultError("pattern is required"), nil //nolint:nilerr
	}
	from, err := req.RequireString("from")
	if err != nil || strings.TrimSpace(from) == "" {
		return mcp.NewToolResultError("from is required"), nil //nolint:nilerr
	}
	to := getString(req, "to", "")

	r := matchRequest(req)
	r.Patterns = []string{pattern}
	d, err := h.svc.Diff(ctx, r, from, to)

	log.Event("mcp:snapshot_diff", "diff").Pattern(pattern).Snapshot(from).
		Detail("to", to).Detail("added", len(d.Added)).Detail("removed", len(d.Removed)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !d.Changed() {
		return mcp.NewToolResultText(fmt.Sprintf("no changes between %s and %s", d.Old, d.New)), nil
	}
	return jsonResult(map[string]any{
		"old":     d.Old,
		"new":     d.New,
		"added":   d.Added,
		"removed": d.Removed,
		"diff":    d.Diff,
	})
}
