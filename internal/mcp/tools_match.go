// tools_match.go implements the matching tools.
//
// Results are JSON so the model gets the kind and size of each entry
// without a follow-up call. Paths are absolute unless relative is set,
// since a model juggling several roots otherwise loses track of which
// tree a bare "src/main.go" came from.

package mcp

import (
	"context"
	"strings"

	"github.com/jpl-au/globfs/internal/log"
	"github.com/jpl-au/globfs/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
)

// matchRequest builds a service request from the arguments shared by the
// match tools.
func matchRequest(req mcp.CallToolRequest) service.Request {
	r := service.Request{
		Patterns: getStrings(req, "patterns"),
		Exclude:  getStrings(req, "exclude"),
		Platform: getString(req, "platform", ""),
	}
	if len(r.Patterns) == 0 {
		if p := getString(req, "pattern", ""); p != "" {
			r.Patterns = []string{p}
		}
	}
	if getBool(req, "ignore_case", false) {
		no := false
		r.CaseSensitive = &no
	}
	return r
}

// match handles globfs_match tool calls.
func (h *handlers) match(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r := matchRequest(req)
	if len(r.Patterns) == 0 {
		return mcp.NewToolResultError("patterns is required"), nil
	}
	r.Root = getString(req, "root", "")

	res, err := h.svc.Match(ctx, r)

	l := log.Event("mcp:match", "match").Pattern(strings.Join(r.Patterns, " ")).Root(r.Root)
	if res != nil {
		l.Root(res.Root).Count(len(res.Entries))
	}
	l.Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res.ToJSON(getBool(req, "relative", false)))
}

// snapshotMatch handles globfs_snapshot_match tool calls.
func (h *handlers) snapshotMatch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("snapshot")
	if err != nil {
		return mcp.NewToolResultError("snapshot is required"), nil //nolint:nilerr
	}
	r := matchRequest(req)
	if len(r.Patterns) == 0 {
		return mcp.NewToolResultError("patterns is required"), nil
	}
	r.Snapshot = id

	res, err := h.svc.Match(ctx, r)

	l := log.Event("mcp:snapshot_match", "match").Pattern(strings.Join(r.Patterns, " ")).Snapshot(id)
	if res != nil {
		l.Root(res.Root).Snapshot(res.Snapshot.ID).Count(len(res.Entries))
	}
	l.Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res.ToJSON(getBool(req, "relative", false)))
}
