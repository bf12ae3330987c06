// tools.go exposes snapshot figures over MCP. Creating and deleting
// snapshots stay CLI-only.

package snapshot

import (
	"context"

	"github.com/jpl-au/globfs/extension"
	"github.com/jpl-au/globfs/internal/log"
	"github.com/jpl-au/globfs/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

func statsTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("globfs_snapshot_stats",
			mcp.WithDescription("Show how many snapshots are stored, how many entries they hold, and the oldest and newest snapshot times."),
		),
		Handler: handleStats,
	}
}

func handleStats(ctx context.Context, extCtx extension.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s, err := stats(ctx, extCtx.Service())
	log.Event("mcp:snapshot_stats", "stats").Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	b, err := store.MarshalJSON(s)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
