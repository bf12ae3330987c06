// Package mcp implements the Model Context Protocol server, exposing globfs
// matching to LLMs. An assistant can expand patterns against the working
// tree or a stored snapshot without shelling out to find or ls.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/jpl-au/globfs/extension"
	"github.com/jpl-au/globfs/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// Serve starts the MCP server over stdio, enabling LLM integration.
// Uses stdio transport for compatibility with Claude Desktop and other MCP clients.
//
// The snapshot database is opened on the first snapshot tool call, so a
// server that only matches the live tree never creates one.
func Serve(extCtx extension.Context) error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	s := NewServer(extCtx.Service(), extCtx)

	slog.Info("globfs MCP server ready", "version", Version, "transport", "stdio")

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// NewServer returns an MCP server with the built-in tools and resources
// registered against svc, plus the tools of every registered extension.
// extCtx may be nil when no extension tools are wanted.
func NewServer(svc *service.Service, extCtx extension.Context) *server.MCPServer {
	s := server.NewMCPServer(
		"globfs",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)

	h := &handlers{svc: svc}
	registerResources(s, h)
	registerTools(s, h)
	if extCtx != nil {
		registerExtensionTools(s, extCtx)
	}
	return s
}

// registerExtensionTools binds each extension tool's handler to extCtx.
func registerExtensionTools(s *server.MCPServer, extCtx extension.Context) {
	for _, t := range extension.Tools() {
		handler := t.Handler
		s.AddTool(t.Tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handler(ctx, extCtx, req)
		})
	}
}

// handlers provides MCP request handlers with access to the match service.
type handlers struct {
	svc *service.Service
}

// registerResources adds URI-based access to snapshot metadata.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			snapshotURIPrefix+"{id}",
			"Snapshot",
			mcp.WithTemplateDescription("Metadata for a stored snapshot, by ID or unique prefix"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		h.readSnapshot,
	)
}

// registerTools exposes globfs operations as MCP tools for LLM invocation.
func registerTools(s *server.MCPServer, h *handlers) {
	// Match against the live tree
	s.AddTool(
		mcp.NewTool("globfs_match",
			mcp.WithDescription("Expand glob patterns against the file system. Supports *, ?, ** (any depth, directories only when last), .. and absolute roots. Returns matching paths."),
			mcp.WithArray("patterns", mcp.Required(), mcp.Description("Glob patterns, e.g. [\"src/**/*.go\"]"), mcp.WithStringItems()),
			mcp.WithString("root", mcp.Description("Directory relative patterns resolve against (default: server working directory)")),
			mcp.WithArray("exclude", mcp.Description("Directory names to prune, e.g. [\".git\", \"node_*\"]"), mcp.WithStringItems()),
			mcp.WithBoolean("ignore_case", mcp.Description("Match names case-insensitively")),
			mcp.WithString("platform", mcp.Description("Pattern rules: unix, windows or auto")),
			mcp.WithBoolean("relative", mcp.Description("Return paths relative to root")),
		),
		h.match,
	)

	// Match against a snapshot
	s.AddTool(
		mcp.NewTool("globfs_snapshot_match",
			mcp.WithDescription("Expand glob patterns against a stored snapshot instead of the live tree"),
			mcp.WithString("snapshot", mcp.Required(), mcp.Description("Snapshot ID or unique prefix (see globfs_snapshots)")),
			mcp.WithArray("patterns", mcp.Required(), mcp.Description("Glob patterns"), mcp.WithStringItems()),
			mcp.WithArray("exclude", mcp.Description("Directory names to prune"), mcp.WithStringItems()),
			mcp.WithBoolean("ignore_case", mcp.Description("Match names case-insensitively")),
			mcp.WithBoolean("relative", mcp.Description("Return paths relative to the snapshot root")),
		),
		h.snapshotMatch,
	)

	// List snapshots
	s.AddTool(
		mcp.NewTool("globfs_snapshots",
			mcp.WithDescription("List stored snapshots, newest first"),
			mcp.WithString("root", mcp.Description("Only snapshots of this directory")),
		),
		h.listSnapshots,
	)

	// Diff
	s.AddTool(
		mcp.NewTool("globfs_snapshot_diff",
			mcp.WithDescription("Show which paths matching a pattern were added or removed between a snapshot and another snapshot or the live tree"),
			mcp.WithString("pattern", mcp.Required(), mcp.Description("Glob pattern")),
			mcp.WithString("from", mcp.Required(), mcp.Description("Older snapshot ID or prefix")),
			mcp.WithString("to", mcp.Description("Newer snapshot ID or prefix (default: live tree)")),
		),
		h.snapshotDiff,
	)

	// Config Get
	s.AddTool(
		mcp.NewTool("globfs_config_get",
			mcp.WithDescription("Get a configuration value"),
			mcp.WithString("key", mcp.Description("Config key (glob.case_sensitive, glob.platform, glob.exclude, ...) or empty for all")),
		),
		h.configGet,
	)

	// Guide
	s.AddTool(
		mcp.NewTool("globfs_guide",
			mcp.WithDescription("Get help/guide content for globfs commands and pattern syntax"),
			mcp.WithString("topic", mcp.Description("Guide topic (e.g., 'patterns', 'snapshot') or empty for index")),
		),
		h.getGuide,
	)
}
