// mcp.go defines types for MCP tool registration by extensions. Not every
// extension has tools; most only add CLI commands.

package extension

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// MCPTool pairs an MCP tool definition with its handler.
type MCPTool struct {
	Tool    mcp.Tool
	Handler MCPHandler
}

// MCPHandler processes MCP tool requests. The Context gives access to the
// match service and configuration.
type MCPHandler func(ctx context.Context, extCtx Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)

// Tools collects the MCP tools of every registered extension.
func Tools() []MCPTool {
	var tools []MCPTool
	for _, ext := range All() {
		tools = append(tools, ext.MCPTools()...)
	}
	return tools
}
