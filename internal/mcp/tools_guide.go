// tools_guide.go implements the guide tool, giving the model the pattern
// syntax reference without leaving the conversation.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/globfs/guide"
	"github.com/jpl-au/globfs/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// getGuide handles globfs_guide tool calls. An unknown topic returns the
// list of topics instead of a bare error.
func (h *handlers) getGuide(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	topic := getString(req, "topic", "")

	content, err := guide.Get(topic)

	log.Event("mcp:guide", "read").Detail("topic", topic).Write(err)

	if err != nil {
		topics, listErr := guide.List()
		if listErr != nil {
			return nil, fmt.Errorf("listing guides: %w", listErr)
		}
		return jsonResult(map[string]any{
			"error":            err.Error(),
			"available_topics": topics,
		})
	}
	return mcp.NewToolResultText(content), nil
}
