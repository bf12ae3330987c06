// tools_config.go implements the configuration tool. It is read-only:
// settings change how every later match behaves, so changing them is left
// to the user through the CLI.

package mcp

import (
	"context"

	"github.com/jpl-au/globfs/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// configGet handles globfs_config_get tool calls. It reports the settings
// the server is running with, not what is on disk now.
func (h *handlers) configGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	cfg := h.svc.Config()

	key := getString(req, "key", "")
	if key == "" {
		log.Event("mcp:config_get", "list").Write(nil)
		return jsonResult(cfg.All())
	}

	v, err := cfg.Get(key)

	log.Event("mcp:config_get", "get").Detail("key", key).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]string{key: v})
}
