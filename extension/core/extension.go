// Package core provides the core extension for globfs.
// It registers commands: config, serve, guide, version.
package core

import (
	"context"

	"github.com/jpl-au/globfs/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct {
	ctx extension.Context
}

// Compile-time interface compliance.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.EventHandler  = (*Extension)(nil)
)

// Name returns "core" - this extension provides the housekeeping commands.
func (e *Extension) Name() string { return "core" }

// Init keeps the context for serve, which hands it to the MCP server.
func (e *Extension) Init(ctx extension.Context) error {
	e.ctx = ctx
	return nil
}

// Commands returns the core CLI commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newConfigCmd(),
		e.newServeCmd(),
		newGuideCmd(),
		newVersionCmd(),
	}
}

// MCPTools returns nil - the built-in tools live in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// HandleEvent checkpoints the snapshot database after a snapshot is
// created or deleted. Both write every entry of a tree in one transaction.
func (e *Extension) HandleEvent(ctx extension.Context, evt extension.Event) error {
	switch evt.EventType() {
	case extension.EventSnapshotCreate, extension.EventSnapshotDelete:
	default:
		return nil
	}
	st, err := ctx.Service().Store()
	if err != nil {
		return err
	}
	return st.Checkpoint(context.Background())
}
