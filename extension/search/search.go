// Package search provides the commands that expand patterns.
// Registers commands: match, watch.
package search

import (
	"github.com/jpl-au/globfs/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the search extension.
type Extension struct {
	ctx extension.Context
}

// Compile-time interface compliance.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "search" - this extension provides the matching commands.
func (e *Extension) Name() string { return "search" }

// Init keeps the context; the service behind it is shared with every
// other extension.
func (e *Extension) Init(ctx extension.Context) error {
	e.ctx = ctx
	return nil
}

// Commands returns match and watch.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newMatchCmd(),
		e.newWatchCmd(),
	}
}

// MCPTools returns nil - globfs_match is built into internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}
