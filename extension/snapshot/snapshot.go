// Package snapshot provides the commands that record directory trees and
// compare pattern results across them.
// Registers the "snapshot" command group.
package snapshot

import (
	"github.com/jpl-au/globfs/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the snapshot extension.
type Extension struct {
	ctx extension.Context
}

// Compile-time interface compliance.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "snapshot".
func (e *Extension) Name() string { return "snapshot" }

// Init keeps the context. The store is opened by the service on first use,
// not here, so listing commands on a fresh machine create nothing.
func (e *Extension) Init(ctx extension.Context) error {
	e.ctx = ctx
	return nil
}

// Commands returns the snapshot command group.
func (e *Extension) Commands() []*cobra.Command {
	c := &cobra.Command{
		Use:     "snapshot",
		Aliases: []string{"snap"},
		Short:   "Record directory trees and match against them later",
		Long: `Snapshots record every directory and file under a root, so patterns can
be matched against the tree as it was, or diffed against how it is now.

  globfs snapshot create ~/src/app
  globfs snapshot ls
  globfs match "**/*.go" --snapshot 0f3a9c1e
  globfs snapshot diff "**/*.go" --from 0f3a9c1e
  globfs snapshot rm 0f3a9c1e
  globfs snapshot prune --older-than 30d`,
	}
	c.AddCommand(
		e.newCreateCmd(),
		e.newListCmd(),
		e.newRmCmd(),
		e.newDiffCmd(),
		e.newStatsCmd(),
		e.newPruneCmd(),
	)
	return []*cobra.Command{c}
}

// MCPTools returns globfs_snapshot_stats.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{statsTool()}
}
