// create.go implements "globfs snapshot create".

package snapshot

import (
	"fmt"
	"os"

	"github.com/jpl-au/globfs/cmd"
	"github.com/jpl-au/globfs/extension"
	"github.com/jpl-au/globfs/internal/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (e *Extension) newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create [dir]",
		Short: "Record a directory tree",
		Long: `Walk dir (default: the current directory) and record every directory
and file below it. Directories named in glob.exclude are pruned.

The snapshot keeps the path rules in effect (glob.platform), so matching
against it later behaves as matching the tree did.`,
		Args: cobra.MaximumNArgs(1),
		RunE: e.runCreate,
	}
}

func (e *Extension) runCreate(c *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	l := log.Event("snapshot:create", "index").Root(root)

	showProgress := !cmd.JSON() && term.IsTerminal(int(os.Stderr.Fd()))
	snap, err := e.ctx.Service().Index(c.Context(), root, showProgress)
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("snapshot %s: %w", root, err))
	}
	l.Root(snap.Root).Snapshot(snap.ID).Count(int(snap.Files)).Write(nil)

	evt := extension.SnapshotCreateEvent{ID: snap.ID, Root: snap.Root, Files: snap.Files}
	if err := extension.Dispatch(e.ctx, evt); err != nil {
		e.ctx.Logger().Warn("snapshot event handler failed", "snapshot", snap.ID, "error", err)
	}

	if cmd.JSON() {
		return cmd.PrintJSON(snap.ToJSON())
	}
	fmt.Fprintf(cmd.Out(), "%s  %d directories, %d files  %s\n", snap.ShortID(), snap.Directories, snap.Files, snap.Root)
	return nil
}
