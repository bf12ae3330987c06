// prune.go implements "globfs snapshot prune".

package snapshot

import (
	"fmt"
	"io"

	"github.com/jpl-au/globfs/cmd"
	"github.com/jpl-au/globfs/extension"
	"github.com/jpl-au/globfs/internal/duration"
	"github.com/jpl-au/globfs/internal/log"
	"github.com/jpl-au/globfs/internal/store"
	"github.com/jpl-au/globfs/internal/vacuum"
	"github.com/spf13/cobra"
)

func (e *Extension) newPruneCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "prune --older-than <period>",
		Short: "Delete old snapshots and compact the database",
		Long: `Delete snapshots created more than --older-than ago, then compact the
snapshot database so the space is returned.

Periods: 7d (days), 4w (weeks), 3m (months of 30 days), or Go durations
such as 36h.

Examples:
  globfs snapshot prune --older-than 30d --dry-run
  globfs snapshot prune --older-than 4w --root ~/src/app --keep 3`,
		Args: cobra.NoArgs,
		RunE: e.runPrune,
	}
	c.Flags().String(extension.FlagOlderThan, "", "Retention period (e.g. 30d)")
	c.Flags().String(extension.FlagRoot, "", "Only snapshots of this directory")
	c.Flags().Int(extension.FlagKeep, 0, "Always keep this many of the newest snapshots")
	c.Flags().Bool(extension.FlagDryRun, false, "Show what would be deleted")
	_ = c.MarkFlagRequired(extension.FlagOlderThan)
	return c
}

// pruneJSON is the API representation of a prune.
type pruneJSON struct {
	DryRun  bool                 `json:"dry_run"`
	Count   int                  `json:"count"`
	Deleted []store.SnapshotJSON `json:"deleted"`
}

func (e *Extension) runPrune(c *cobra.Command, _ []string) error {
	ctx := c.Context()
	olderThan, _ := c.Flags().GetString(extension.FlagOlderThan)
	root, _ := c.Flags().GetString(extension.FlagRoot)
	keep, _ := c.Flags().GetInt(extension.FlagKeep)
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)

	if keep < 0 {
		return cmd.PrintJSONError(fmt.Errorf("keep must be >= 0, got %d", keep))
	}
	period, err := duration.Parse(olderThan)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	opts := vacuum.Options{OlderThan: period, Keep: keep, DryRun: dryRun}
	if root != "" {
		if opts.Root, err = absRoot(root); err != nil {
			return cmd.PrintJSONError(err)
		}
	}

	l := log.Event("snapshot:prune", "prune").
		Root(opts.Root).
		Detail("older_than", olderThan).
		Detail("dry_run", dryRun)

	st, err := e.ctx.Service().Store()
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("snapshot prune: %w", err))
	}

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}
	res, err := vacuum.Run(ctx, w, st, opts)
	l.Count(len(res.Deleted)).Write(err)

	if !dryRun {
		for _, s := range res.Deleted {
			if err := extension.Dispatch(e.ctx, extension.SnapshotDeleteEvent{ID: s.ID}); err != nil {
				e.ctx.Logger().Warn("snapshot event handler failed", "snapshot", s.ID, "error", err)
			}
		}
	}
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("snapshot prune: %w", err))
	}

	if cmd.JSON() {
		out := pruneJSON{DryRun: dryRun, Count: len(res.Deleted), Deleted: make([]store.SnapshotJSON, len(res.Deleted))}
		for i := range res.Deleted {
			out.Deleted[i] = res.Deleted[i].ToJSON()
		}
		return cmd.PrintJSON(out)
	}
	return nil
}
