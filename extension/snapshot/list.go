// list.go implements "globfs snapshot ls", "rm" and "stats".

package snapshot

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jpl-au/globfs/cmd"
	"github.com/jpl-au/globfs/extension"
	"github.com/jpl-au/globfs/internal/format"
	"github.com/jpl-au/globfs/internal/log"
	"github.com/jpl-au/globfs/internal/path"
	"github.com/jpl-au/globfs/internal/service"
	"github.com/jpl-au/globfs/internal/store"
	"github.com/spf13/cobra"
)

func (e *Extension) newListCmd() *cobra.Command {
	c := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List snapshots, newest first",
		Args:    cobra.NoArgs,
		RunE:    e.runList,
	}
	c.Flags().String(extension.FlagRoot, "", "Only snapshots of this directory")
	return c
}

func (e *Extension) runList(c *cobra.Command, _ []string) error {
	root, _ := c.Flags().GetString(extension.FlagRoot)

	snaps, err := listSnapshots(c.Context(), e.ctx.Service(), root)
	log.Event("snapshot:ls", "list").Root(root).Count(len(snaps)).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("snapshot ls: %w", err))
	}

	if cmd.JSON() {
		out := make([]store.SnapshotJSON, len(snaps))
		for i := range snaps {
			out[i] = snaps[i].ToJSON()
		}
		return cmd.PrintJSON(out)
	}
	if len(snaps) == 0 {
		fmt.Fprintln(cmd.Out(), "no snapshots")
		return nil
	}
	return format.Snapshots(cmd.Out(), snaps)
}

// listSnapshots returns every snapshot, or only those of root when given.
func listSnapshots(ctx context.Context, svc *service.Service, root string) ([]store.Snapshot, error) {
	st, err := svc.Store()
	if err != nil {
		return nil, err
	}
	snaps, err := st.List(ctx)
	if err != nil || root == "" {
		return snaps, err
	}

	abs, err := absRoot(root)
	if err != nil {
		return nil, err
	}
	var out []store.Snapshot
	for _, s := range snaps {
		if s.Root == abs {
			out = append(out, s)
		}
	}
	return out, nil
}

func (e *Extension) newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a snapshot",
		Long:  `Delete a snapshot and its entries. The ID may be any unique prefix.`,
		Args:  cobra.ExactArgs(1),
		RunE:  e.runRm,
		ValidArgsFunction: func(c *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return e.completeIDs(c.Context()), cobra.ShellCompDirectiveNoFileComp
		},
	}
}

func (e *Extension) runRm(c *cobra.Command, args []string) error {
	ctx := c.Context()
	id := args[0]
	l := log.Event("snapshot:rm", "delete").Snapshot(id)

	st, err := e.ctx.Service().Store()
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("snapshot rm: %w", err))
	}
	snap, err := st.Get(ctx, id)
	if err == nil {
		err = st.Delete(ctx, snap.ID)
	}
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("snapshot rm %s: %w", id, err))
	}
	l.Snapshot(snap.ID).Root(snap.Root).Write(nil)

	if err := extension.Dispatch(e.ctx, extension.SnapshotDeleteEvent{ID: snap.ID}); err != nil {
		e.ctx.Logger().Warn("snapshot event handler failed", "snapshot", snap.ID, "error", err)
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"deleted": snap.ID, "root": snap.Root})
	}
	fmt.Fprintf(cmd.Out(), "deleted %s (%s)\n", snap.ShortID(), snap.Root)
	return nil
}

// completeIDs offers the short IDs of existing snapshots. Completion never
// reports errors; an unopenable store just completes nothing.
func (e *Extension) completeIDs(ctx context.Context) []string {
	if ctx == nil {
		ctx = context.Background()
	}
	snaps, err := listSnapshots(ctx, e.ctx.Service(), "")
	if err != nil {
		return nil
	}
	ids := make([]string, len(snaps))
	for i := range snaps {
		ids[i] = snaps[i].ShortID() + "\t" + snaps[i].Root
	}
	return ids
}

// statsJSON is the API representation of store.Stats.
type statsJSON struct {
	Snapshots int64  `json:"snapshots"`
	Entries   int64  `json:"entries"`
	Bytes     int64  `json:"bytes"`
	Oldest    string `json:"oldest,omitempty"`
	Newest    string `json:"newest,omitempty"`
	Database  string `json:"database"`
}

func newStatsJSON(s *store.Stats, db string) statsJSON {
	out := statsJSON{Snapshots: s.Snapshots, Entries: s.Entries, Bytes: s.Bytes, Database: db}
	if s.Snapshots > 0 {
		out.Oldest = time.Unix(s.Oldest, 0).UTC().Format(time.RFC3339)
		out.Newest = time.Unix(s.Newest, 0).UTC().Format(time.RFC3339)
	}
	return out
}

// stats opens the store and returns its figures.
func stats(ctx context.Context, svc *service.Service) (statsJSON, error) {
	st, err := svc.Store()
	if err != nil {
		return statsJSON{}, err
	}
	s, err := st.Stats(ctx)
	if err != nil {
		return statsJSON{}, err
	}
	return newStatsJSON(s, st.Path()), nil
}

func (e *Extension) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show snapshot database figures",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			s, err := stats(c.Context(), e.ctx.Service())
			log.Event("snapshot:stats", "stats").Write(err)
			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("snapshot stats: %w", err))
			}
			if cmd.JSON() {
				return cmd.PrintJSON(s)
			}

			w := cmd.Out()
			fmt.Fprintf(w, "database:  %s\n", s.Database)
			fmt.Fprintf(w, "snapshots: %d\n", s.Snapshots)
			fmt.Fprintf(w, "entries:   %d\n", s.Entries)
			fmt.Fprintf(w, "bytes:     %d\n", s.Bytes)
			if s.Snapshots > 0 {
				fmt.Fprintf(w, "oldest:    %s\n", s.Oldest)
				fmt.Fprintf(w, "newest:    %s\n", s.Newest)
			}
			return nil
		},
	}
}

// absRoot converts a directory argument to the form snapshots record.
func absRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	return path.New(filepath.ToSlash(abs)).String(), nil
}
