// Package vacuum removes old snapshots and compacts the snapshot database.
// Deleting rows alone leaves the file its full size; the compaction at the
// end is what returns the space.
package vacuum

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jpl-au/globfs/internal/store"
)

// Options selects the snapshots to remove.
type Options struct {
	OlderThan time.Duration // remove snapshots created before now minus this
	Root      string        // only snapshots of this root, "/" separated; "" for all
	Keep      int           // always keep this many of the newest selected snapshots
	DryRun    bool          // report without deleting
}

// Result reports what was removed, or would be under DryRun.
type Result struct {
	Deleted []store.Snapshot
	DryRun  bool
}

// Select returns the snapshots opts selects, newest first.
func Select(snaps []store.Snapshot, opts Options, now time.Time) []store.Snapshot {
	cutoff := now.Add(-opts.OlderThan).Unix()
	kept := 0
	var out []store.Snapshot
	for _, s := range snaps {
		if opts.Root != "" && s.Root != opts.Root {
			continue
		}
		if kept < opts.Keep {
			kept++
			continue
		}
		if s.CreatedAt < cutoff {
			out = append(out, s)
		}
	}
	return out
}

// Run removes the snapshots opts selects and compacts the database,
// writing one line per snapshot to w. Nothing is compacted when nothing
// was deleted.
func Run(ctx context.Context, w io.Writer, st store.Store, opts Options) (Result, error) {
	result := Result{DryRun: opts.DryRun}

	snaps, err := st.List(ctx)
	if err != nil {
		return result, err
	}
	selected := Select(snaps, opts, time.Now())

	verb := "Deleted"
	if opts.DryRun {
		verb = "Would delete"
	}
	for _, s := range selected {
		if !opts.DryRun {
			if err := st.Delete(ctx, s.ID); err != nil {
				return result, fmt.Errorf("delete %s: %w", s.ShortID(), err)
			}
		}
		result.Deleted = append(result.Deleted, s)
		fmt.Fprintf(w, "%s %s (%s, %s)\n", verb, s.ShortID(), s.Root,
			time.Unix(s.CreatedAt, 0).Format("2006-01-02 15:04"))
	}

	if len(result.Deleted) == 0 {
		fmt.Fprintln(w, "No snapshots to prune")
		return result, nil
	}
	if opts.DryRun {
		fmt.Fprintf(w, "\nWould delete %d snapshot(s)\n", len(result.Deleted))
		return result, nil
	}
	if err := st.Compact(ctx); err != nil {
		return result, err
	}
	fmt.Fprintf(w, "Pruned %d snapshot(s)\n", len(result.Deleted))
	return result, nil
}
