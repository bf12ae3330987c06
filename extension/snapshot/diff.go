// diff.go implements "globfs snapshot diff".
//
// Without --from, the newest snapshot of the root is used. Without --to,
// the snapshot is compared with the tree on disk as it is now.

package snapshot

import (
	"fmt"
	"os"
	"strings"

	"github.com/jpl-au/globfs/cmd"
	"github.com/jpl-au/globfs/extension"
	"github.com/jpl-au/globfs/internal/config"
	"github.com/jpl-au/globfs/internal/diff"
	"github.com/jpl-au/globfs/internal/log"
	"github.com/jpl-au/globfs/internal/service"
	"github.com/spf13/cobra"
)

// diffJSON is the API representation of a diff.
type diffJSON struct {
	Old     string   `json:"old"`
	New     string   `json:"new"`
	Added   []string `json:"added"`
	Removed []string `json:"removed"`
	Changed bool     `json:"changed"`
}

func newDiffJSON(d diff.Result) diffJSON {
	out := diffJSON{Old: d.Old, New: d.New, Added: d.Added, Removed: d.Removed, Changed: d.Changed()}
	if out.Added == nil {
		out.Added = []string{}
	}
	if out.Removed == nil {
		out.Removed = []string{}
	}
	return out
}

func (e *Extension) newDiffCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "diff <pattern>...",
		Short: "Compare a pattern's matches between snapshots",
		Long: `Compare what patterns match in one snapshot with what they match in
another snapshot, or on disk now. Paths are compared relative to each
side's root, so snapshots of a moved tree still line up.

Examples:
  globfs snapshot diff "**/*.go"                        # newest snapshot of . vs disk
  globfs snapshot diff "**/*.go" --from 0f3a9c1e        # that snapshot vs disk
  globfs snapshot diff "src/**" --from 0f3a --to 7b21   # two snapshots`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runDiff,
	}
	c.Flags().String(extension.FlagFrom, "", "Older snapshot (default: newest snapshot of --root)")
	c.Flags().String(extension.FlagTo, "", "Newer snapshot (default: the tree on disk)")
	c.Flags().String(extension.FlagRoot, "", "Directory whose newest snapshot --from defaults to")
	c.Flags().StringSlice(extension.FlagExclude, nil, "Directory names to prune")
	c.Flags().BoolP(extension.FlagIgnoreCase, "i", false, "Compare names case-insensitively")
	c.MarkFlagsMutuallyExclusive(extension.FlagFrom, extension.FlagRoot)
	return c
}

func (e *Extension) runDiff(c *cobra.Command, args []string) error {
	ctx := c.Context()
	svc := e.ctx.Service()
	from, _ := c.Flags().GetString(extension.FlagFrom)
	to, _ := c.Flags().GetString(extension.FlagTo)
	root, _ := c.Flags().GetString(extension.FlagRoot)

	req := service.Request{Patterns: args}
	req.Exclude, _ = c.Flags().GetStringSlice(extension.FlagExclude)
	if ic, _ := c.Flags().GetBool(extension.FlagIgnoreCase); ic {
		cs := false
		req.CaseSensitive = &cs
	}

	pattern := strings.Join(args, " ")
	l := log.Event("snapshot:diff", "diff").Pattern(pattern).Detail("to", to)

	if from == "" {
		id, err := e.latest(c, root)
		if err != nil {
			l.Write(err)
			return cmd.PrintJSONError(fmt.Errorf("snapshot diff: %w", err))
		}
		from = id
	}
	l.Snapshot(from)

	d, err := svc.Diff(ctx, req, from, to)
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("snapshot diff %q: %w", pattern, err))
	}
	l.Detail("added", len(d.Added)).Detail("removed", len(d.Removed)).Write(nil)

	if cmd.JSON() {
		return cmd.PrintJSON(newDiffJSON(d))
	}
	if !d.Changed() {
		fmt.Fprintf(cmd.Out(), "no changes between %s and %s\n", d.Old, d.New)
		return nil
	}
	fmt.Fprint(cmd.Out(), d.Format(cmd.Colour()))
	return nil
}

// latest returns the ID of the newest snapshot of root, which defaults to
// GLOBFS_ROOT and then the current directory.
func (e *Extension) latest(c *cobra.Command, root string) (string, error) {
	if root == "" {
		root = os.Getenv(config.EnvRoot)
	}
	if root == "" {
		root = "."
	}
	abs, err := absRoot(root)
	if err != nil {
		return "", err
	}
	st, err := e.ctx.Service().Store()
	if err != nil {
		return "", err
	}
	snap, err := st.Latest(c.Context(), abs)
	if err != nil {
		return "", fmt.Errorf("no snapshot of %s: %w", abs, err)
	}
	return snap.ID, nil
}
