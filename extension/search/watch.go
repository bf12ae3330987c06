// watch.go implements the "globfs watch" command.
//
// The pattern is matched once, then again after every burst of file system
// events under the root. Only differences are printed, so an editor saving
// a file that was already matched prints nothing.

package search

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jpl-au/globfs/cmd"
	"github.com/jpl-au/globfs/extension"
	"github.com/jpl-au/globfs/internal/config"
	"github.com/jpl-au/globfs/internal/glob"
	"github.com/jpl-au/globfs/internal/log"
	"github.com/jpl-au/globfs/internal/validate"
	"github.com/jpl-au/globfs/internal/watch"
	"github.com/spf13/cobra"
)

// changeJSON is one line of "globfs watch -o json" output.
type changeJSON struct {
	Initial bool     `json:"initial,omitempty"`
	Added   []string `json:"added"`
	Removed []string `json:"removed"`
	Count   int      `json:"count"`
}

func (e *Extension) newWatchCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "watch <pattern>...",
		Short: "Print match changes as the tree changes",
		Long: `Print the current matches, then a "+" or "-" line for every path that
starts or stops matching while the tree under the root changes.

Events are collapsed until the tree has been quiet for --debounce.
Excluded directories are not watched. Stop with Ctrl-C.

Examples:
  globfs watch "**/*.go"
  globfs watch "**/*_test.go" --root ~/src/app --exclude vendor
  globfs watch "*.log" --debounce 1s -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runWatch,
	}
	addRequestFlags(c)
	c.Flags().Duration(extension.FlagDebounce, watch.DefaultDebounce, "Quiet period before matching again")
	return c
}

// watchRoot resolves the directory to watch the same way match resolves
// the root for relative patterns.
func watchRoot(flag string) (string, error) {
	root := flag
	if root == "" {
		root = os.Getenv(config.EnvRoot)
	}
	return validate.Root(root)
}

func (e *Extension) runWatch(c *cobra.Command, args []string) error {
	svc := e.ctx.Service()
	req := requestFromFlags(c, args)
	debounce, _ := c.Flags().GetDuration(extension.FlagDebounce)

	root, err := watchRoot(req.Root)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("watch: %w", err))
	}
	req.Root = root

	ignoreCase := req.CaseSensitive != nil && !*req.CaseSensitive
	exclude := append(append([]string{}, svc.Config().Exclude()...), req.Exclude...)
	skip, err := glob.NameMatcher(ignoreCase, exclude...)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("watch: %w", err))
	}

	match := func() ([]string, error) {
		res, err := svc.Match(context.Background(), req)
		if err != nil {
			return nil, err
		}
		return res.Relative(), nil
	}

	w, err := watch.New(root, match,
		watch.WithDebounce(debounce),
		watch.WithSkip(skip),
		watch.WithLogger(e.ctx.Logger()),
	)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("watch %s: %w", root, err))
	}

	ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pattern := strings.Join(args, " ")
	started := time.Now()
	changes := 0
	err = w.Run(ctx, func(ch watch.Change) error {
		if !ch.Initial {
			changes++
		}
		return printChange(ch)
	})
	log.Event("search:watch", "watch").
		Pattern(pattern).
		Root(root).
		Count(changes).
		Detail("duration", time.Since(started).Round(time.Second).String()).
		Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("watch %q: %w", pattern, err))
	}
	return nil
}

func printChange(ch watch.Change) error {
	if cmd.JSON() {
		j := changeJSON{
			Initial: ch.Initial,
			Added:   ch.Added,
			Removed: ch.Removed,
			Count:   len(ch.Matches),
		}
		if j.Added == nil {
			j.Added = []string{}
		}
		if j.Removed == nil {
			j.Removed = []string{}
		}
		return cmd.PrintJSON(j)
	}

	if ch.Initial {
		for _, p := range ch.Matches {
			fmt.Fprintln(cmd.Out(), p)
		}
		return nil
	}
	for _, p := range ch.Removed {
		fmt.Fprintln(cmd.Out(), "- "+p)
	}
	for _, p := range ch.Added {
		fmt.Fprintln(cmd.Out(), "+ "+p)
	}
	return nil
}
