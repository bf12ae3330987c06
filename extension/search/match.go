// match.go implements the "globfs match" command.
//
// Several patterns may be given; the result is their union in pattern
// order. Paths print one per line (directories end in "/"), in long format
// with -l, or as a tree with --tree.

package search

import (
	"fmt"
	"strings"

	"github.com/jpl-au/globfs/cmd"
	"github.com/jpl-au/globfs/extension"
	"github.com/jpl-au/globfs/internal/format"
	"github.com/jpl-au/globfs/internal/log"
	"github.com/jpl-au/globfs/internal/service"
	"github.com/spf13/cobra"
)

func (e *Extension) newMatchCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "match <pattern>...",
		Short: "List paths matching glob patterns",
		Long: `List the files and directories matching one or more glob patterns.

Relative patterns resolve against --root, then GLOBFS_ROOT, then the
current directory. Absolute patterns ignore the root.

  *    any run of characters within one name
  ?    exactly one character
  **   zero or more directories (matches directories only)
  ..   the parent directory

Examples:
  globfs match "**/*.go"               # Go files below the current directory
  globfs match "src/*" --tree          # children of src as a tree
  globfs match "*.md" "docs/**/*.md"   # union of two patterns
  globfs match "**/*.go" --exclude vendor
  globfs match "C:/Work/*.TXT" --platform windows
  globfs match "**/*.go" --snapshot 0f3a9c1e`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runMatch,
	}
	addRequestFlags(c)
	c.Flags().String(extension.FlagSnapshot, "", "Match against a snapshot instead of the disk")
	c.Flags().BoolP(extension.FlagRelative, "r", false, "Print paths relative to the root")
	c.Flags().BoolP(extension.FlagLong, "l", false, "Long format: kind and size")
	c.Flags().Bool(extension.FlagTree, false, "Print matches as a tree")
	c.MarkFlagsMutuallyExclusive(extension.FlagRoot, extension.FlagSnapshot)
	c.MarkFlagsMutuallyExclusive(extension.FlagLong, extension.FlagTree)
	return c
}

// addRequestFlags registers the flags shared by match and watch.
func addRequestFlags(c *cobra.Command) {
	c.Flags().String(extension.FlagRoot, "", "Directory relative patterns resolve against")
	c.Flags().StringSlice(extension.FlagExclude, nil, "Directory names to prune (repeatable, globs allowed)")
	c.Flags().BoolP(extension.FlagIgnoreCase, "i", false, "Compare names case-insensitively")
	c.Flags().Bool(extension.FlagCaseSensitive, false, "Compare names case-sensitively")
	c.Flags().String(extension.FlagPlatform, "", "Path rules: unix, windows or auto")
	c.Flags().Bool(extension.FlagFailOnIOErrors, false, "Fail instead of skipping unreadable directories")
	c.MarkFlagsMutuallyExclusive(extension.FlagIgnoreCase, extension.FlagCaseSensitive)

	_ = c.RegisterFlagCompletionFunc(extension.FlagPlatform, func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "unix", "windows"}, cobra.ShellCompDirectiveNoFileComp
	})
}

// requestFromFlags builds a service request from the shared flags.
func requestFromFlags(c *cobra.Command, patterns []string) service.Request {
	req := service.Request{Patterns: patterns}
	req.Root, _ = c.Flags().GetString(extension.FlagRoot)
	req.Exclude, _ = c.Flags().GetStringSlice(extension.FlagExclude)
	req.Platform, _ = c.Flags().GetString(extension.FlagPlatform)
	req.FailOnIOErrors, _ = c.Flags().GetBool(extension.FlagFailOnIOErrors)
	if c.Flags().Lookup(extension.FlagSnapshot) != nil {
		req.Snapshot, _ = c.Flags().GetString(extension.FlagSnapshot)
	}

	if ic, _ := c.Flags().GetBool(extension.FlagIgnoreCase); ic {
		cs := false
		req.CaseSensitive = &cs
	}
	if cs, _ := c.Flags().GetBool(extension.FlagCaseSensitive); cs {
		req.CaseSensitive = &cs
	}
	return req
}

func (e *Extension) runMatch(c *cobra.Command, args []string) error {
	req := requestFromFlags(c, args)
	relative, _ := c.Flags().GetBool(extension.FlagRelative)
	long, _ := c.Flags().GetBool(extension.FlagLong)
	tree, _ := c.Flags().GetBool(extension.FlagTree)

	l := log.Event("search:match", "match").
		Pattern(strings.Join(args, " ")).
		Root(req.Root).
		Snapshot(req.Snapshot)

	res, err := e.ctx.Service().Match(c.Context(), req)
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("match %q: %w", strings.Join(args, " "), err))
	}
	l.Root(res.Root).Count(len(res.Entries)).Write(nil)

	if cmd.JSON() {
		return cmd.PrintJSON(res.ToJSON(relative))
	}

	opts := format.Options{Long: long, Colour: cmd.Colour()}
	if relative {
		opts.Relative = res.Root
	}
	if tree {
		opts.Relative = res.Root
		return format.Tree(cmd.Out(), res.Entries, opts)
	}
	return format.Paths(cmd.Out(), res.Entries, opts)
}
