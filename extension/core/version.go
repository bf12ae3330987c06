// version.go implements the version command.

package core

import (
	"fmt"

	"github.com/jpl-au/globfs/cmd"
	"github.com/jpl-au/globfs/extension"
	"github.com/jpl-au/globfs/internal/log"
	"github.com/jpl-au/globfs/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print the build tag, commit, Go version, platform, and the path rules
patterns follow here when glob.platform is auto.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			short, _ := c.Flags().GetBool(extension.FlagShort)
			info := version.Get()
			log.Event("core:version", "read").Write(nil)

			switch {
			case cmd.JSON():
				return cmd.PrintJSON(info)
			case short:
				fmt.Fprintln(cmd.Out(), info.BuildTag)
			default:
				fmt.Fprint(cmd.Out(), info.String())
			}
			return nil
		},
	}
	c.Flags().Bool(extension.FlagShort, false, "Print only the build tag")
	return c
}
