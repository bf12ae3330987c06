// serve.go implements the "globfs serve" command for MCP server operation.
// Unlike other commands serve blocks, handling MCP requests over stdio
// until the client disconnects.

package core

import (
	"github.com/jpl-au/globfs/internal/log"
	"github.com/jpl-au/globfs/internal/mcp"
	"github.com/spf13/cobra"
)

func (e *Extension) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

Patterns are resolved against the directory the server was started in
unless a tool call names a root. Use --db to serve another snapshot database:
  globfs serve --db ./snapshots.db`,
		Args: cobra.NoArgs,
		RunE: e.runServe,
	}
}

func (e *Extension) runServe(_ *cobra.Command, _ []string) error {
	log.Event("core:serve", "start").Write(nil)
	err := mcp.Serve(e.ctx)
	log.Event("core:serve", "stop").Write(err)
	return err
}
