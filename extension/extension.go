// Package extension provides the plugin architecture for globfs. Extensions
// bundle related commands and MCP tools and register at init time, so a
// feature can be added without touching the core.
package extension

import "github.com/spf13/cobra"

// Extension defines the contract for globfs extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command

	// MCPTools returns MCP tools to register with the server, on top of
	// the built-in matching tools.
	MCPTools() []MCPTool
}

// Initializable extensions receive the shared Context before any command
// runs.
type Initializable interface {
	Extension
	Init(ctx Context) error
}
