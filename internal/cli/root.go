package cli

import (
	"github.com/spf13/cobra"

	"github.com/arbkit/arbitrum-mcp-tools/internal/app"
	"github.com/arbkit/arbitrum-mcp-tools/internal/platform"
)

var rootCmd = &cobra.Command{
	Use:   "arbitrum-mcp-tools",
	Short: "Arbitrum MCP tools: chain queries and Stylus development over MCP",
	Long: `arbitrum-mcp-tools exposes Arbitrum chain queries, contract inspection and
the Stylus toolchain as MCP (Model Context Protocol) tools, and wires the
server into AI coding tools (Cursor, Claude Desktop, Codex CLI, etc.)
by editing their configuration files.`,
	Version: app.Version,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// newOperations builds the platform operations used by install, uninstall
// and list. A var so tests can pin the registry or resolver.
var newOperations = func() *platform.Operations {
	return platform.NewOperations(platform.DefaultRegistry(), platform.NewResolver())
}

func Execute() error {
	return rootCmd.Execute()
}
