package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arbkit/arbitrum-mcp-tools/internal/config"
	"github.com/arbkit/arbitrum-mcp-tools/internal/mcpserver"
)

var serveMCP = mcpserver.Serve

func init() {
	rootCmd.AddCommand(newServeCmd())
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdio",
		Long: `Runs the MCP server on standard input and output. Configuration comes
from the environment: ALCHEMY_API_KEY is required, ARB_MCP_NETWORK selects
the network, and at most one of STYLUS_PRIVATE_KEY, STYLUS_PRIVATE_KEY_PATH
or STYLUS_KEYSTORE_PATH enables write operations.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			return serveMCP(cfg)
		},
	}
}
