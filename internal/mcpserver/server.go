// Package mcpserver assembles the MCP server exposed by the serve command:
// chain query tools backed by JSON-RPC, explorer lookups, and Stylus
// toolchain wrappers.
package mcpserver

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/arbkit/arbitrum-mcp-tools/internal/app"
	"github.com/arbkit/arbitrum-mcp-tools/internal/chain"
	"github.com/arbkit/arbitrum-mcp-tools/internal/config"
	"github.com/arbkit/arbitrum-mcp-tools/internal/stylus"
)

// toolset carries the collaborators tool handlers delegate to.
type toolset struct {
	network  chain.Network
	endpoint string
	client   *chain.Client
	explorer *chain.Explorer
	runner   *stylus.Runner
}

// New builds the MCP server from the environment configuration.
func New(cfg *config.Config) (*server.MCPServer, error) {
	network, err := chain.FindNetwork(cfg.Network)
	if err != nil {
		return nil, err
	}

	endpoint := network.Endpoint(cfg.AlchemyAPIKey)

	tools := &toolset{
		network:  network,
		endpoint: endpoint,
		client:   chain.NewClient(endpoint),
		explorer: chain.NewExplorer(network.ExplorerAPIURL, cfg.ArbiscanAPIKey),
		runner:   stylus.NewRunner(cfg.SignerArgs()),
	}

	return newServer(tools), nil
}

func newServer(tools *toolset) *server.MCPServer {
	mcpServer := server.NewMCPServer(
		app.Name,
		app.Version,
		server.WithToolCapabilities(true),
	)

	tools.registerChainTools(mcpServer)
	tools.registerStylusTools(mcpServer)

	return mcpServer
}

// Serve runs the MCP server over stdio until the client disconnects.
func Serve(cfg *config.Config) error {
	mcpServer, err := New(cfg)
	if err != nil {
		return err
	}

	return server.ServeStdio(mcpServer)
}

// textResult marshals a value as indented JSON for the tool response.
func textResult(value any) (*mcp.CallToolResult, error) {
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(payload)), nil
}

// errorResult reports a failure in-band: tool failures are data for the
// assistant, not protocol errors.
func errorResult(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
