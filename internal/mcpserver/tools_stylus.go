package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/arbkit/arbitrum-mcp-tools/internal/stylus"
)

func (t *toolset) registerStylusTools(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("stylus_new_project",
		mcp.WithDescription("Create a new Stylus contract project from the cargo stylus template."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Project name")),
		mcp.WithString("directory", mcp.Description("Parent directory for the new project (default current directory)")),
	), t.handleStylusNewProject)

	s.AddTool(mcp.NewTool("stylus_export_abi",
		mcp.WithDescription("Export the Solidity ABI of a Stylus project."),
		mcp.WithString("project_dir", mcp.Required(), mcp.Description("Path to the Stylus project")),
		mcp.WithBoolean("json", mcp.Description("Emit the ABI as JSON instead of a Solidity interface")),
	), t.handleStylusExportABI)

	s.AddTool(mcp.NewTool("stylus_check",
		mcp.WithDescription("Check that a Stylus project compiles to a valid, activatable WASM."),
		mcp.WithString("project_dir", mcp.Required(), mcp.Description("Path to the Stylus project")),
	), t.handleStylusCheck)

	s.AddTool(mcp.NewTool("stylus_deploy",
		mcp.WithDescription("Deploy a Stylus contract. With estimate_only no transaction is sent; otherwise a configured signer is required."),
		mcp.WithString("project_dir", mcp.Required(), mcp.Description("Path to the Stylus project")),
		mcp.WithBoolean("estimate_only", mcp.Description("Only estimate deployment gas")),
	), t.handleStylusDeploy)

	s.AddTool(mcp.NewTool("stylus_verify",
		mcp.WithDescription("Verify that a deployed Stylus contract matches the local project build."),
		mcp.WithString("project_dir", mcp.Required(), mcp.Description("Path to the Stylus project")),
		mcp.WithString("deployment_tx", mcp.Required(), mcp.Description("Deployment transaction hash (0x...)")),
	), t.handleStylusVerify)

	s.AddTool(mcp.NewTool("stylus_activate",
		mcp.WithDescription("Activate a deployed Stylus contract. Requires a configured signer."),
		mcp.WithString("address", mcp.Required(), mcp.Description("Contract address (0x...)")),
	), t.handleStylusActivate)

	s.AddTool(mcp.NewTool("stylus_cache_bid",
		mcp.WithDescription("Place a bid to cache a Stylus contract in the ArbOS wasm cache. Requires a configured signer."),
		mcp.WithString("address", mcp.Required(), mcp.Description("Contract address (0x...)")),
		mcp.WithString("bid", mcp.Required(), mcp.Description("Bid amount in wei")),
	), t.handleStylusCacheBid)

	s.AddTool(mcp.NewTool("stylus_generate_c_bindings",
		mcp.WithDescription("Generate a C header with typed entrypoint declarations from a Stylus project's ABI."),
		mcp.WithString("project_dir", mcp.Required(), mcp.Description("Path to the Stylus project")),
		mcp.WithString("contract_name", mcp.Required(), mcp.Description("Contract name used for the header guard")),
	), t.handleStylusGenerateCBindings)

	s.AddTool(mcp.NewTool("cast_call",
		mcp.WithDescription("Call a read-only contract function by signature using cast."),
		mcp.WithString("address", mcp.Required(), mcp.Description("Contract address (0x...)")),
		mcp.WithString("signature", mcp.Required(), mcp.Description("Function signature, e.g. balanceOf(address)")),
		mcp.WithArray("args", mcp.Description("Function arguments")),
	), t.handleCastCall)

	s.AddTool(mcp.NewTool("cast_send",
		mcp.WithDescription("Send a state-changing contract transaction by signature using cast. Requires a configured signer."),
		mcp.WithString("address", mcp.Required(), mcp.Description("Contract address (0x...)")),
		mcp.WithString("signature", mcp.Required(), mcp.Description("Function signature, e.g. transfer(address,uint256)")),
		mcp.WithArray("args", mcp.Description("Function arguments")),
	), t.handleCastSend)
}

func outputResult(out stylus.Output, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return errorResult(err)
	}

	return textResult(out)
}

func (t *toolset) handleStylusNewProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	name, err := requiredStringArg(args, "name")
	if err != nil {
		return errorResult(err)
	}

	dir := stringArg(args, "directory")
	if dir == "" {
		dir = "."
	}

	return outputResult(t.runner.NewProject(ctx, dir, name))
}

func (t *toolset) handleStylusExportABI(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	projectDir, err := requiredStringArg(args, "project_dir")
	if err != nil {
		return errorResult(err)
	}

	return outputResult(t.runner.ExportABI(ctx, projectDir, boolArg(args, "json")))
}

func (t *toolset) handleStylusCheck(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectDir, err := requiredStringArg(req.GetArguments(), "project_dir")
	if err != nil {
		return errorResult(err)
	}

	return outputResult(t.runner.Check(ctx, projectDir, t.endpoint))
}

func (t *toolset) handleStylusDeploy(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	projectDir, err := requiredStringArg(args, "project_dir")
	if err != nil {
		return errorResult(err)
	}

	return outputResult(t.runner.Deploy(ctx, projectDir, t.endpoint, boolArg(args, "estimate_only")))
}

func (t *toolset) handleStylusVerify(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	projectDir, err := requiredStringArg(args, "project_dir")
	if err != nil {
		return errorResult(err)
	}

	deploymentTx, err := hashArg(args, "deployment_tx")
	if err != nil {
		return errorResult(err)
	}

	return outputResult(t.runner.Verify(ctx, projectDir, t.endpoint, deploymentTx))
}

func (t *toolset) handleStylusActivate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	address, err := addressArg(req.GetArguments(), "address")
	if err != nil {
		return errorResult(err)
	}

	return outputResult(t.runner.Activate(ctx, address, t.endpoint))
}

func (t *toolset) handleStylusCacheBid(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	address, err := addressArg(args, "address")
	if err != nil {
		return errorResult(err)
	}

	bid, err := requiredStringArg(args, "bid")
	if err != nil {
		return errorResult(err)
	}

	return outputResult(t.runner.CacheBid(ctx, address, bid, t.endpoint))
}

func (t *toolset) handleStylusGenerateCBindings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	projectDir, err := requiredStringArg(args, "project_dir")
	if err != nil {
		return errorResult(err)
	}

	contractName, err := requiredStringArg(args, "contract_name")
	if err != nil {
		return errorResult(err)
	}

	header, err := t.runner.GenerateCBindings(ctx, projectDir, contractName)
	if err != nil {
		return errorResult(err)
	}

	return mcp.NewToolResultText(header), nil
}

func (t *toolset) handleCastCall(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	address, err := addressArg(args, "address")
	if err != nil {
		return errorResult(err)
	}

	signature, err := requiredStringArg(args, "signature")
	if err != nil {
		return errorResult(err)
	}

	return outputResult(t.runner.CastCall(ctx, t.endpoint, address, signature, stringSliceArg(args, "args")))
}

func (t *toolset) handleCastSend(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	address, err := addressArg(args, "address")
	if err != nil {
		return errorResult(err)
	}

	signature, err := requiredStringArg(args, "signature")
	if err != nil {
		return errorResult(err)
	}

	return outputResult(t.runner.CastSend(ctx, t.endpoint, address, signature, stringSliceArg(args, "args")))
}
