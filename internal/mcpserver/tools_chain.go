package mcpserver

import (
	"context"
	"fmt"
	"math/big"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/arbkit/arbitrum-mcp-tools/internal/chain"
)

func (t *toolset) registerChainTools(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("get_chain_info",
		mcp.WithDescription("Get the connected Arbitrum network's name, chain id and latest block number."),
	), t.handleGetChainInfo)

	s.AddTool(mcp.NewTool("get_balance",
		mcp.WithDescription("Get the ETH balance of an address in wei and ether."),
		mcp.WithString("address", mcp.Required(), mcp.Description("Account address (0x...)")),
	), t.handleGetBalance)

	s.AddTool(mcp.NewTool("get_latest_block",
		mcp.WithDescription("Get the latest block with transaction hashes."),
	), t.handleGetLatestBlock)

	s.AddTool(mcp.NewTool("get_block_by_number",
		mcp.WithDescription("Get a block by number."),
		mcp.WithNumber("number", mcp.Required(), mcp.Description("Block number")),
	), t.handleGetBlockByNumber)

	s.AddTool(mcp.NewTool("get_transaction",
		mcp.WithDescription("Get a transaction by hash."),
		mcp.WithString("hash", mcp.Required(), mcp.Description("Transaction hash (0x...)")),
	), t.handleGetTransaction)

	s.AddTool(mcp.NewTool("get_transaction_receipt",
		mcp.WithDescription("Get a transaction receipt, including status, gas used and logs."),
		mcp.WithString("hash", mcp.Required(), mcp.Description("Transaction hash (0x...)")),
	), t.handleGetTransactionReceipt)

	s.AddTool(mcp.NewTool("get_gas_price",
		mcp.WithDescription("Get the current gas price in wei and gwei."),
	), t.handleGetGasPrice)

	s.AddTool(mcp.NewTool("estimate_gas",
		mcp.WithDescription("Estimate the gas needed for a transaction."),
		mcp.WithString("to", mcp.Required(), mcp.Description("Recipient address (0x...)")),
		mcp.WithString("from", mcp.Description("Sender address (0x...)")),
		mcp.WithString("data", mcp.Description("Calldata as hex (0x...)")),
		mcp.WithString("value", mcp.Description("Value in wei, decimal")),
	), t.handleEstimateGas)

	s.AddTool(mcp.NewTool("call_contract",
		mcp.WithDescription("Execute a read-only contract call with raw calldata and return the raw result."),
		mcp.WithString("to", mcp.Required(), mcp.Description("Contract address (0x...)")),
		mcp.WithString("data", mcp.Required(), mcp.Description("Calldata as hex (0x...)")),
		mcp.WithString("from", mcp.Description("Caller address (0x...)")),
	), t.handleCallContract)

	s.AddTool(mcp.NewTool("get_code",
		mcp.WithDescription("Get the bytecode at an address; reports whether a contract is deployed there."),
		mcp.WithString("address", mcp.Required(), mcp.Description("Address to inspect (0x...)")),
	), t.handleGetCode)

	s.AddTool(mcp.NewTool("get_contract_events",
		mcp.WithDescription("Query contract event logs. Without an explicit block range, recent blocks are scanned automatically."),
		mcp.WithString("address", mcp.Required(), mcp.Description("Contract address (0x...)")),
		mcp.WithArray("topics", mcp.Description("Topic filters, first entry is the event signature hash")),
		mcp.WithNumber("from_block", mcp.Description("First block to scan")),
		mcp.WithNumber("to_block", mcp.Description("Last block to scan")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of logs to return (default 100)")),
	), t.handleGetContractEvents)

	s.AddTool(mcp.NewTool("get_contract_abi",
		mcp.WithDescription("Get the verified ABI of a contract from the block explorer. Requires ARBISCAN_API_KEY."),
		mcp.WithString("address", mcp.Required(), mcp.Description("Contract address (0x...)")),
	), t.handleGetContractABI)

	s.AddTool(mcp.NewTool("get_contract_source",
		mcp.WithDescription("Get the verified source of a contract from the block explorer. Requires ARBISCAN_API_KEY."),
		mcp.WithString("address", mcp.Required(), mcp.Description("Contract address (0x...)")),
	), t.handleGetContractSource)
}

func (t *toolset) handleGetChainInfo(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	chainID, err := t.client.ChainID(ctx)
	if err != nil {
		return errorResult(err)
	}

	blockNumber, err := t.client.BlockNumber(ctx)
	if err != nil {
		return errorResult(err)
	}

	return textResult(map[string]any{
		"network":     t.network.Name,
		"networkId":   t.network.ID,
		"chainId":     chainID.Uint64(),
		"latestBlock": blockNumber,
	})
}

func (t *toolset) handleGetBalance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	address, err := addressArg(req.GetArguments(), "address")
	if err != nil {
		return errorResult(err)
	}

	balance, err := t.client.GetBalance(ctx, address)
	if err != nil {
		return errorResult(err)
	}

	return textResult(map[string]any{
		"address": address,
		"wei":     balance.String(),
		"ether":   weiToEther(balance),
	})
}

func (t *toolset) handleGetLatestBlock(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	block, err := t.client.GetBlockByNumber(ctx, nil)
	if err != nil {
		return errorResult(err)
	}

	return textResult(block)
}

func (t *toolset) handleGetBlockByNumber(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	number, err := uintArg(req.GetArguments(), "number")
	if err != nil {
		return errorResult(err)
	}

	if number == nil {
		return errorResult(fmt.Errorf("number is required"))
	}

	block, err := t.client.GetBlockByNumber(ctx, number)
	if err != nil {
		return errorResult(err)
	}

	return textResult(block)
}

func (t *toolset) handleGetTransaction(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	hash, err := hashArg(req.GetArguments(), "hash")
	if err != nil {
		return errorResult(err)
	}

	transaction, err := t.client.GetTransactionByHash(ctx, hash)
	if err != nil {
		return errorResult(err)
	}

	return textResult(transaction)
}

func (t *toolset) handleGetTransactionReceipt(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	hash, err := hashArg(req.GetArguments(), "hash")
	if err != nil {
		return errorResult(err)
	}

	receipt, err := t.client.GetTransactionReceipt(ctx, hash)
	if err != nil {
		return errorResult(err)
	}

	return textResult(receipt)
}

func (t *toolset) handleGetGasPrice(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gasPrice, err := t.client.GasPrice(ctx)
	if err != nil {
		return errorResult(err)
	}

	gwei := new(big.Float).Quo(new(big.Float).SetInt(gasPrice), big.NewFloat(1e9))

	return textResult(map[string]any{
		"wei":  gasPrice.String(),
		"gwei": gwei.Text('f', 9),
	})
}

func (t *toolset) handleEstimateGas(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	to, err := addressArg(args, "to")
	if err != nil {
		return errorResult(err)
	}

	msg := chain.CallMsg{
		To:   to,
		From: stringArg(args, "from"),
		Data: stringArg(args, "data"),
	}

	if rawValue := stringArg(args, "value"); rawValue != "" {
		value, ok := new(big.Int).SetString(rawValue, 10)
		if !ok {
			return errorResult(fmt.Errorf("value must be a decimal wei amount"))
		}

		msg.Value = value
	}

	estimate, err := t.client.EstimateGas(ctx, msg)
	if err != nil {
		return errorResult(err)
	}

	return textResult(map[string]any{"gas": estimate})
}

func (t *toolset) handleCallContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	to, err := addressArg(args, "to")
	if err != nil {
		return errorResult(err)
	}

	data, err := requiredStringArg(args, "data")
	if err != nil {
		return errorResult(err)
	}

	result, err := t.client.Call(ctx, chain.CallMsg{
		To:   to,
		From: stringArg(args, "from"),
		Data: data,
	})
	if err != nil {
		return errorResult(err)
	}

	return textResult(map[string]any{"result": result})
}

func (t *toolset) handleGetCode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	address, err := addressArg(req.GetArguments(), "address")
	if err != nil {
		return errorResult(err)
	}

	code, err := t.client.GetCode(ctx, address)
	if err != nil {
		return errorResult(err)
	}

	return textResult(map[string]any{
		"address":    address,
		"isContract": code != "0x" && code != "",
		"bytecode":   code,
	})
}

func (t *toolset) handleGetContractEvents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	address, err := addressArg(args, "address")
	if err != nil {
		return errorResult(err)
	}

	fromBlock, err := uintArg(args, "from_block")
	if err != nil {
		return errorResult(err)
	}

	toBlock, err := uintArg(args, "to_block")
	if err != nil {
		return errorResult(err)
	}

	result, err := t.client.QueryEvents(ctx, chain.EventQuery{
		Address:   address,
		Topics:    stringSliceArg(args, "topics"),
		FromBlock: fromBlock,
		ToBlock:   toBlock,
		Limit:     intArgDefault(args, "limit", 100),
	})
	if err != nil {
		return errorResult(err)
	}

	return textResult(result)
}

func (t *toolset) handleGetContractABI(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	address, err := addressArg(req.GetArguments(), "address")
	if err != nil {
		return errorResult(err)
	}

	abi, err := t.explorer.ContractABI(ctx, address)
	if err != nil {
		return errorResult(err)
	}

	return mcp.NewToolResultText(abi), nil
}

func (t *toolset) handleGetContractSource(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	address, err := addressArg(req.GetArguments(), "address")
	if err != nil {
		return errorResult(err)
	}

	sources, err := t.explorer.ContractSource(ctx, address)
	if err != nil {
		return errorResult(err)
	}

	return textResult(sources)
}

// weiToEther renders a wei amount as a decimal ether string.
func weiToEther(wei *big.Int) string {
	ether := new(big.Float).Quo(new(big.Float).SetInt(wei), big.NewFloat(1e18))
	return ether.Text('f', 18)
}
