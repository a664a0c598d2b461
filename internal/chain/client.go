package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"
)

// Client is a minimal Ethereum JSON-RPC client. Every tool call is an
// independent request; there is no connection state to manage.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient returns a client for the given RPC endpoint.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

// RPCError is a provider-side JSON-RPC error.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

func (c *Client) call(ctx context.Context, method string, params []any, result any) error {
	if params == nil {
		params = []any{}
	}

	payload, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("encode %s request: %w", method, err)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}

	httpRequest.Header.Set("Content-Type", "application/json")

	httpResponse, err := c.httpClient.Do(httpRequest)
	if err != nil {
		return fmt.Errorf("call %s: %w", method, err)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode != http.StatusOK {
		return fmt.Errorf("call %s: unexpected status %d", method, httpResponse.StatusCode)
	}

	response := rpcResponse{}
	if err := json.NewDecoder(httpResponse.Body).Decode(&response); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}

	if response.Error != nil {
		return fmt.Errorf("call %s: %w", method, response.Error)
	}

	if result == nil {
		return nil
	}

	if err := json.Unmarshal(response.Result, result); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}

	return nil
}

// ChainID returns the endpoint's chain id.
func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	quantity := ""
	if err := c.call(ctx, "eth_chainId", nil, &quantity); err != nil {
		return nil, err
	}

	return parseQuantity(quantity)
}

// BlockNumber returns the latest block number.
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	quantity := ""
	if err := c.call(ctx, "eth_blockNumber", nil, &quantity); err != nil {
		return 0, err
	}

	number, err := parseQuantity(quantity)
	if err != nil {
		return 0, err
	}

	return number.Uint64(), nil
}

// GetBalance returns an address's latest balance in wei.
func (c *Client) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	quantity := ""
	if err := c.call(ctx, "eth_getBalance", []any{address, "latest"}, &quantity); err != nil {
		return nil, err
	}

	return parseQuantity(quantity)
}

// GetBlockByNumber returns a block, with transaction hashes only. A nil
// number means the latest block.
func (c *Client) GetBlockByNumber(ctx context.Context, number *uint64) (map[string]any, error) {
	tag := "latest"
	if number != nil {
		tag = formatQuantity(new(big.Int).SetUint64(*number))
	}

	block := map[string]any{}
	if err := c.call(ctx, "eth_getBlockByNumber", []any{tag, false}, &block); err != nil {
		return nil, err
	}

	if len(block) == 0 {
		return nil, fmt.Errorf("block %s not found", tag)
	}

	return block, nil
}

// GetTransactionByHash returns a transaction by hash.
func (c *Client) GetTransactionByHash(ctx context.Context, hash string) (map[string]any, error) {
	transaction := map[string]any{}
	if err := c.call(ctx, "eth_getTransactionByHash", []any{hash}, &transaction); err != nil {
		return nil, err
	}

	if len(transaction) == 0 {
		return nil, fmt.Errorf("transaction %s not found", hash)
	}

	return transaction, nil
}

// GetTransactionReceipt returns a transaction's receipt.
func (c *Client) GetTransactionReceipt(ctx context.Context, hash string) (map[string]any, error) {
	receipt := map[string]any{}
	if err := c.call(ctx, "eth_getTransactionReceipt", []any{hash}, &receipt); err != nil {
		return nil, err
	}

	if len(receipt) == 0 {
		return nil, fmt.Errorf("receipt for %s not found (transaction may be pending)", hash)
	}

	return receipt, nil
}

// GasPrice returns the current gas price in wei.
func (c *Client) GasPrice(ctx context.Context) (*big.Int, error) {
	quantity := ""
	if err := c.call(ctx, "eth_gasPrice", nil, &quantity); err != nil {
		return nil, err
	}

	return parseQuantity(quantity)
}

// CallMsg describes an eth_call / eth_estimateGas message.
type CallMsg struct {
	From  string
	To    string
	Data  string
	Value *big.Int
}

func (m CallMsg) toParam() map[string]any {
	param := map[string]any{"to": m.To}

	if m.From != "" {
		param["from"] = m.From
	}

	if m.Data != "" {
		param["data"] = m.Data
	}

	if m.Value != nil && m.Value.Sign() > 0 {
		param["value"] = formatQuantity(m.Value)
	}

	return param
}

// EstimateGas estimates the gas needed for a message.
func (c *Client) EstimateGas(ctx context.Context, msg CallMsg) (uint64, error) {
	quantity := ""
	if err := c.call(ctx, "eth_estimateGas", []any{msg.toParam()}, &quantity); err != nil {
		return 0, err
	}

	estimate, err := parseQuantity(quantity)
	if err != nil {
		return 0, err
	}

	return estimate.Uint64(), nil
}

// Call executes a read-only contract call and returns the raw hex result.
func (c *Client) Call(ctx context.Context, msg CallMsg) (string, error) {
	result := ""
	if err := c.call(ctx, "eth_call", []any{msg.toParam(), "latest"}, &result); err != nil {
		return "", err
	}

	return result, nil
}

// GetCode returns the bytecode deployed at an address; "0x" means no
// contract lives there.
func (c *Client) GetCode(ctx context.Context, address string) (string, error) {
	code := ""
	if err := c.call(ctx, "eth_getCode", []any{address, "latest"}, &code); err != nil {
		return "", err
	}

	return code, nil
}

// FilterQuery selects logs for GetLogs.
type FilterQuery struct {
	FromBlock uint64
	ToBlock   uint64
	Address   string
	Topics    []string
}

// GetLogs returns logs matching the query.
func (c *Client) GetLogs(ctx context.Context, query FilterQuery) ([]map[string]any, error) {
	filter := map[string]any{
		"fromBlock": formatQuantity(new(big.Int).SetUint64(query.FromBlock)),
		"toBlock":   formatQuantity(new(big.Int).SetUint64(query.ToBlock)),
	}

	if query.Address != "" {
		filter["address"] = query.Address
	}

	if len(query.Topics) > 0 {
		topics := make([]any, 0, len(query.Topics))
		for _, topic := range query.Topics {
			topics = append(topics, topic)
		}

		filter["topics"] = topics
	}

	logs := []map[string]any{}
	if err := c.call(ctx, "eth_getLogs", []any{filter}, &logs); err != nil {
		return nil, err
	}

	return logs, nil
}

// parseQuantity decodes a 0x-prefixed hex quantity.
func parseQuantity(quantity string) (*big.Int, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(quantity), "0x")
	if trimmed == "" {
		return nil, fmt.Errorf("invalid hex quantity %q", quantity)
	}

	value, ok := new(big.Int).SetString(trimmed, 16)
	if !ok {
		return nil, fmt.Errorf("invalid hex quantity %q", quantity)
	}

	return value, nil
}

// formatQuantity encodes a quantity as minimal 0x-prefixed hex.
func formatQuantity(value *big.Int) string {
	return "0x" + value.Text(16)
}
