package chain

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rpcCall struct {
	Method string `json:"method"`
	Params []any  `json:"params"`
}

// newRPCServer serves canned results per method and records calls.
func newRPCServer(t *testing.T, results map[string]any) (*httptest.Server, *[]rpcCall) {
	t.Helper()

	calls := &[]rpcCall{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := rpcCall{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&call))
		*calls = append(*calls, call)

		result, found := results[call.Method]
		if !found {
			t.Fatalf("unexpected rpc method %q", call.Method)
		}

		if rpcErr, isErr := result.(*RPCError); isErr {
			require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
				"jsonrpc": "2.0", "id": 1, "error": rpcErr,
			}))
			return
		}

		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0", "id": 1, "result": result,
		}))
	}))
	t.Cleanup(server.Close)

	return server, calls
}

func TestClientChainID(t *testing.T) {
	server, _ := newRPCServer(t, map[string]any{"eth_chainId": "0xa4b1"})
	client := NewClient(server.URL)

	chainID, err := client.ChainID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(42161), chainID.Uint64())
}

func TestClientGetBalance(t *testing.T) {
	server, calls := newRPCServer(t, map[string]any{"eth_getBalance": "0xde0b6b3a7640000"})
	client := NewClient(server.URL)

	balance, err := client.GetBalance(context.Background(), "0x1111111111111111111111111111111111111111")
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000", balance.String())

	require.Len(t, *calls, 1)
	assert.Equal(t, "eth_getBalance", (*calls)[0].Method)
	assert.Equal(t, []any{"0x1111111111111111111111111111111111111111", "latest"}, (*calls)[0].Params)
}

func TestClientGetBlockByNumberLatest(t *testing.T) {
	server, calls := newRPCServer(t, map[string]any{
		"eth_getBlockByNumber": map[string]any{"number": "0x10", "hash": "0xabc"},
	})
	client := NewClient(server.URL)

	block, err := client.GetBlockByNumber(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "0xabc", block["hash"])

	require.Len(t, *calls, 1)
	assert.Equal(t, []any{"latest", false}, (*calls)[0].Params)
}

func TestClientGetBlockByNumberExplicit(t *testing.T) {
	server, calls := newRPCServer(t, map[string]any{
		"eth_getBlockByNumber": map[string]any{"number": "0x64"},
	})
	client := NewClient(server.URL)

	number := uint64(100)
	_, err := client.GetBlockByNumber(context.Background(), &number)
	require.NoError(t, err)

	require.Len(t, *calls, 1)
	assert.Equal(t, []any{"0x64", false}, (*calls)[0].Params)
}

func TestClientTransactionNotFound(t *testing.T) {
	server, _ := newRPCServer(t, map[string]any{"eth_getTransactionByHash": nil})
	client := NewClient(server.URL)

	_, err := client.GetTransactionByHash(context.Background(), "0xdead")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestClientEstimateGas(t *testing.T) {
	server, calls := newRPCServer(t, map[string]any{"eth_estimateGas": "0x5208"})
	client := NewClient(server.URL)

	estimate, err := client.EstimateGas(context.Background(), CallMsg{
		From:  "0x1111111111111111111111111111111111111111",
		To:    "0x2222222222222222222222222222222222222222",
		Value: big.NewInt(1),
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(21000), estimate)

	require.Len(t, *calls, 1)
	param, ok := (*calls)[0].Params[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "0x1", param["value"])
	assert.NotContains(t, param, "data")
}

func TestClientSurfacesRPCErrors(t *testing.T) {
	server, _ := newRPCServer(t, map[string]any{
		"eth_gasPrice": &RPCError{Code: -32000, Message: "header not found"},
	})
	client := NewClient(server.URL)

	_, err := client.GasPrice(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header not found")
}

func TestClientGetLogsBuildsFilter(t *testing.T) {
	server, calls := newRPCServer(t, map[string]any{
		"eth_getLogs": []any{map[string]any{"blockNumber": "0x10"}},
	})
	client := NewClient(server.URL)

	logs, err := client.GetLogs(context.Background(), FilterQuery{
		FromBlock: 16,
		ToBlock:   32,
		Address:   "0x3333333333333333333333333333333333333333",
		Topics:    []string{"0xddf252ad"},
	})
	require.NoError(t, err)
	require.Len(t, logs, 1)

	require.Len(t, *calls, 1)
	filter, ok := (*calls)[0].Params[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "0x10", filter["fromBlock"])
	assert.Equal(t, "0x20", filter["toBlock"])
	assert.Equal(t, "0x3333333333333333333333333333333333333333", filter["address"])
}

func TestParseQuantityRejectsGarbage(t *testing.T) {
	for _, quantity := range []string{"", "0x", "0xzz", "nope"} {
		_, err := parseQuantity(quantity)
		assert.Error(t, err, "quantity %q", quantity)
	}
}

func TestParseQuantityRoundTrip(t *testing.T) {
	value, err := parseQuantity("0x1b4")
	require.NoError(t, err)
	assert.Equal(t, int64(436), value.Int64())
	assert.Equal(t, "0x1b4", formatQuantity(value))
}
