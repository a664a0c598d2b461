package chain

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logRange struct {
	from uint64
	to   uint64
}

// newLogsServer simulates a provider with a latest block, a per-request
// range limit, and one log per scanned window.
func newLogsServer(t *testing.T, latest uint64, maxSpan uint64) (*httptest.Server, *[]logRange) {
	t.Helper()

	ranges := &[]logRange{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := rpcCall{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&call))

		respond := func(result any) {
			require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
				"jsonrpc": "2.0", "id": 1, "result": result,
			}))
		}

		switch call.Method {
		case "eth_blockNumber":
			respond(formatQuantity(new(big.Int).SetUint64(latest)))
		case "eth_getLogs":
			filter, ok := call.Params[0].(map[string]any)
			require.True(t, ok)

			from := mustParseHex(t, filter["fromBlock"].(string))
			to := mustParseHex(t, filter["toBlock"].(string))

			if maxSpan > 0 && to-from+1 > maxSpan {
				require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
					"jsonrpc": "2.0", "id": 1,
					"error": map[string]any{"code": -32602, "message": "block range too large"},
				}))
				return
			}

			*ranges = append(*ranges, logRange{from: from, to: to})
			respond([]any{map[string]any{
				"blockNumber": formatQuantity(new(big.Int).SetUint64(to)),
			}})
		default:
			t.Fatalf("unexpected rpc method %q", call.Method)
		}
	}))
	t.Cleanup(server.Close)

	return server, ranges
}

func mustParseHex(t *testing.T, quantity string) uint64 {
	t.Helper()

	value, err := parseQuantity(quantity)
	require.NoError(t, err)

	return value.Uint64()
}

func TestQueryEventsExplicitRangeIsSingleRequest(t *testing.T) {
	server, ranges := newLogsServer(t, 1_000_000, 0)
	client := NewClient(server.URL)

	from, to := uint64(100), uint64(200)
	result, err := client.QueryEvents(context.Background(), EventQuery{
		Address:   "0x3333333333333333333333333333333333333333",
		FromBlock: &from,
		ToBlock:   &to,
	})
	require.NoError(t, err)

	assert.Equal(t, from, result.FromBlock)
	assert.Equal(t, to, result.ToBlock)
	require.Len(t, *ranges, 1)
	assert.Equal(t, logRange{from: 100, to: 200}, (*ranges)[0])
}

func TestQueryEventsWalksBackwardsFromLatest(t *testing.T) {
	server, ranges := newLogsServer(t, 1_000_000, 0)
	client := NewClient(server.URL)

	result, err := client.QueryEvents(context.Background(), EventQuery{
		Address: "0x3333333333333333333333333333333333333333",
		Limit:   1000,
	})
	require.NoError(t, err)

	// One log per 10k-block window over the 100k cap.
	assert.Len(t, result.Logs, 10)
	assert.Equal(t, uint64(1_000_000), result.ToBlock)
	assert.Equal(t, uint64(900_001), result.FromBlock)

	require.NotEmpty(t, *ranges)
	first := (*ranges)[0]
	assert.Equal(t, uint64(1_000_000), first.to)
	assert.Equal(t, uint64(990_001), first.from)

	last := (*ranges)[len(*ranges)-1]
	assert.Equal(t, uint64(900_001), last.from)
}

func TestQueryEventsStopsAtLimit(t *testing.T) {
	server, ranges := newLogsServer(t, 1_000_000, 0)
	client := NewClient(server.URL)

	result, err := client.QueryEvents(context.Background(), EventQuery{
		Address: "0x3333333333333333333333333333333333333333",
		Limit:   3,
	})
	require.NoError(t, err)

	assert.Len(t, result.Logs, 3)
	assert.Len(t, *ranges, 3)
}

func TestQueryEventsHalvesWindowOnRangeErrors(t *testing.T) {
	server, ranges := newLogsServer(t, 1_000_000, 5_000)
	client := NewClient(server.URL)

	result, err := client.QueryEvents(context.Background(), EventQuery{
		Address: "0x3333333333333333333333333333333333333333",
		Limit:   2,
	})
	require.NoError(t, err)
	assert.Len(t, result.Logs, 2)

	for _, scanned := range *ranges {
		span := scanned.to - scanned.from + 1
		assert.LessOrEqual(t, span, uint64(5_000))
	}
}

func TestQueryEventsRespectsExplicitFloor(t *testing.T) {
	server, ranges := newLogsServer(t, 50_000, 0)
	client := NewClient(server.URL)

	from := uint64(45_000)
	result, err := client.QueryEvents(context.Background(), EventQuery{
		Address:   "0x3333333333333333333333333333333333333333",
		FromBlock: &from,
		Limit:     1000,
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(45_000), result.FromBlock)
	for _, scanned := range *ranges {
		assert.GreaterOrEqual(t, scanned.from, uint64(45_000))
	}
}

func TestIsRangeLimitError(t *testing.T) {
	assert.True(t, isRangeLimitError(errors.New("rpc error -32602: block range too large")))
	assert.True(t, isRangeLimitError(errors.New("query returned more than 10000 results")))
	assert.False(t, isRangeLimitError(errors.New("header not found")))
}

func TestQueryEventsPropagatesOtherErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := rpcCall{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&call))

		if call.Method == "eth_blockNumber" {
			require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
				"jsonrpc": "2.0", "id": 1, "result": "0x100",
			}))
			return
		}

		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0", "id": 1,
			"error": map[string]any{"code": -32000, "message": "internal failure"},
		}))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL)

	_, err := client.QueryEvents(context.Background(), EventQuery{Address: "0x33"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "internal failure"))
}
