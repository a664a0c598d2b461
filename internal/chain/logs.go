package chain

import (
	"context"
	"strings"
)

const (
	// eventWindowBlocks is the span of one eth_getLogs request when the
	// caller gives no explicit range.
	eventWindowBlocks uint64 = 10_000

	// eventScanCapBlocks bounds the total span walked backwards from the
	// latest block, so an auto-discovery query stays cheap on providers
	// that bill per request.
	eventScanCapBlocks uint64 = 100_000
)

// EventQuery selects contract events. FromBlock/ToBlock are optional; when
// both are nil the scan walks backwards from the latest block.
type EventQuery struct {
	Address   string
	Topics    []string
	FromBlock *uint64
	ToBlock   *uint64
	Limit     int
}

// EventResult carries the collected logs and the block range actually
// scanned, so callers can tell a quiet contract from a short scan.
type EventResult struct {
	Logs      []map[string]any `json:"logs"`
	FromBlock uint64           `json:"fromBlock"`
	ToBlock   uint64           `json:"toBlock"`
}

// QueryEvents fetches contract events. An explicit range becomes a single
// eth_getLogs call. Without one, fixed-size windows are scanned backwards
// from the latest block up to a hard cap, halving the window whenever the
// provider rejects the range as too large, and stopping early once Limit
// logs have been collected.
func (c *Client) QueryEvents(ctx context.Context, query EventQuery) (*EventResult, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 100
	}

	if query.FromBlock != nil && query.ToBlock != nil {
		logs, err := c.GetLogs(ctx, FilterQuery{
			FromBlock: *query.FromBlock,
			ToBlock:   *query.ToBlock,
			Address:   query.Address,
			Topics:    query.Topics,
		})
		if err != nil {
			return nil, err
		}

		if len(logs) > limit {
			logs = logs[:limit]
		}

		return &EventResult{Logs: logs, FromBlock: *query.FromBlock, ToBlock: *query.ToBlock}, nil
	}

	latest, err := c.BlockNumber(ctx)
	if err != nil {
		return nil, err
	}

	if query.ToBlock != nil && *query.ToBlock < latest {
		latest = *query.ToBlock
	}

	floor := uint64(0)
	if query.FromBlock != nil {
		floor = *query.FromBlock
	} else if latest+1 > eventScanCapBlocks {
		floor = latest - eventScanCapBlocks + 1
	}

	result := &EventResult{Logs: []map[string]any{}, ToBlock: latest}
	window := eventWindowBlocks
	cursor := latest

	for {
		from := floor
		if cursor >= window && cursor-window+1 > floor {
			from = cursor - window + 1
		}

		logs, err := c.GetLogs(ctx, FilterQuery{
			FromBlock: from,
			ToBlock:   cursor,
			Address:   query.Address,
			Topics:    query.Topics,
		})
		if err != nil {
			if isRangeLimitError(err) && window > 1 {
				window /= 2
				continue
			}

			return nil, err
		}

		result.Logs = append(result.Logs, logs...)
		result.FromBlock = from

		if len(result.Logs) >= limit {
			result.Logs = result.Logs[:limit]
			break
		}

		if from <= floor {
			break
		}

		cursor = from - 1
	}

	return result, nil
}

// isRangeLimitError recognizes the provider errors that mean "narrow the
// block range", which vary in wording across RPC providers.
func isRangeLimitError(err error) bool {
	message := strings.ToLower(err.Error())

	for _, marker := range []string{
		"block range",
		"query returned more than",
		"too many results",
		"response size exceeded",
	} {
		if strings.Contains(message, marker) {
			return true
		}
	}

	return false
}
