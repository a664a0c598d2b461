package chain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNoExplorerAPIKey is returned when an explorer-backed tool runs
// without ARBISCAN_API_KEY set.
var ErrNoExplorerAPIKey = errors.New("ARBISCAN_API_KEY is not set")

// ErrNoExplorer is returned for networks without a block explorer API.
var ErrNoExplorer = errors.New("network has no block explorer API")

// Explorer queries a block explorer's contract endpoints (Arbiscan and its
// testnet variants).
type Explorer struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewExplorer returns an explorer client. baseURL may be empty for
// networks without an explorer; apiKey may be empty when the key is not
// configured — both conditions surface as typed errors at call time.
func NewExplorer(baseURL string, apiKey string) *Explorer {
	return &Explorer{
		baseURL: strings.TrimSpace(baseURL),
		apiKey:  strings.TrimSpace(apiKey),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type explorerResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

func (e *Explorer) get(ctx context.Context, action string, address string) (json.RawMessage, error) {
	if e.baseURL == "" {
		return nil, ErrNoExplorer
	}

	if e.apiKey == "" {
		return nil, ErrNoExplorerAPIKey
	}

	query := url.Values{}
	query.Set("module", "contract")
	query.Set("action", action)
	query.Set("address", address)
	query.Set("apikey", e.apiKey)

	requestURL := e.baseURL + "?" + query.Encode()

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build explorer request: %w", err)
	}

	httpResponse, err := e.httpClient.Do(httpRequest)
	if err != nil {
		return nil, fmt.Errorf("call explorer: %w", err)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("call explorer: unexpected status %d", httpResponse.StatusCode)
	}

	response := explorerResponse{}
	if err := json.NewDecoder(httpResponse.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode explorer response: %w", err)
	}

	if response.Status != "1" {
		return nil, fmt.Errorf("explorer rejected %s for %s: %s", action, address, response.Message)
	}

	return response.Result, nil
}

// ContractABI returns the verified ABI for a contract address.
func (e *Explorer) ContractABI(ctx context.Context, address string) (string, error) {
	result, err := e.get(ctx, "getabi", address)
	if err != nil {
		return "", err
	}

	abi := ""
	if err := json.Unmarshal(result, &abi); err != nil {
		return "", fmt.Errorf("decode contract abi: %w", err)
	}

	return abi, nil
}

// ContractSource returns the verified source records for a contract
// address.
func (e *Explorer) ContractSource(ctx context.Context, address string) ([]map[string]any, error) {
	result, err := e.get(ctx, "getsourcecode", address)
	if err != nil {
		return nil, err
	}

	sources := []map[string]any{}
	if err := json.Unmarshal(result, &sources); err != nil {
		return nil, fmt.Errorf("decode contract source: %w", err)
	}

	return sources, nil
}
