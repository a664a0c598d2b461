// Package chain talks to Arbitrum JSON-RPC endpoints and block explorer
// APIs on behalf of the MCP tools.
package chain

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed networks.yaml
var networksFS embed.FS

// Network describes one supported Arbitrum chain.
type Network struct {
	ID             string `yaml:"id"`
	Name           string `yaml:"name"`
	ChainID        uint64 `yaml:"chain_id"`
	RPCURL         string `yaml:"rpc_url"`
	ExplorerAPIURL string `yaml:"explorer_api_url"`
}

// Endpoint returns the network's RPC endpoint. Alchemy-backed networks
// carry a key slot in their URL template; local endpoints do not.
func (n Network) Endpoint(alchemyAPIKey string) string {
	if strings.Contains(n.RPCURL, "%s") {
		return fmt.Sprintf(n.RPCURL, alchemyAPIKey)
	}

	return n.RPCURL
}

// HasExplorer reports whether the network has a block explorer API.
func (n Network) HasExplorer() bool {
	return strings.TrimSpace(n.ExplorerAPIURL) != ""
}

type networkCatalog struct {
	Networks []Network `yaml:"networks"`
}

// LoadNetworks returns the bundled network catalog in file order.
func LoadNetworks() ([]Network, error) {
	data, err := networksFS.ReadFile("networks.yaml")
	if err != nil {
		return nil, fmt.Errorf("read network catalog: %w", err)
	}

	catalog := networkCatalog{}
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse network catalog: %w", err)
	}

	return catalog.Networks, nil
}

// FindNetwork looks up a network by id.
func FindNetwork(id string) (Network, error) {
	networks, err := LoadNetworks()
	if err != nil {
		return Network{}, err
	}

	normalizedID := strings.ToLower(strings.TrimSpace(id))
	for _, network := range networks {
		if network.ID == normalizedID {
			return network, nil
		}
	}

	available := make([]string, 0, len(networks))
	for _, network := range networks {
		available = append(available, network.ID)
	}

	return Network{}, fmt.Errorf("network %q not found (available: %s)", id, strings.Join(available, ", "))
}
