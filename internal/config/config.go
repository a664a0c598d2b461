// Package config loads the served process's configuration from the
// environment. Secrets stay in the environment: nothing here is ever
// written to disk.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Environment variable names consumed by the serve command.
const (
	EnvAlchemyAPIKey  = "ALCHEMY_API_KEY"
	EnvArbiscanAPIKey = "ARBISCAN_API_KEY"
	EnvPrivateKey     = "STYLUS_PRIVATE_KEY"
	EnvPrivateKeyPath = "STYLUS_PRIVATE_KEY_PATH"
	EnvKeystorePath   = "STYLUS_KEYSTORE_PATH"
	EnvNetwork        = "ARB_MCP_NETWORK"
)

// DefaultNetwork is used when ARB_MCP_NETWORK is unset.
const DefaultNetwork = "arbitrum-one"

// Config holds everything the MCP server needs at startup.
type Config struct {
	AlchemyAPIKey  string
	ArbiscanAPIKey string
	PrivateKey     string
	PrivateKeyPath string
	KeystorePath   string
	Network        string
}

// Load reads the configuration from the process environment. The Alchemy
// key is required; the server refuses to start without it. At most one
// Stylus signer source may be set.
func Load() (*Config, error) {
	return LoadFrom(os.Getenv)
}

// LoadFrom reads the configuration through the given lookup function.
func LoadFrom(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		AlchemyAPIKey:  strings.TrimSpace(getenv(EnvAlchemyAPIKey)),
		ArbiscanAPIKey: strings.TrimSpace(getenv(EnvArbiscanAPIKey)),
		PrivateKey:     strings.TrimSpace(getenv(EnvPrivateKey)),
		PrivateKeyPath: strings.TrimSpace(getenv(EnvPrivateKeyPath)),
		KeystorePath:   strings.TrimSpace(getenv(EnvKeystorePath)),
		Network:        strings.TrimSpace(getenv(EnvNetwork)),
	}

	if cfg.Network == "" {
		cfg.Network = DefaultNetwork
	}

	if cfg.AlchemyAPIKey == "" {
		return nil, fmt.Errorf("%s is required", EnvAlchemyAPIKey)
	}

	signerSources := 0
	for _, value := range []string{cfg.PrivateKey, cfg.PrivateKeyPath, cfg.KeystorePath} {
		if value != "" {
			signerSources++
		}
	}

	if signerSources > 1 {
		return nil, errors.New("set exactly one of STYLUS_PRIVATE_KEY, STYLUS_PRIVATE_KEY_PATH or STYLUS_KEYSTORE_PATH")
	}

	return cfg, nil
}

// HasSigner reports whether any Stylus signer source is configured. Write
// operations (deploy, activate, cache bids, cast send) require one.
func (c *Config) HasSigner() bool {
	return c.PrivateKey != "" || c.PrivateKeyPath != "" || c.KeystorePath != ""
}

// SignerArgs returns the credential flags passed through to cargo stylus
// and cast. The private key value itself only ever travels on a subprocess
// argument list, never into a config file.
func (c *Config) SignerArgs() []string {
	switch {
	case c.PrivateKey != "":
		return []string{"--private-key", c.PrivateKey}
	case c.PrivateKeyPath != "":
		return []string{"--private-key-path", c.PrivateKeyPath}
	case c.KeystorePath != "":
		return []string{"--keystore-path", c.KeystorePath}
	default:
		return nil
	}
}
