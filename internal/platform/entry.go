package platform

import "github.com/arbkit/arbitrum-mcp-tools/internal/app"

// ForwardedEnvVars are the variable names Codex CLI forwards from the host
// shell into the served process. Names only: the written config never
// contains a secret value.
var ForwardedEnvVars = []string{
	"ALCHEMY_API_KEY",
	"ARBISCAN_API_KEY",
	"STYLUS_PRIVATE_KEY",
	"STYLUS_PRIVATE_KEY_PATH",
	"STYLUS_KEYSTORE_PATH",
}

// NewServerEntry builds the entry installed under configKey.ServerName.
// JSON platforms get command and args only. The TOML platform (Codex CLI)
// additionally gets enabled plus the env_vars forwarding list.
func NewServerEntry(format Format) map[string]any {
	entry := map[string]any{
		"command": "npx",
		"args":    []string{"-y", app.PackageName, "serve"},
	}

	if format == FormatTOML {
		entry["enabled"] = true
		entry["env_vars"] = append([]string(nil), ForwardedEnvVars...)
	}

	return entry
}
