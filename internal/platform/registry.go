package platform

// DefaultRegistry returns the built-in table of supported platforms.
// Registration order is the order shown to users.
func DefaultRegistry() *Registry {
	registry, err := NewRegistry(
		Descriptor{
			ID:          "cursor",
			DisplayName: "Cursor",
			Format:      FormatJSON,
			ConfigKey:   "mcpServers",
			GlobalPathTemplates: map[OS]string{
				OSDarwin:  "~/.cursor/mcp.json",
				OSWindows: "%USERPROFILE%/.cursor/mcp.json",
				OSLinux:   "~/.cursor/mcp.json",
			},
			LocalPathTemplate: ".cursor/mcp.json",
			DetectDirs: map[OS][]string{
				OSDarwin:  {"~/.cursor", "~/Library/Application Support/Cursor"},
				OSWindows: {"%USERPROFILE%/.cursor", "%APPDATA%/Cursor"},
				OSLinux:   {"~/.cursor", "~/.config/Cursor"},
			},
		},
		Descriptor{
			ID:          "claude-desktop",
			DisplayName: "Claude Desktop",
			Format:      FormatJSON,
			ConfigKey:   "mcpServers",
			GlobalPathTemplates: map[OS]string{
				OSDarwin:  "~/Library/Application Support/Claude/claude_desktop_config.json",
				OSWindows: "%APPDATA%/Claude/claude_desktop_config.json",
				OSLinux:   "~/.config/Claude/claude_desktop_config.json",
			},
			LocalPathTemplate: ".claude/claude_desktop_config.json",
			DetectDirs: map[OS][]string{
				OSDarwin:  {"~/Library/Application Support/Claude"},
				OSWindows: {"%APPDATA%/Claude"},
				OSLinux:   {"~/.config/Claude"},
			},
		},
		Descriptor{
			ID:          "claude-code",
			DisplayName: "Claude Code",
			Format:      FormatJSON,
			ConfigKey:   "mcpServers",
			GlobalPathTemplates: map[OS]string{
				OSDarwin:  "~/.claude.json",
				OSWindows: "%USERPROFILE%/.claude.json",
				OSLinux:   "~/.claude.json",
			},
			LocalPathTemplate: ".mcp.json",
			DetectDirs: map[OS][]string{
				OSDarwin:  {"~/.claude"},
				OSWindows: {"%USERPROFILE%/.claude"},
				OSLinux:   {"~/.claude"},
			},
		},
		Descriptor{
			ID:          "windsurf",
			DisplayName: "Windsurf",
			Format:      FormatJSON,
			ConfigKey:   "mcpServers",
			GlobalPathTemplates: map[OS]string{
				OSDarwin:  "~/.codeium/windsurf/mcp_config.json",
				OSWindows: "%USERPROFILE%/.codeium/windsurf/mcp_config.json",
				OSLinux:   "~/.codeium/windsurf/mcp_config.json",
			},
			LocalPathTemplate: ".windsurf/mcp_config.json",
			DetectDirs: map[OS][]string{
				OSDarwin:  {"~/.codeium/windsurf"},
				OSWindows: {"%USERPROFILE%/.codeium/windsurf"},
				OSLinux:   {"~/.codeium/windsurf"},
			},
		},
		Descriptor{
			ID:          "vscode",
			DisplayName: "VS Code",
			Format:      FormatJSON,
			ConfigKey:   "servers",
			GlobalPathTemplates: map[OS]string{
				OSDarwin:  "~/Library/Application Support/Code/User/mcp.json",
				OSWindows: "%APPDATA%/Code/User/mcp.json",
				OSLinux:   "~/.config/Code/User/mcp.json",
			},
			LocalPathTemplate: ".vscode/mcp.json",
			DetectDirs: map[OS][]string{
				OSDarwin:  {"~/Library/Application Support/Code"},
				OSWindows: {"%APPDATA%/Code"},
				OSLinux:   {"~/.config/Code"},
			},
		},
		Descriptor{
			ID:          "cline",
			DisplayName: "Cline",
			Format:      FormatJSON,
			ConfigKey:   "mcpServers",
			GlobalPathTemplates: map[OS]string{
				OSDarwin:  "~/Library/Application Support/Code/User/globalStorage/saoudrizwan.claude-dev/settings/cline_mcp_settings.json",
				OSWindows: "%APPDATA%/Code/User/globalStorage/saoudrizwan.claude-dev/settings/cline_mcp_settings.json",
				OSLinux:   "~/.config/Code/User/globalStorage/saoudrizwan.claude-dev/settings/cline_mcp_settings.json",
			},
			LocalPathTemplate: ".cline/mcp_settings.json",
			DetectDirs: map[OS][]string{
				OSDarwin:  {"~/Library/Application Support/Code/User/globalStorage/saoudrizwan.claude-dev"},
				OSWindows: {"%APPDATA%/Code/User/globalStorage/saoudrizwan.claude-dev"},
				OSLinux:   {"~/.config/Code/User/globalStorage/saoudrizwan.claude-dev"},
			},
		},
		Descriptor{
			ID:          "codex",
			DisplayName: "Codex CLI",
			Format:      FormatTOML,
			ConfigKey:   "mcp_servers",
			GlobalPathTemplates: map[OS]string{
				OSDarwin:  "~/.codex/config.toml",
				OSWindows: "~/.codex/config.toml",
				OSLinux:   "~/.codex/config.toml",
			},
			LocalPathTemplate: ".codex/config.toml",
			DetectDirs: map[OS][]string{
				OSDarwin:  {"~/.codex"},
				OSWindows: {"~/.codex"},
				OSLinux:   {"~/.codex"},
			},
		},
		Descriptor{
			ID:          "gemini",
			DisplayName: "Gemini CLI",
			Format:      FormatJSON,
			ConfigKey:   "mcpServers",
			GlobalPathTemplates: map[OS]string{
				OSDarwin:  "~/.gemini/settings.json",
				OSWindows: "%USERPROFILE%/.gemini/settings.json",
				OSLinux:   "~/.gemini/settings.json",
			},
			LocalPathTemplate: ".gemini/settings.json",
			DetectDirs: map[OS][]string{
				OSDarwin:  {"~/.gemini"},
				OSWindows: {"%USERPROFILE%/.gemini"},
				OSLinux:   {"~/.gemini"},
			},
		},
	)
	if err != nil {
		// The built-in table is validated by tests; a construction failure
		// here is unreachable short of a bad edit to this file.
		panic(err)
	}

	return registry
}
