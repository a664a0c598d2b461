package platform

import "testing"

func validDescriptor(id string) Descriptor {
	return Descriptor{
		ID:          id,
		DisplayName: id,
		Format:      FormatJSON,
		ConfigKey:   "mcpServers",
		GlobalPathTemplates: map[OS]string{
			OSDarwin:  "~/." + id + "/mcp.json",
			OSWindows: "%USERPROFILE%/." + id + "/mcp.json",
			OSLinux:   "~/." + id + "/mcp.json",
		},
		LocalPathTemplate: "." + id + "/mcp.json",
	}
}

func TestNewRegistryPreservesRegistrationOrder(t *testing.T) {
	registry, err := NewRegistry(validDescriptor("bravo"), validDescriptor("alpha"), validDescriptor("zulu"))
	if err != nil {
		t.Fatalf("expected registry construction to succeed: %v", err)
	}

	ids := registry.IDs()
	expected := []string{"bravo", "alpha", "zulu"}
	if len(ids) != len(expected) {
		t.Fatalf("expected %d ids, got %#v", len(expected), ids)
	}

	for i, id := range expected {
		if ids[i] != id {
			t.Fatalf("expected id %q at position %d, got %q", id, i, ids[i])
		}
	}
}

func TestNewRegistryRejectsDuplicateIDs(t *testing.T) {
	_, err := NewRegistry(validDescriptor("cursor"), validDescriptor("cursor"))
	if err == nil {
		t.Fatal("expected duplicate id to be rejected")
	}
}

func TestNewRegistryRejectsMissingGlobalTemplate(t *testing.T) {
	descriptor := validDescriptor("partial")
	delete(descriptor.GlobalPathTemplates, OSWindows)

	_, err := NewRegistry(descriptor)
	if err == nil {
		t.Fatal("expected missing windows template to be rejected")
	}
}

func TestNewRegistryRejectsMissingLocalTemplate(t *testing.T) {
	descriptor := validDescriptor("partial")
	descriptor.LocalPathTemplate = " "

	_, err := NewRegistry(descriptor)
	if err == nil {
		t.Fatal("expected missing local template to be rejected")
	}
}

func TestNewRegistryRejectsUnknownFormat(t *testing.T) {
	descriptor := validDescriptor("weird")
	descriptor.Format = Format("yaml")

	_, err := NewRegistry(descriptor)
	if err == nil {
		t.Fatal("expected unknown format to be rejected")
	}
}

func TestDefaultRegistrySatisfiesInvariants(t *testing.T) {
	registry := DefaultRegistry()

	ids := registry.IDs()
	if len(ids) != 8 {
		t.Fatalf("expected 8 built-in platforms, got %d", len(ids))
	}

	tomlPlatforms := 0
	for _, descriptor := range registry.Descriptors() {
		for _, osID := range []OS{OSDarwin, OSWindows, OSLinux} {
			if descriptor.GlobalPathTemplates[osID] == "" {
				t.Fatalf("platform %q missing global template for %s", descriptor.ID, osID)
			}
		}

		if descriptor.LocalPathTemplate == "" {
			t.Fatalf("platform %q missing local template", descriptor.ID)
		}

		if descriptor.Format == FormatTOML {
			tomlPlatforms++
		}
	}

	if tomlPlatforms != 1 {
		t.Fatalf("expected exactly one TOML platform, got %d", tomlPlatforms)
	}

	codex, found := registry.Get("codex")
	if !found {
		t.Fatal("expected codex platform to be registered")
	}

	if codex.Format != FormatTOML || codex.ConfigKey != "mcp_servers" {
		t.Fatalf("unexpected codex descriptor: %#v", codex)
	}

	vscode, found := registry.Get("vscode")
	if !found {
		t.Fatal("expected vscode platform to be registered")
	}

	if vscode.ConfigKey != "servers" {
		t.Fatalf("expected vscode to use the servers config key, got %q", vscode.ConfigKey)
	}
}

func TestOnlyTOMLEntriesCarryEnvVars(t *testing.T) {
	for _, descriptor := range DefaultRegistry().Descriptors() {
		entry := NewServerEntry(descriptor.Format)

		_, hasEnvVars := entry["env_vars"]
		if descriptor.Format == FormatTOML && !hasEnvVars {
			t.Fatalf("expected platform %q entry to carry env_vars", descriptor.ID)
		}

		if descriptor.Format == FormatJSON && hasEnvVars {
			t.Fatalf("expected platform %q entry to omit env_vars", descriptor.ID)
		}
	}
}
