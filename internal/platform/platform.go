// Package platform edits MCP server entries inside the configuration files
// of supported AI clients (Cursor, Claude Desktop, Codex CLI, etc.).
package platform

import (
	"fmt"
	"runtime"
	"strings"
)

// Format identifies the serialization format of a platform's config file.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// Scope selects between a user-wide config file and a project-local one.
type Scope string

const (
	ScopeGlobal Scope = "global"
	ScopeLocal  Scope = "local"
)

// OS identifies an operating system a global path template targets.
type OS string

const (
	OSDarwin  OS = "darwin"
	OSWindows OS = "windows"
	OSLinux   OS = "linux"
)

// CurrentOS maps the runtime OS onto a template key. Anything that is not
// macOS or Windows follows the Linux path conventions.
func CurrentOS() OS {
	switch runtime.GOOS {
	case "darwin":
		return OSDarwin
	case "windows":
		return OSWindows
	default:
		return OSLinux
	}
}

// Descriptor describes one supported platform: where its config file lives
// per OS and scope, which format it uses, and under which key server
// entries are stored.
type Descriptor struct {
	ID          string
	DisplayName string
	Format      Format
	ConfigKey   string

	// GlobalPathTemplates maps each OS to a path template. Templates use
	// forward slashes, may start with "~/" and, on Windows, may contain
	// %APPDATA%, %USERPROFILE% or %LOCALAPPDATA% placeholders.
	GlobalPathTemplates map[OS]string

	// LocalPathTemplate is a single relative path anchored at the working
	// directory, identical across OSes.
	LocalPathTemplate string

	// DetectDirs lists directories whose existence hints that the platform
	// is present on this machine. Purely a UI hint.
	DetectDirs map[OS][]string
}

// Registry is an immutable, ordered collection of platform descriptors.
// It is constructed once and passed to whatever needs it, so tests can
// substitute a small fake table.
type Registry struct {
	ids   []string
	byID  map[string]Descriptor
}

// NewRegistry validates and assembles a registry. Every descriptor must
// carry a global template for all three OSes and a local template; a
// violation is a programmer error and fails construction.
func NewRegistry(descriptors ...Descriptor) (*Registry, error) {
	registry := &Registry{
		ids:  make([]string, 0, len(descriptors)),
		byID: make(map[string]Descriptor, len(descriptors)),
	}

	for _, descriptor := range descriptors {
		id := strings.TrimSpace(descriptor.ID)
		if id == "" {
			return nil, fmt.Errorf("platform %q: id is required", descriptor.DisplayName)
		}

		if _, exists := registry.byID[id]; exists {
			return nil, fmt.Errorf("platform %q: duplicate id", id)
		}

		if descriptor.Format != FormatJSON && descriptor.Format != FormatTOML {
			return nil, fmt.Errorf("platform %q: unsupported format %q", id, descriptor.Format)
		}

		if strings.TrimSpace(descriptor.ConfigKey) == "" {
			return nil, fmt.Errorf("platform %q: config key is required", id)
		}

		for _, osID := range []OS{OSDarwin, OSWindows, OSLinux} {
			if strings.TrimSpace(descriptor.GlobalPathTemplates[osID]) == "" {
				return nil, fmt.Errorf("platform %q: missing global path template for %s", id, osID)
			}
		}

		if strings.TrimSpace(descriptor.LocalPathTemplate) == "" {
			return nil, fmt.Errorf("platform %q: missing local path template", id)
		}

		registry.ids = append(registry.ids, id)
		registry.byID[id] = descriptor
	}

	return registry, nil
}

// IDs returns platform ids in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.ids))
	copy(ids, r.ids)

	return ids
}

// Get looks up a descriptor by id.
func (r *Registry) Get(id string) (Descriptor, bool) {
	descriptor, found := r.byID[strings.TrimSpace(id)]
	return descriptor, found
}

// Descriptors returns all descriptors in registration order.
func (r *Registry) Descriptors() []Descriptor {
	descriptors := make([]Descriptor, 0, len(r.ids))
	for _, id := range r.ids {
		descriptors = append(descriptors, r.byID[id])
	}

	return descriptors
}
