package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolver turns path templates into concrete file paths. It performs pure
// path arithmetic; the lookup functions are fields so tests can pin them.
type Resolver struct {
	homeDir func() (string, error)
	getenv  func(string) string
	getwd   func() (string, error)
}

// NewResolver returns a resolver backed by the process environment.
func NewResolver() *Resolver {
	return &Resolver{
		homeDir: os.UserHomeDir,
		getenv:  os.Getenv,
		getwd:   os.Getwd,
	}
}

// windowsPlaceholders are the environment placeholders substituted on
// Windows templates. %USERPROFILE% falls back to the home directory when
// unset; the others expand to an empty string.
var windowsPlaceholders = []string{"%APPDATA%", "%USERPROFILE%", "%LOCALAPPDATA%"}

// Resolve expands a global path template for the given OS.
func (r *Resolver) Resolve(template string, osID OS) (string, error) {
	resolved := strings.TrimSpace(template)
	if resolved == "" {
		return "", fmt.Errorf("path template is empty")
	}

	if resolved == "~" || strings.HasPrefix(resolved, "~/") {
		home, err := r.homeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}

		resolved = home + strings.TrimPrefix(resolved, "~")
	}

	if osID == OSWindows {
		for _, placeholder := range windowsPlaceholders {
			if !strings.Contains(resolved, placeholder) {
				continue
			}

			value := r.getenv(strings.Trim(placeholder, "%"))
			if value == "" && placeholder == "%USERPROFILE%" {
				home, err := r.homeDir()
				if err != nil {
					return "", fmt.Errorf("resolve home directory: %w", err)
				}

				value = home
			}

			resolved = strings.ReplaceAll(resolved, placeholder, value)
		}
	}

	return filepath.FromSlash(resolved), nil
}

// ResolveLocal joins a relative template onto the working directory. No
// home or environment expansion applies to local templates.
func (r *Resolver) ResolveLocal(template string) (string, error) {
	workingDir, err := r.getwd()
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}

	return filepath.Join(workingDir, filepath.FromSlash(template)), nil
}

// ResolveGlobal selects the template for the given OS and resolves it.
// A missing template indicates a registry bug and fails loudly.
func (r *Resolver) ResolveGlobal(descriptor Descriptor, osID OS) (string, error) {
	template, found := descriptor.GlobalPathTemplates[osID]
	if !found || strings.TrimSpace(template) == "" {
		return "", fmt.Errorf("platform %q has no global path template for OS %q", descriptor.ID, osID)
	}

	return r.Resolve(template, osID)
}
