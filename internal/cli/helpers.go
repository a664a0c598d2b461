package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arbkit/arbitrum-mcp-tools/internal/platform"
)

func parseScope(value string) (platform.Scope, error) {
	scope := platform.Scope(strings.ToLower(strings.TrimSpace(value)))
	if scope == "" {
		scope = platform.ScopeGlobal
	}

	switch scope {
	case platform.ScopeGlobal, platform.ScopeLocal:
		return scope, nil
	default:
		return "", fmt.Errorf("invalid scope %q (supported: global, local)", value)
	}
}

// resolvePlatforms maps --platform flag values onto registry descriptors.
// With no ids it falls back to every platform detected on this machine.
func resolvePlatforms(operations *platform.Operations, ids []string) ([]platform.Descriptor, error) {
	registry := operations.Registry()

	normalizedIDs := make([]string, 0, len(ids))
	for _, rawID := range ids {
		id := strings.ToLower(strings.TrimSpace(rawID))
		if id == "" {
			continue
		}

		normalizedIDs = append(normalizedIDs, id)
	}

	if len(normalizedIDs) == 0 {
		detected := make([]platform.Descriptor, 0)
		for _, descriptor := range registry.Descriptors() {
			if operations.IsDetected(descriptor) {
				detected = append(detected, descriptor)
			}
		}

		if len(detected) == 0 {
			return nil, fmt.Errorf("no platforms detected; pass --platform (known: %s)", strings.Join(registry.IDs(), ", "))
		}

		return detected, nil
	}

	descriptors := make([]platform.Descriptor, 0, len(normalizedIDs))
	seen := make(map[string]struct{})

	for _, id := range normalizedIDs {
		if _, duplicate := seen[id]; duplicate {
			continue
		}

		descriptor, found := registry.Get(id)
		if !found {
			return nil, fmt.Errorf("platform %q is not known (known: %s)", id, strings.Join(registry.IDs(), ", "))
		}

		descriptors = append(descriptors, descriptor)
		seen[id] = struct{}{}
	}

	if len(descriptors) == 0 {
		return nil, errors.New("no platforms selected")
	}

	return descriptors, nil
}

func platformDisplayNames(descriptors []platform.Descriptor) string {
	names := make([]string, 0, len(descriptors))
	for _, descriptor := range descriptors {
		names = append(names, descriptor.DisplayName)
	}

	return strings.Join(names, ", ")
}
