package platform

import (
	"fmt"
	"os"
)

// Result is the outcome of one install/uninstall against one platform.
// Callers can treat it as a boolean or inspect Err for the reason.
type Result struct {
	Success bool
	Path    string
	Err     error
}

// Operations performs install / uninstall / status checks for platforms in
// a registry. Every public method is total: failures degrade to a Result
// or a false boolean so a batch over several platforms never aborts on one.
type Operations struct {
	registry *Registry
	resolver *Resolver
	osID     OS

	// statDir reports whether a directory exists; a field so detection
	// tests do not depend on the host filesystem.
	statDir func(path string) bool
}

// NewOperations wires operations against a registry and resolver for the
// current OS.
func NewOperations(registry *Registry, resolver *Resolver) *Operations {
	return &Operations{
		registry: registry,
		resolver: resolver,
		osID:     CurrentOS(),
		statDir: func(path string) bool {
			info, err := os.Stat(path)
			return err == nil && info.IsDir()
		},
	}
}

// Registry exposes the registry operations were built with.
func (o *Operations) Registry() *Registry {
	return o.registry
}

// ConfigPath computes the concrete config file path for a platform/scope.
func (o *Operations) ConfigPath(descriptor Descriptor, scope Scope) (string, error) {
	if scope == ScopeLocal {
		return o.resolver.ResolveLocal(descriptor.LocalPathTemplate)
	}

	return o.resolver.ResolveGlobal(descriptor, o.osID)
}

// Install writes the server entry into the platform's config file.
func (o *Operations) Install(descriptor Descriptor, scope Scope) Result {
	path, err := o.ConfigPath(descriptor, scope)
	if err != nil {
		return Result{Success: false, Err: err}
	}

	if err := CodecFor(descriptor.Format).AddServerEntry(path, descriptor.ConfigKey); err != nil {
		return Result{Success: false, Path: path, Err: fmt.Errorf("install on %q: %w", descriptor.ID, err)}
	}

	return Result{Success: true, Path: path}
}

// Uninstall removes the server entry. Removing an entry that was never
// installed succeeds with Removed unset on the codec side; the Result is
// still a success so batch uninstalls stay quiet about already-clean
// platforms.
func (o *Operations) Uninstall(descriptor Descriptor, scope Scope) (Result, bool) {
	path, err := o.ConfigPath(descriptor, scope)
	if err != nil {
		return Result{Success: false, Err: err}, false
	}

	removed, err := CodecFor(descriptor.Format).RemoveServerEntry(path, descriptor.ConfigKey)
	if err != nil {
		return Result{Success: false, Path: path, Err: fmt.Errorf("uninstall on %q: %w", descriptor.ID, err)}, false
	}

	return Result{Success: true, Path: path}, removed
}

// IsInstalled reports whether the server entry is present for the given
// scope. All failure modes read as false.
func (o *Operations) IsInstalled(descriptor Descriptor, scope Scope) bool {
	path, err := o.ConfigPath(descriptor, scope)
	if err != nil {
		return false
	}

	return CodecFor(descriptor.Format).IsServerInstalled(path, descriptor.ConfigKey)
}

// IsDetected probes for directories that suggest the platform is present
// on this machine. It is a hint for ordering interactive lists and never
// gates install or uninstall.
func (o *Operations) IsDetected(descriptor Descriptor) bool {
	for _, template := range descriptor.DetectDirs[o.osID] {
		path, err := o.resolver.Resolve(template, o.osID)
		if err != nil {
			continue
		}

		if o.statDir(path) {
			return true
		}
	}

	return false
}
