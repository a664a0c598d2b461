package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestOperations(t *testing.T) (*Operations, string) {
	t.Helper()

	home := t.TempDir()
	work := t.TempDir()

	resolver := &Resolver{
		homeDir: func() (string, error) { return home, nil },
		getenv:  func(string) string { return "" },
		getwd:   func() (string, error) { return work, nil },
	}

	registry, err := NewRegistry(validDescriptor("fakeclient"))
	if err != nil {
		t.Fatalf("failed to build registry: %v", err)
	}

	ops := &Operations{
		registry: registry,
		resolver: resolver,
		osID:     OSLinux,
		statDir: func(path string) bool {
			info, statErr := os.Stat(path)
			return statErr == nil && info.IsDir()
		},
	}

	return ops, home
}

func TestOperationsInstallGlobalCreatesFile(t *testing.T) {
	ops, home := newTestOperations(t)
	descriptor, _ := ops.Registry().Get("fakeclient")

	result := ops.Install(descriptor, ScopeGlobal)
	if !result.Success {
		t.Fatalf("expected install to succeed: %v", result.Err)
	}

	expectedPath := filepath.Join(home, ".fakeclient", "mcp.json")
	if result.Path != expectedPath {
		t.Fatalf("expected path %q, got %q", expectedPath, result.Path)
	}

	if !ops.IsInstalled(descriptor, ScopeGlobal) {
		t.Fatal("expected platform to report installed after install")
	}

	if ops.IsInstalled(descriptor, ScopeLocal) {
		t.Fatal("expected local scope to stay untouched")
	}
}

func TestOperationsInstallLocalUsesWorkingDirectory(t *testing.T) {
	ops, _ := newTestOperations(t)
	descriptor, _ := ops.Registry().Get("fakeclient")

	result := ops.Install(descriptor, ScopeLocal)
	if !result.Success {
		t.Fatalf("expected install to succeed: %v", result.Err)
	}

	if !ops.IsInstalled(descriptor, ScopeLocal) {
		t.Fatal("expected local install to be visible")
	}
}

func TestOperationsUninstallReportsNotRemovedWhenAbsent(t *testing.T) {
	ops, _ := newTestOperations(t)
	descriptor, _ := ops.Registry().Get("fakeclient")

	result, removed := ops.Uninstall(descriptor, ScopeGlobal)
	if !result.Success {
		t.Fatalf("expected uninstall of absent entry to stay quiet: %v", result.Err)
	}

	if removed {
		t.Fatal("expected nothing to be removed")
	}
}

func TestOperationsInstallThenUninstallRoundTrip(t *testing.T) {
	ops, _ := newTestOperations(t)
	descriptor, _ := ops.Registry().Get("fakeclient")

	if result := ops.Install(descriptor, ScopeGlobal); !result.Success {
		t.Fatalf("expected install to succeed: %v", result.Err)
	}

	result, removed := ops.Uninstall(descriptor, ScopeGlobal)
	if !result.Success || !removed {
		t.Fatalf("expected uninstall to remove the entry: %v", result.Err)
	}

	if ops.IsInstalled(descriptor, ScopeGlobal) {
		t.Fatal("expected platform to report not installed after uninstall")
	}
}

func TestOperationsInstallFailureBecomesResult(t *testing.T) {
	ops, _ := newTestOperations(t)

	descriptor := validDescriptor("broken")
	delete(descriptor.GlobalPathTemplates, OSLinux)

	result := ops.Install(descriptor, ScopeGlobal)
	if result.Success {
		t.Fatal("expected install to fail for missing template")
	}

	if result.Err == nil {
		t.Fatal("expected a diagnostic error on the result")
	}
}

func TestOperationsIsDetectedProbesDirectories(t *testing.T) {
	ops, home := newTestOperations(t)

	descriptor := validDescriptor("fakeclient")
	descriptor.DetectDirs = map[OS][]string{
		OSLinux: {"~/.fakeclient"},
	}

	if ops.IsDetected(descriptor) {
		t.Fatal("expected detection to fail before the directory exists")
	}

	if err := os.MkdirAll(filepath.Join(home, ".fakeclient"), 0o755); err != nil {
		t.Fatalf("failed to create probe directory: %v", err)
	}

	if !ops.IsDetected(descriptor) {
		t.Fatal("expected detection to succeed once the directory exists")
	}
}

func TestOperationsIsDetectedNeverGatesInstall(t *testing.T) {
	ops, _ := newTestOperations(t)
	descriptor, _ := ops.Registry().Get("fakeclient")

	if ops.IsDetected(descriptor) {
		t.Fatal("expected platform to be undetected")
	}

	if result := ops.Install(descriptor, ScopeGlobal); !result.Success {
		t.Fatalf("expected install to succeed regardless of detection: %v", result.Err)
	}
}
