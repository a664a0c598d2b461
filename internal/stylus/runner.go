// Package stylus shells out to the cargo-stylus and cast toolchains for
// Stylus contract development operations. Arguments are always passed as
// explicit argv entries; nothing goes through a shell.
package stylus

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNoSigner is returned by write operations when no Stylus signer source
// is configured.
var ErrNoSigner = errors.New("no signer configured: set one of STYLUS_PRIVATE_KEY, STYLUS_PRIVATE_KEY_PATH or STYLUS_KEYSTORE_PATH")

// RunFunc executes a command in a directory and returns its output streams.
type RunFunc func(ctx context.Context, dir string, name string, args ...string) (stdout string, stderr string, err error)

func execRun(ctx context.Context, dir string, name string, args ...string) (string, string, error) {
	command := exec.CommandContext(ctx, name, args...)
	command.Dir = dir

	outBuffer := bytes.Buffer{}
	errBuffer := bytes.Buffer{}
	command.Stdout = &outBuffer
	command.Stderr = &errBuffer

	err := command.Run()
	if err != nil {
		err = fmt.Errorf("run %s %s: %w", name, strings.Join(args, " "), err)
	}

	return outBuffer.String(), errBuffer.String(), err
}

// Runner invokes toolchain commands. The run function is a field so tests
// can assert the exact argv without executing anything.
type Runner struct {
	run        RunFunc
	signerArgs []string
}

// NewRunner returns a runner; signerArgs are the credential flags appended
// to write operations (empty when no signer is configured).
func NewRunner(signerArgs []string) *Runner {
	return &Runner{
		run:        execRun,
		signerArgs: signerArgs,
	}
}

// NewRunnerWithRun returns a runner executing through the given function.
// Used by callers that need to observe invocations instead of spawning
// real toolchain processes.
func NewRunnerWithRun(run RunFunc, signerArgs []string) *Runner {
	return &Runner{
		run:        run,
		signerArgs: signerArgs,
	}
}

// HasSigner reports whether write operations can be performed.
func (r *Runner) HasSigner() bool {
	return len(r.signerArgs) > 0
}

// Output combines the streams of one toolchain invocation.
type Output struct {
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
}

func (r *Runner) cargoStylus(ctx context.Context, dir string, args ...string) (Output, error) {
	stdout, stderr, err := r.run(ctx, dir, "cargo", append([]string{"stylus"}, args...)...)
	return Output{Stdout: stdout, Stderr: stderr}, err
}

// NewProject scaffolds a new Stylus project under parentDir.
func (r *Runner) NewProject(ctx context.Context, parentDir string, name string) (Output, error) {
	trimmedName := strings.TrimSpace(name)
	if trimmedName == "" {
		return Output{}, errors.New("project name is required")
	}

	return r.cargoStylus(ctx, parentDir, "new", trimmedName)
}

// ExportABI exports a project's Solidity-compatible ABI. With jsonOutput
// the toolchain prints the ABI as JSON (mixed with build chatter).
func (r *Runner) ExportABI(ctx context.Context, projectDir string, jsonOutput bool) (Output, error) {
	args := []string{"export-abi"}
	if jsonOutput {
		args = append(args, "--json")
	}

	return r.cargoStylus(ctx, projectDir, args...)
}

// Check validates that a project compiles to a deployable Stylus program.
func (r *Runner) Check(ctx context.Context, projectDir string, endpoint string) (Output, error) {
	return r.cargoStylus(ctx, projectDir, "check", "--endpoint", endpoint)
}

// Deploy deploys a project. estimateOnly runs the gas estimation path,
// which needs no signer; a real deployment does.
func (r *Runner) Deploy(ctx context.Context, projectDir string, endpoint string, estimateOnly bool) (Output, error) {
	args := []string{"deploy", "--endpoint", endpoint}

	if estimateOnly {
		args = append(args, "--estimate-gas")
	} else {
		if !r.HasSigner() {
			return Output{}, ErrNoSigner
		}

		args = append(args, r.signerArgs...)
	}

	return r.cargoStylus(ctx, projectDir, args...)
}

// Verify checks a deployment transaction against the local project build.
func (r *Runner) Verify(ctx context.Context, projectDir string, endpoint string, deploymentTx string) (Output, error) {
	return r.cargoStylus(ctx, projectDir, "verify", "--endpoint", endpoint, "--deployment-tx", deploymentTx)
}

// Activate activates a deployed but not yet activated Stylus contract.
func (r *Runner) Activate(ctx context.Context, address string, endpoint string) (Output, error) {
	if !r.HasSigner() {
		return Output{}, ErrNoSigner
	}

	args := []string{"activate", "--address", address, "--endpoint", endpoint}
	args = append(args, r.signerArgs...)

	return r.cargoStylus(ctx, "", args...)
}

// CacheBid places a CacheManager bid to keep a contract in the wasm cache.
func (r *Runner) CacheBid(ctx context.Context, address string, bid string, endpoint string) (Output, error) {
	if !r.HasSigner() {
		return Output{}, ErrNoSigner
	}

	args := []string{"cache", "bid", "--endpoint", endpoint}
	args = append(args, r.signerArgs...)
	args = append(args, address, bid)

	return r.cargoStylus(ctx, "", args...)
}

// CastCall performs a read-only contract call through cast.
func (r *Runner) CastCall(ctx context.Context, endpoint string, address string, signature string, callArgs []string) (Output, error) {
	args := []string{"call", "--rpc-url", endpoint, address, signature}
	args = append(args, callArgs...)

	stdout, stderr, err := r.run(ctx, "", "cast", args...)

	return Output{Stdout: stdout, Stderr: stderr}, err
}

// CastSend submits a state-changing contract transaction through cast.
func (r *Runner) CastSend(ctx context.Context, endpoint string, address string, signature string, callArgs []string) (Output, error) {
	if !r.HasSigner() {
		return Output{}, ErrNoSigner
	}

	args := []string{"send", "--rpc-url", endpoint}
	args = append(args, r.signerArgs...)
	args = append(args, address, signature)
	args = append(args, callArgs...)

	stdout, stderr, err := r.run(ctx, "", "cast", args...)

	return Output{Stdout: stdout, Stderr: stderr}, err
}
