// SPDX-License-Identifier: MPL-2.0

// Package launch assembles the final argument vector and hands control
// to the python runtime with the acquired bundle as working directory.
// It is the terminal step of the launcher path; the child's exit status
// is propagated unchanged.
package launch

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"toolscout-cli/internal/envprobe"
	"toolscout-cli/internal/usercontext"
)

type (
	// ExitCode represents a process exit status code.
	ExitCode int

	// Invocation is everything needed to run the bundle entry point.
	Invocation struct {
		// Runtime is the probed interpreter.
		Runtime envprobe.Runtime

		// BundleDir is the acquired bundle directory; it becomes the
		// child's working directory.
		BundleDir string

		// EntryPoint is the script path relative to BundleDir.
		EntryPoint string

		// APIKey and Domain are required by the bundle; AppName is
		// optional.
		APIKey  string
		Domain  string
		AppName string

		// ExtraArgs are forwarded verbatim after the recognized flags.
		ExtraArgs []string

		// User is the execution context applied to the child environment.
		User usercontext.Context

		Stdout io.Writer
		Stderr io.Writer
		Stdin  io.Reader
	}
)

// IsSuccess returns true if the exit code indicates successful execution.
func (c ExitCode) IsSuccess() bool { return c == 0 }

// Argv returns the full argument vector, interpreter first.
func (inv *Invocation) Argv() []string {
	argv := []string{inv.Runtime.Command, inv.EntryPoint,
		"--api-key", inv.APIKey,
		"--domain", inv.Domain,
	}
	if inv.AppName != "" {
		argv = append(argv, "--app-name", inv.AppName)
	}
	return append(argv, inv.ExtraArgs...)
}

// Run executes the bundle and returns its exit code. A non-zero child
// exit is not an error here; it is the launcher's own exit code. An
// error is returned only when the child could not be started at all.
func Run(ctx context.Context, inv *Invocation) (ExitCode, error) {
	argv := inv.Argv()

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = inv.BundleDir
	cmd.Env = overlayEnv(os.Environ(), inv.User.Overrides())
	cmd.Stdout = inv.Stdout
	cmd.Stderr = inv.Stderr
	cmd.Stdin = inv.Stdin

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return ExitCode(exitErr.ExitCode()), nil
		}
		return 1, fmt.Errorf("failed to execute discovery bundle: %w", err)
	}

	return 0, nil
}

// overlayEnv replaces or appends the override variables in base.
// Variable name matching is case-insensitive, as Windows environments
// are.
func overlayEnv(base []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return base
	}

	applied := make(map[string]bool, len(overrides))
	out := make([]string, 0, len(base)+len(overrides))

	for _, kv := range base {
		name, _, ok := strings.Cut(kv, "=")
		if !ok {
			out = append(out, kv)
			continue
		}
		replaced := false
		for k, v := range overrides {
			if strings.EqualFold(name, k) {
				out = append(out, k+"="+v)
				applied[k] = true
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, kv)
		}
	}

	for k, v := range overrides {
		if !applied[k] {
			out = append(out, k+"="+v)
		}
	}
	return out
}
