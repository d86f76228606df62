// SPDX-License-Identifier: MPL-2.0

package acquire

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

// ErrAcquisitionFailed is the sentinel wrapped by Error when every
// eligible strategy has been exhausted.
var ErrAcquisitionFailed = errors.New("all acquisition strategies exhausted")

type (
	// Request describes one bundle acquisition. Immutable once constructed.
	Request struct {
		// RepoURL is the git locator of the bundle repository.
		RepoURL string

		// Ref is the branch or tag to fetch.
		Ref string

		// Subpath narrows the checkout to the bundle directory, relative
		// to the repository root.
		Subpath string

		// TarballURL is the archive endpoint; the ref is appended as the
		// final path element.
		TarballURL string

		// Workspace is the empty ephemeral directory the bundle is staged
		// into. Owned by the caller, including cleanup on failure.
		Workspace string
	}

	// Outcome classifies one strategy attempt.
	Outcome int

	// Attempt is the result of evaluating one strategy against a request.
	Attempt struct {
		Outcome Outcome

		// Reason explains a skip (e.g. which tool was unusable).
		Reason string

		// Err is the failure cause when Outcome is OutcomeFailed.
		Err error
	}

	// Strategy is one transport in the fallback ladder. Attempt must
	// return OutcomeSkipped without side effects when its prerequisite
	// tooling is unusable.
	Strategy interface {
		Name() string
		Attempt(ctx context.Context, req Request) Attempt
	}

	// Acquirer evaluates a strategy ladder against a request.
	Acquirer struct {
		strategies []Strategy
		logger     *log.Logger
	}

	// Error carries the last strategy failure plus guidance about which
	// tools were unavailable.
	Error struct {
		LastErr     error
		Unavailable []string
	}
)

const (
	// OutcomeSucceeded means the workspace now holds the bundle.
	OutcomeSucceeded Outcome = iota
	// OutcomeSkipped means the strategy was not attempted at all.
	OutcomeSkipped
	// OutcomeFailed means the strategy was attempted and did not complete.
	OutcomeFailed
)

// Error formats the exhaustion failure with tool guidance.
func (e *Error) Error() string {
	msg := "all acquisition strategies exhausted"
	if e.LastErr != nil {
		msg += ": " + e.LastErr.Error()
	}
	if len(e.Unavailable) > 0 {
		msg += fmt.Sprintf(" (unusable tools: %s)", strings.Join(e.Unavailable, ", "))
	}
	return msg
}

// Unwrap returns ErrAcquisitionFailed so callers can use errors.Is.
func (e *Error) Unwrap() error { return ErrAcquisitionFailed }

// New builds an Acquirer over the given ladder. Strategies are tried in
// slice order.
func New(logger *log.Logger, strategies ...Strategy) *Acquirer {
	return &Acquirer{strategies: strategies, logger: logger}
}

// Acquire runs the ladder and returns the bundle directory inside the
// workspace (workspace joined with the request subpath). On failure the
// workspace may contain partial state; removal stays the caller's job.
func (a *Acquirer) Acquire(ctx context.Context, req Request) (string, error) {
	var (
		lastErr     error
		unavailable []string
	)

	for _, s := range a.strategies {
		// An interrupt mid-transfer ends the ladder; the remaining
		// strategies would only re-run into the same cancellation.
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("acquisition interrupted: %w", err)
		}

		att := s.Attempt(ctx, req)
		switch att.Outcome {
		case OutcomeSkipped:
			a.logger.Debug("skipping acquisition strategy", "strategy", s.Name(), "reason", att.Reason)
			if att.Reason != "" {
				unavailable = append(unavailable, att.Reason)
			}
		case OutcomeFailed:
			a.logger.Warn("acquisition strategy failed", "strategy", s.Name(), "err", att.Err)
			lastErr = att.Err
			// Partial transfer state must not leak into the next attempt.
			if err := clearDir(req.Workspace); err != nil {
				return "", fmt.Errorf("failed to reset workspace between strategies: %w", err)
			}
		case OutcomeSucceeded:
			bundleDir := filepath.Join(req.Workspace, filepath.FromSlash(req.Subpath))
			if _, err := os.Stat(bundleDir); err != nil {
				a.logger.Warn("acquisition strategy produced no bundle directory",
					"strategy", s.Name(), "path", bundleDir)
				lastErr = fmt.Errorf("%s completed but %s is missing", s.Name(), req.Subpath)
				if err := clearDir(req.Workspace); err != nil {
					return "", fmt.Errorf("failed to reset workspace between strategies: %w", err)
				}
				continue
			}
			a.logger.Debug("bundle acquired", "strategy", s.Name(), "path", bundleDir)
			return bundleDir, nil
		}
	}

	return "", &Error{LastErr: lastErr, Unavailable: dedupe(unavailable)}
}

// runTool is a test seam for invoking an external transfer tool with
// its working directory set. Tests replace it to script tool behavior.
var runTool = func(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// clearDir removes every entry inside dir without removing dir itself,
// preserving the workspace's identity for the next strategy.
func clearDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// toolError wraps a non-zero tool completion with its trailing output,
// which is where git and curl put the useful diagnostic.
func toolError(name string, out []byte, err error) error {
	msg := strings.TrimSpace(string(out))
	if len(msg) > 400 {
		cut := len(msg) - 400
		// Never slice mid-rune; git localizes its diagnostics.
		for cut < len(msg) && !utf8.RuneStart(msg[cut]) {
			cut++
		}
		msg = msg[cut:]
	}
	if msg == "" {
		return fmt.Errorf("%s: %w", name, err)
	}
	return fmt.Errorf("%s: %w: %s", name, err, msg)
}
