// SPDX-License-Identifier: MPL-2.0

package envprobe

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrRuntimeNotFound means no candidate command resolved to any
	// python interpreter at all. Remediation: install one.
	ErrRuntimeNotFound = errors.New("python runtime not found")

	// ErrRuntimeVersionMismatch means an interpreter was found under a
	// generic name but reports an unsupported major version.
	// Remediation: switch the default interpreter, not install.
	ErrRuntimeVersionMismatch = errors.New("python runtime version not supported")
)

type (
	// RuntimeCandidate is one command name worth probing for a usable
	// interpreter, together with the major version it must report.
	RuntimeCandidate struct {
		Command       string
		VersionArgs   []string
		AcceptedMajor int
	}

	// Runtime is the selected interpreter. Immutable once probed.
	Runtime struct {
		Command string
		Version string
	}

	// VersionMismatchError reports an interpreter that exists but runs
	// the wrong major version.
	VersionMismatchError struct {
		Command string
		Version string
		Wanted  int
	}
)

// Error implements the error interface.
func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("%s reports version %s, need major version %d", e.Command, e.Version, e.Wanted)
}

// Unwrap returns ErrRuntimeVersionMismatch for errors.Is detection.
func (e *VersionMismatchError) Unwrap() error { return ErrRuntimeVersionMismatch }

// DefaultRuntimeCandidates is the ranked probe order for the discovery
// bundle's interpreter: the explicit python3 name first, then the
// generic alias which may point at either major version.
func DefaultRuntimeCandidates() []RuntimeCandidate {
	return []RuntimeCandidate{
		{Command: "python3", VersionArgs: []string{"--version"}, AcceptedMajor: 3},
		{Command: "python", VersionArgs: []string{"--version"}, AcceptedMajor: 3},
	}
}

// ProbeRuntime walks the candidate list in order and returns the first
// interpreter reporting an accepted major version. If at least one
// candidate was present but reported the wrong major version, the error
// is a VersionMismatchError; when nothing resolved at all it is
// ErrRuntimeNotFound. No minor/patch compatibility guessing happens.
func ProbeRuntime(ctx context.Context, candidates []RuntimeCandidate) (Runtime, error) {
	var mismatch *VersionMismatchError

	for _, c := range candidates {
		if _, err := lookPath(c.Command); err != nil {
			continue
		}

		out, err := runDiagnostic(ctx, c.Command, c.VersionArgs...)
		if err != nil {
			continue
		}

		version, ok := parsePythonVersion(string(out))
		if !ok {
			continue
		}

		if majorOf(version) == c.AcceptedMajor {
			return Runtime{Command: c.Command, Version: version}, nil
		}
		if mismatch == nil {
			mismatch = &VersionMismatchError{Command: c.Command, Version: version, Wanted: c.AcceptedMajor}
		}
	}

	if mismatch != nil {
		return Runtime{}, mismatch
	}
	return Runtime{}, ErrRuntimeNotFound
}

// parsePythonVersion extracts the dotted version from output such as
// "Python 3.11.4". Python 2 printed the banner on stderr, but the
// diagnostic seam captures combined output so both majors parse.
func parsePythonVersion(out string) (string, bool) {
	fields := strings.Fields(strings.TrimSpace(out))
	for i, f := range fields {
		if strings.EqualFold(f, "python") && i+1 < len(fields) {
			return fields[i+1], true
		}
	}
	return "", false
}

func majorOf(version string) int {
	head, _, _ := strings.Cut(version, ".")
	major, err := strconv.Atoi(head)
	if err != nil {
		return -1
	}
	return major
}
