// SPDX-License-Identifier: MPL-2.0

package envprobe

import (
	"context"
	"strings"
)

type (
	// Verdict classifies an external tool's usability.
	Verdict int

	// ToolSpec describes how to probe one external tool: the canonical
	// diagnostic invocation, the output expected from a working install,
	// and the output signatures of known broken stubs.
	ToolSpec struct {
		// Name is the command looked up on PATH.
		Name string

		// DiagnosticArgs is the argument vector for the probe invocation,
		// expected to produce version text on a working install.
		DiagnosticArgs []string

		// SuccessPattern must appear in the diagnostic output for the
		// tool to be considered healthy.
		SuccessPattern string

		// BrokenSignatures are substrings that identify a placeholder
		// binary masquerading as the real tool.
		BrokenSignatures []string
	}

	// Health is the outcome of probing one tool.
	Health struct {
		Tool    string
		Verdict Verdict

		// Detail carries the diagnostic output line that decided the
		// verdict, for warning messages.
		Detail string
	}
)

const (
	// VerdictAbsent means the tool is not resolvable on PATH.
	VerdictAbsent Verdict = iota
	// VerdictBroken means the tool resolves but its diagnostic output
	// matches a known stub signature or lacks the success pattern.
	VerdictBroken
	// VerdictHealthy means the tool produced the expected diagnostic
	// output and may back an acquisition strategy.
	VerdictHealthy
)

// String returns a human-readable verdict name.
func (v Verdict) String() string {
	switch v {
	case VerdictAbsent:
		return "absent"
	case VerdictBroken:
		return "present but broken"
	case VerdictHealthy:
		return "healthy"
	}
	return "unknown"
}

// GitSpec probes git. The broken signatures cover the macOS xcrun shim,
// which ships as /usr/bin/git on every machine and fails on first use
// until the Xcode command line tools are installed.
func GitSpec() ToolSpec {
	return ToolSpec{
		Name:           "git",
		DiagnosticArgs: []string{"--version"},
		SuccessPattern: "git version",
		BrokenSignatures: []string{
			"invalid active developer path",
			"no developer tools were found",
			"xcrun: error",
		},
	}
}

// CurlSpec probes curl.
func CurlSpec() ToolSpec {
	return ToolSpec{
		Name:           "curl",
		DiagnosticArgs: []string{"--version"},
		SuccessPattern: "curl",
	}
}

// TarSpec probes tar. Both GNU tar and bsdtar print their name in the
// version banner.
func TarSpec() ToolSpec {
	return ToolSpec{
		Name:           "tar",
		DiagnosticArgs: []string{"--version"},
		SuccessPattern: "tar",
	}
}

// CheckTool probes a single tool and returns its verdict. The probe is
// side-effect-free beyond the diagnostic invocation itself.
func CheckTool(ctx context.Context, spec ToolSpec) Health {
	if _, err := lookPath(spec.Name); err != nil {
		return Health{Tool: spec.Name, Verdict: VerdictAbsent}
	}

	out, err := runDiagnostic(ctx, spec.Name, spec.DiagnosticArgs...)
	detail := firstLine(string(out))

	for _, sig := range spec.BrokenSignatures {
		if strings.Contains(string(out), sig) {
			return Health{Tool: spec.Name, Verdict: VerdictBroken, Detail: detail}
		}
	}
	if err != nil || !strings.Contains(string(out), spec.SuccessPattern) {
		return Health{Tool: spec.Name, Verdict: VerdictBroken, Detail: detail}
	}

	return Health{Tool: spec.Name, Verdict: VerdictHealthy, Detail: detail}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}
