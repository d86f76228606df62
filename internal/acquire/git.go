// SPDX-License-Identifier: MPL-2.0

package acquire

import (
	"context"

	"toolscout-cli/internal/envprobe"
)

type (
	// SparseCheckout is the narrow-transfer strategy: a shallow,
	// blob-filtered clone restricted to the request subpath.
	SparseCheckout struct {
		Git envprobe.Health
	}

	// ShallowClone is the full-transfer strategy: the same shallow clone
	// without the sparse filter. It backstops remotes and git versions
	// that reject the sparse protocol; per the observed behavior, any
	// sparse failure falls through here without a retry.
	ShallowClone struct {
		Git envprobe.Health
	}
)

// Name identifies the strategy in logs.
func (s *SparseCheckout) Name() string { return "sparse-checkout" }

// Attempt performs the narrow transfer into the request workspace.
func (s *SparseCheckout) Attempt(ctx context.Context, req Request) Attempt {
	if s.Git.Verdict != envprobe.VerdictHealthy {
		return Attempt{Outcome: OutcomeSkipped, Reason: "git " + s.Git.Verdict.String()}
	}

	out, err := runTool(ctx, req.Workspace, "git",
		"clone", "--depth", "1", "--filter=blob:none", "--sparse",
		"--branch", req.Ref, req.RepoURL, ".")
	if err != nil {
		return Attempt{Outcome: OutcomeFailed, Err: toolError("git clone --sparse", out, err)}
	}

	out, err = runTool(ctx, req.Workspace, "git", "sparse-checkout", "set", req.Subpath)
	if err != nil {
		return Attempt{Outcome: OutcomeFailed, Err: toolError("git sparse-checkout set", out, err)}
	}

	return Attempt{Outcome: OutcomeSucceeded}
}

// Name identifies the strategy in logs.
func (s *ShallowClone) Name() string { return "shallow-clone" }

// Attempt performs the unfiltered shallow transfer.
func (s *ShallowClone) Attempt(ctx context.Context, req Request) Attempt {
	if s.Git.Verdict != envprobe.VerdictHealthy {
		return Attempt{Outcome: OutcomeSkipped, Reason: "git " + s.Git.Verdict.String()}
	}

	out, err := runTool(ctx, req.Workspace, "git",
		"clone", "--depth", "1", "--branch", req.Ref, req.RepoURL, ".")
	if err != nil {
		return Attempt{Outcome: OutcomeFailed, Err: toolError("git clone", out, err)}
	}

	return Attempt{Outcome: OutcomeSucceeded}
}
