// SPDX-License-Identifier: MPL-2.0

package acquire

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"toolscout-cli/internal/envprobe"
)

// snapshotName is the temporary archive filename inside the workspace.
const snapshotName = "bundle-snapshot.tar.gz"

// TarballDownload is the transport-agnostic fallback: fetch a
// compressed snapshot of the ref with curl and unpack it with tar,
// stripping the single top-level directory the archive format wraps
// around the repository contents.
type TarballDownload struct {
	Curl envprobe.Health
	Tar  envprobe.Health
}

// Name identifies the strategy in logs.
func (s *TarballDownload) Name() string { return "tarball-download" }

// Attempt downloads and extracts the snapshot into the workspace.
func (s *TarballDownload) Attempt(ctx context.Context, req Request) Attempt {
	if s.Curl.Verdict != envprobe.VerdictHealthy {
		return Attempt{Outcome: OutcomeSkipped, Reason: "curl " + s.Curl.Verdict.String()}
	}
	if s.Tar.Verdict != envprobe.VerdictHealthy {
		return Attempt{Outcome: OutcomeSkipped, Reason: "tar " + s.Tar.Verdict.String()}
	}

	url := strings.TrimRight(req.TarballURL, "/") + "/" + req.Ref
	out, err := runTool(ctx, req.Workspace, "curl",
		"-fsSL", "--retry", "2", url, "-o", snapshotName)
	if err != nil {
		return Attempt{Outcome: OutcomeFailed, Err: toolError("curl", out, err)}
	}

	out, err = runTool(ctx, req.Workspace, "tar",
		"-xzf", snapshotName, "--strip-components=1")
	if err != nil {
		return Attempt{Outcome: OutcomeFailed, Err: toolError("tar", out, err)}
	}

	// The archive served its purpose; only the tree matters downstream.
	if err := os.Remove(filepath.Join(req.Workspace, snapshotName)); err != nil {
		return Attempt{Outcome: OutcomeFailed, Err: err}
	}

	return Attempt{Outcome: OutcomeSucceeded}
}
