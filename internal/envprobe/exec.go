// SPDX-License-Identifier: MPL-2.0

package envprobe

import (
	"context"
	"os/exec"
	"time"
)

// diagnosticTimeout bounds a single probe invocation. Probes are cheap
// version checks; anything slower than this is effectively hung.
const diagnosticTimeout = 10 * time.Second

var (
	// lookPath is a test seam for exec.LookPath. Production code uses the
	// real implementation; tests replace it to simulate absent tools.
	lookPath = exec.LookPath

	// runDiagnostic is a test seam for invoking a probe command and
	// capturing its combined output. Tests replace it so probes never
	// spawn real processes.
	runDiagnostic = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		ctx, cancel := context.WithTimeout(ctx, diagnosticTimeout)
		defer cancel()
		return exec.CommandContext(ctx, name, args...).CombinedOutput()
	}
)
