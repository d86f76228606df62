// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"toolscout-cli/internal/acquire"
	"toolscout-cli/internal/envprobe"
	"toolscout-cli/internal/issue"
	"toolscout-cli/internal/launch"
	"toolscout-cli/internal/usercontext"
	"toolscout-cli/internal/workspace"

	"github.com/spf13/cobra"
)

var (
	runAPIKey  string
	runDomain  string
	runAppName string

	runCmd = &cobra.Command{
		Use:   "run --api-key KEY --domain DOMAIN [--app-name NAME] [-- args...]",
		Short: "Acquire the discovery bundle and run it here",
		Long: `Run probes this machine for a Python 3 runtime and working transfer
tools, stages the discovery bundle into an ephemeral workspace, hands
your arguments to the bundle's entry point, and removes the workspace
when the bundle exits. Arguments after the recognized flags are
forwarded to the bundle verbatim.`,
		RunE: runLauncher,
	}
)

func init() {
	runCmd.Flags().StringVar(&runAPIKey, "api-key", "", "API key for report submission (required)")
	runCmd.Flags().StringVar(&runDomain, "domain", "", "destination domain for reports (required)")
	runCmd.Flags().StringVar(&runAppName, "app-name", "", "application name attached to reports")
	_ = runCmd.MarkFlagRequired("api-key")
	_ = runCmd.MarkFlagRequired("domain")
}

func runLauncher(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Cheap, side-effect-free probes first.
	rt, err := envprobe.ProbeRuntime(ctx, envprobe.DefaultRuntimeCandidates())
	if err != nil {
		return runtimeProbeError(err)
	}
	logger.Debug("runtime selected", "command", rt.Command, "version", rt.Version)

	gitHealth := envprobe.CheckTool(ctx, envprobe.GitSpec())
	curlHealth := envprobe.CheckTool(ctx, envprobe.CurlSpec())
	tarHealth := envprobe.CheckTool(ctx, envprobe.TarSpec())
	for _, h := range []envprobe.Health{gitHealth, curlHealth, tarHealth} {
		logger.Debug("tool probed", "tool", h.Tool, "verdict", h.Verdict.String(), "detail", h.Detail)
	}

	ws, err := workspace.Create("toolscout")
	if err != nil {
		return issue.WrapWithOperation(err, "create ephemeral workspace")
	}
	// Guaranteed on every exit path, including interrupt-driven
	// context cancellation unwinding through RunE.
	defer func() {
		if err := ws.Remove(); err != nil {
			logger.Warn("failed to remove workspace", "path", ws.Path(), "err", err)
		}
	}()

	acq := acquire.New(logger,
		&acquire.SparseCheckout{Git: gitHealth},
		&acquire.ShallowClone{Git: gitHealth},
		&acquire.TarballDownload{Curl: curlHealth, Tar: tarHealth},
	)
	bundleDir, err := acq.Acquire(ctx, acquire.Request{
		RepoURL:    cfg.Bundle.RepoURL,
		Ref:        cfg.Bundle.Ref,
		Subpath:    cfg.Bundle.Subpath,
		TarballURL: cfg.Bundle.TarballURL,
		Workspace:  ws.Path(),
	})
	if err != nil {
		return acquisitionError(err)
	}

	user := usercontext.Resolve(logger)

	code, err := launch.Run(ctx, &launch.Invocation{
		Runtime:    rt,
		BundleDir:  bundleDir,
		EntryPoint: cfg.Bundle.EntryPoint,
		APIKey:     runAPIKey,
		Domain:     runDomain,
		AppName:    runAppName,
		ExtraArgs:  args,
		User:       user,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Stdin:      os.Stdin,
	})
	if err != nil {
		return issue.WrapWithOperation(err, "run discovery bundle")
	}
	if !code.IsSuccess() {
		// The bundle's own exit status passes through unreinterpreted.
		return &ExitError{Code: code}
	}

	logger.Debug("discovery bundle completed successfully")
	return nil
}

// runtimeProbeError turns probe failures into actionable guidance; the
// remediation differs between "nothing installed" and "wrong default".
func runtimeProbeError(err error) error {
	builder := issue.NewErrorContext().
		WithOperation("locate a Python 3 runtime").
		Wrap(err)

	var mismatch *envprobe.VersionMismatchError
	switch {
	case errors.As(err, &mismatch):
		builder.WithResource(mismatch.Command).
			WithSuggestion(fmt.Sprintf("%q runs Python %s; point your PATH at a Python 3 interpreter or install python3", mismatch.Command, mismatch.Version))
	default:
		builder.WithSuggestion("Install Python 3 from https://www.python.org/downloads/ and re-run")
	}
	return builder.Build()
}

// acquisitionError decorates strategy exhaustion with the tool guidance
// the acquirer collected.
func acquisitionError(err error) error {
	builder := issue.NewErrorContext().
		WithOperation("acquire the discovery bundle").
		WithResource(cfg.Bundle.RepoURL).
		Wrap(err)

	var acqErr *acquire.Error
	if errors.As(err, &acqErr) && len(acqErr.Unavailable) > 0 {
		for _, tool := range acqErr.Unavailable {
			builder.WithSuggestion("Fix or install: " + tool)
		}
	} else {
		builder.WithSuggestion("Check network connectivity and that git or curl+tar are installed")
	}
	return builder.Build()
}
