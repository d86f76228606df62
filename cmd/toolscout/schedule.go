// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"toolscout-cli/internal/issue"
	"toolscout-cli/internal/schedule"

	"github.com/spf13/cobra"
)

var (
	schedAPIKey  string
	schedDomain  string
	schedAppName string

	scheduleCmd = &cobra.Command{
		Use:   "schedule",
		Short: "Manage the recurring discovery job",
		Long: `Schedule registers this launcher with the OS job scheduler so the
discovery bundle runs on a recurring interval. Only macOS (launchd) is
supported; other platforms fail fast rather than half-install.`,
	}

	scheduleInstallCmd = &cobra.Command{
		Use:   "install --api-key KEY --domain DOMAIN [--app-name NAME]",
		Short: "Install or replace the recurring job",
		Long: `Install writes a launchd agent that re-enters 'toolscout run' with the
given destination arguments, fires once immediately, and then repeats
on the configured interval. Installing over an existing job stops and
replaces it; duplicates are never left behind.`,
		RunE: runScheduleInstall,
	}

	scheduleUninstallCmd = &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the recurring job",
		Long: `Uninstall stops the active job registration and deletes its
descriptor and nothing else. Running it when no job is installed is a
no-op success.`,
		RunE: runScheduleUninstall,
	}
)

func init() {
	scheduleInstallCmd.Flags().StringVar(&schedAPIKey, "api-key", "", "API key embedded in the scheduled command line (required)")
	scheduleInstallCmd.Flags().StringVar(&schedDomain, "domain", "", "destination domain embedded in the scheduled command line (required)")
	scheduleInstallCmd.Flags().StringVar(&schedAppName, "app-name", "", "application name embedded in the scheduled command line")
	_ = scheduleInstallCmd.MarkFlagRequired("api-key")
	_ = scheduleInstallCmd.MarkFlagRequired("domain")

	scheduleCmd.AddCommand(scheduleInstallCmd)
	scheduleCmd.AddCommand(scheduleUninstallCmd)
}

func runScheduleInstall(cmd *cobra.Command, _ []string) error {
	backend, err := newSchedulerBackend()
	if err != nil {
		return err
	}

	execPath, err := os.Executable()
	if err != nil {
		return issue.WrapWithOperation(err, "resolve launcher executable path")
	}

	logDir := schedulerLogDir(backend)
	d := schedule.NewDescriptor(execPath, schedAPIKey, schedDomain, schedAppName,
		cfg.Schedule.Interval, logDir)

	if err := schedule.NewManager(backend, logger).Install(d); err != nil {
		return issue.NewErrorContext().
			WithOperation("install scheduled discovery job").
			WithResource(d.Label).
			WithSuggestion("Re-run with --verbose to see the scheduler output").
			Wrap(err).
			Build()
	}

	fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓")+" scheduled job installed (label: "+d.Label+")")
	return nil
}

func runScheduleUninstall(cmd *cobra.Command, _ []string) error {
	backend, err := newSchedulerBackend()
	if err != nil {
		return err
	}

	if err := schedule.NewManager(backend, logger).Uninstall(schedule.DefaultLabel); err != nil {
		return issue.NewErrorContext().
			WithOperation("uninstall scheduled discovery job").
			WithResource(schedule.DefaultLabel).
			Wrap(err).
			Build()
	}

	fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓")+" scheduled job removed")
	return nil
}

func newSchedulerBackend() (schedule.Backend, error) {
	backend, err := schedule.NewBackend(logger)
	if err != nil {
		if errors.Is(err, schedule.ErrUnsupportedPlatform) {
			return nil, issue.NewErrorContext().
				WithOperation("manage the scheduled discovery job").
				WithSuggestion("Scheduling is only available on macOS; run 'toolscout run' directly or use your platform's own scheduler").
				Wrap(err).
				Build()
		}
		return nil, err
	}
	return backend, nil
}

// schedulerLogDir asks the backend for its per-user log directory when
// it exposes one.
func schedulerLogDir(backend schedule.Backend) string {
	if b, ok := backend.(*schedule.LaunchdBackend); ok {
		return b.LogDir()
	}
	return os.TempDir()
}
