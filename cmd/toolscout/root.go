// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"toolscout-cli/internal/config"
	"toolscout-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables debug output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// cfg is the loaded configuration, populated by initRootConfig.
	cfg = config.DefaultConfig()

	// logger is the shared structured logger for all commands.
	logger = log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "toolscout",
	})

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "toolscout",
		Short: "Bootstrap launcher for the coding-tools discovery bundle",
		Long: TitleStyle.Render("toolscout") + SubtitleStyle.Render(" - bootstrap launcher for the coding-tools discovery bundle") + `

toolscout obtains a runnable copy of the discovery bundle on whatever
machine it lands on, finds a compatible Python 3 runtime, forwards your
arguments to the bundle's entry point, and cleans up after itself. It
falls back between transports (sparse git checkout, shallow clone,
tarball download) depending on which tools actually work here.

` + SubtitleStyle.Render("Examples:") + `
  toolscout run --api-key KEY --domain example.com
  toolscout run --api-key KEY --domain example.com --app-name fleet -- --dry-run
  toolscout schedule install --api-key KEY --domain example.com
  toolscout schedule uninstall`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is the platform config dir)")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scheduleCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		printNextSteps(os.Stderr, err)

		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// printNextSteps appends the remediation bullets of an ActionableError
// below the error fang already rendered. Every fatal launcher path
// carries at least one concrete next step; this is where it reaches
// the user.
func printNextSteps(w io.Writer, err error) {
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || !ae.HasSuggestions() {
		return
	}

	fmt.Fprintln(w, ErrorStyle.Render("Cannot continue.")+" Suggested next steps:")
	for _, s := range ae.Suggestions {
		fmt.Fprintln(w, "  • "+s)
	}
}

// initRootConfig reads in the config file and TOOLSCOUT_* env variables.
func initRootConfig() {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		// Always surface config loading errors; defaults keep the tool usable.
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		return
	}
	cfg = loaded

	if !verbose {
		verbose = cfg.Verbose
	}
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
