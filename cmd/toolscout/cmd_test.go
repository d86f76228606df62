// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"io"
	"runtime"
	"strings"
	"testing"

	"toolscout-cli/internal/issue"
	"toolscout-cli/internal/schedule"
)

// execute runs the root command in-process with the given argv.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestRun_MissingRequiredFlags(t *testing.T) {
	// Not parallel: cobra commands are package-level state.
	err := execute(t, "run", "--domain", "example.com")
	if err == nil {
		t.Fatal("run without --api-key should fail")
	}
	if !strings.Contains(err.Error(), "api-key") {
		t.Errorf("error = %v, want mention of api-key", err)
	}
}

func TestScheduleInstall_MissingRequiredFlags(t *testing.T) {
	err := execute(t, "schedule", "install")
	if err == nil {
		t.Fatal("schedule install without destination args should fail")
	}
	if !strings.Contains(err.Error(), "api-key") && !strings.Contains(err.Error(), "domain") {
		t.Errorf("error = %v, want mention of the missing flags", err)
	}
}

func TestPrintNextSteps(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	printNextSteps(&buf, issue.NewErrorContext().
		WithOperation("locate python runtime").
		WithSuggestion("Install Python 3 from https://www.python.org/downloads/").
		Build())

	out := buf.String()
	if !strings.Contains(out, "Cannot continue.") {
		t.Errorf("output missing header:\n%s", out)
	}
	if !strings.Contains(out, "• Install Python 3") {
		t.Errorf("output missing suggestion bullet:\n%s", out)
	}
}

func TestPrintNextSteps_PlainErrorPrintsNothing(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	printNextSteps(&buf, errors.New("exit status 1"))
	if buf.Len() != 0 {
		t.Errorf("output = %q, want empty for an error without suggestions", buf.String())
	}
}

func TestScheduleUninstall_UnsupportedPlatformFailsFast(t *testing.T) {
	if runtime.GOOS == "darwin" {
		t.Skip("darwin has a real scheduler backend")
	}

	err := execute(t, "schedule", "uninstall")
	if !errors.Is(err, schedule.ErrUnsupportedPlatform) {
		t.Errorf("error = %v, want ErrUnsupportedPlatform", err)
	}
}
