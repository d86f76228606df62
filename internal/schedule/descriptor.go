// SPDX-License-Identifier: MPL-2.0

package schedule

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"
)

// DefaultLabel is the job label owned exclusively by toolscout. The
// descriptor and log paths are deterministic functions of it, so
// uninstall needs no separate state file.
const DefaultLabel = "com.toolscout.discovery"

// ErrMissingArgument is returned when a required descriptor field is
// absent.
var ErrMissingArgument = errors.New("missing required argument")

// Descriptor is the scheduler-agnostic definition of the recurring job.
// At most one descriptor exists per label on a machine; installing a
// second one replaces the first.
type Descriptor struct {
	// Label uniquely identifies the job to the OS scheduler.
	Label string

	// ProgramArguments is the command line the scheduler runs, argv[0]
	// first. Values are embedded literally; the backend's descriptor
	// format is responsible for escaping them reversibly.
	ProgramArguments []string

	// Interval between runs.
	Interval time.Duration

	// RunAtLoad requests an immediate first execution at registration,
	// in addition to the recurring interval.
	RunAtLoad bool

	// StdoutPath and StderrPath are the append-only log files.
	StdoutPath string
	StderrPath string
}

// NewDescriptor builds the standard launcher job: the given executable
// re-entering the launcher path with the caller's destination
// arguments, on the given interval, with an immediate first run.
func NewDescriptor(execPath, apiKey, domain, appName string, interval time.Duration, logDir string) Descriptor {
	args := []string{execPath, "run", "--api-key", apiKey, "--domain", domain}
	if appName != "" {
		args = append(args, "--app-name", appName)
	}
	return Descriptor{
		Label:            DefaultLabel,
		ProgramArguments: args,
		Interval:         interval,
		RunAtLoad:        true,
		StdoutPath:       filepath.Join(logDir, DefaultLabel+".out.log"),
		StderrPath:       filepath.Join(logDir, DefaultLabel+".err.log"),
	}
}

// Validate reports the first missing required field.
func (d Descriptor) Validate() error {
	if d.Label == "" {
		return fmt.Errorf("%w: label", ErrMissingArgument)
	}
	if len(d.ProgramArguments) == 0 {
		return fmt.Errorf("%w: program arguments", ErrMissingArgument)
	}
	for _, arg := range d.ProgramArguments {
		// An empty element means a required caller value never arrived.
		if arg == "" {
			return fmt.Errorf("%w: empty program argument", ErrMissingArgument)
		}
	}
	if d.Interval <= 0 {
		return fmt.Errorf("%w: interval", ErrMissingArgument)
	}
	return nil
}
