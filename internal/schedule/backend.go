// SPDX-License-Identifier: MPL-2.0

package schedule

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"
)

// ErrUnsupportedPlatform is returned on operating systems without a
// scheduler backend. The install must fail fast, not partially.
var ErrUnsupportedPlatform = errors.New("scheduled jobs are not supported on this platform")

// Backend is one OS scheduler. Implementations own the descriptor
// format and the registration mechanics; the replace/idempotence rules
// live in Manager.
type Backend interface {
	// Install writes and registers the descriptor. On registration
	// failure no descriptor file may be left behind.
	Install(d Descriptor) error

	// Uninstall stops and removes the job with the given label. Absence
	// is not an error.
	Uninstall(label string) error

	// IsInstalled reports whether a descriptor with the label exists.
	IsInstalled(label string) (bool, error)
}

// NewBackend returns the scheduler backend for the current operating
// system.
func NewBackend(logger *log.Logger) (Backend, error) {
	if runtime.GOOS != "darwin" {
		return nil, fmt.Errorf("%w (%s)", ErrUnsupportedPlatform, runtime.GOOS)
	}
	return NewLaunchdBackend(logger)
}
