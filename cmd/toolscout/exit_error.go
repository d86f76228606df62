// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"toolscout-cli/internal/launch"
)

// ExitError signals a non-zero exit code without forcing os.Exit in
// RunE handlers. The forwarded bundle's exit status travels through it
// unchanged.
type ExitError struct {
	Code launch.ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}
