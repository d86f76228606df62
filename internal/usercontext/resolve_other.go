// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package usercontext

import "github.com/charmbracelet/log"

// resolve returns the ambient context. Service-identity execution is a
// Windows deployment concern; elsewhere the launcher always runs as the
// user whose state the bundle inspects.
func resolve(_ *log.Logger) Context {
	return Current()
}
