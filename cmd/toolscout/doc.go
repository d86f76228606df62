// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for toolscout.
//
// This package implements the Cobra command hierarchy: the root
// command, the launcher path (run), and the scheduled-job lifecycle
// (schedule install / schedule uninstall).
package cmd
