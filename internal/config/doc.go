// SPDX-License-Identifier: MPL-2.0

// Package config loads toolscout configuration from the platform config
// directory, environment variables, and built-in defaults, in ascending
// precedence of defaults < file < environment.
package config
