// SPDX-License-Identifier: MPL-2.0

// Package schedule installs and removes the recurring launcher job.
//
// The state machine (not installed / installed, with install acting as
// an atomic replace) is platform-independent and lives in Manager. The
// OS-native scheduler is abstracted behind Backend; launchd is the one
// concrete backend, and every other platform fails fast with
// ErrUnsupportedPlatform rather than attempting a partial install.
package schedule
