// SPDX-License-Identifier: MPL-2.0

// Package envprobe inspects the machine the launcher landed on: which
// transfer and decompression tools are usable, and which python runtime
// (if any) can execute the discovery bundle.
//
// Tool checks are tri-state. "Present on PATH" is not enough on macOS,
// where /usr/bin/git is an xcrun shim that resolves fine and then fails
// on first real use until the developer tools are installed. A tool is
// therefore classified Absent, Broken, or Healthy, and only Healthy
// authorizes an acquisition strategy that depends on it. Verdicts are
// computed fresh on every run; the broken state is often a transient
// property of the machine's toolchain installation.
package envprobe
