// SPDX-License-Identifier: MPL-2.0

// Package acquire obtains a working copy of the discovery bundle into
// an ephemeral workspace.
//
// Acquisition is a fixed ladder of transport strategies: sparse git
// checkout, full shallow clone, then tarball download and extract.
// Strategies run strictly in sequence, each at most once, and the first
// success terminates the ladder. A strategy whose prerequisite tool is
// not healthy is skipped outright rather than attempted and failed, so
// failure attribution stays unambiguous.
package acquire
