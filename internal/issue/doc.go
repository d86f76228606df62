// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error types for toolscout.
//
// Every fatal path in the launcher surfaces an ActionableError: what
// operation failed, which resource was involved, and at least one
// concrete next step the user can take. The cmd layer renders these
// with or without the full error chain depending on --verbose.
package issue
