// SPDX-License-Identifier: MPL-2.0

// Package usercontext resolves whose user profile the discovery bundle
// should see.
//
// Normally that is the invoking identity's own profile. The exception
// is Windows, where deployment agents run the launcher as LocalSystem:
// the bundle's discovery logic reads user-scoped state (APPDATA and
// friends) that is empty under the service profile, so the resolver
// finds the interactively logged-on user and returns a Context rebound
// to their profile. The Context is an explicit value consumed by the
// invocation forwarder; nothing is written to the process environment
// or to persistent configuration.
package usercontext
