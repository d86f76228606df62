// SPDX-License-Identifier: MPL-2.0

package usercontext

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// Context is the user profile the forwarded bundle process runs
// against. It is a plain value; resolving one has no side effects.
type Context struct {
	// Username is the unqualified account name (no domain prefix).
	Username string

	// Home is the profile root (HOME / USERPROFILE).
	Home string

	// RoamingData and LocalData are the user-scoped data roots. Empty on
	// platforms that only use Home.
	RoamingData string
	LocalData   string
}

// Current returns the invoking identity's own context.
func Current() Context {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}

	c := Context{Home: home}
	if runtime.GOOS == "windows" {
		c.RoamingData = os.Getenv("APPDATA")
		c.LocalData = os.Getenv("LOCALAPPDATA")
	}
	return c
}

// forUser builds a Context rooted at the given profile directory.
func forUser(username, profile string) Context {
	c := Context{
		Username: username,
		Home:     profile,
	}
	if runtime.GOOS == "windows" {
		c.RoamingData = filepath.Join(profile, "AppData", "Roaming")
		c.LocalData = filepath.Join(profile, "AppData", "Local")
	}
	return c
}

// Overrides returns the environment variables that rebind a child
// process to this context. Only variables the context actually carries
// are emitted.
func (c Context) Overrides() map[string]string {
	env := map[string]string{}
	if c.Home != "" {
		env["HOME"] = c.Home
		if runtime.GOOS == "windows" {
			env["USERPROFILE"] = c.Home
		}
	}
	if c.RoamingData != "" {
		env["APPDATA"] = c.RoamingData
	}
	if c.LocalData != "" {
		env["LOCALAPPDATA"] = c.LocalData
	}
	return env
}

// Resolve returns the context the forwarded process should run under.
// On Windows, when the launcher runs as the service identity, it is the
// interactive console user's context; an unresolvable user degrades to
// the ambient context with a warning that discovery results may be
// empty. Everywhere else it is simply the ambient context.
func Resolve(logger *log.Logger) Context {
	return resolve(logger)
}
