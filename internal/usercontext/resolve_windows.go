// SPDX-License-Identifier: MPL-2.0

//go:build windows

package usercontext

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

// resolve rebinds to the console user's profile when running as
// LocalSystem. Deployment agents install and fire the launcher under
// the service identity, whose profile holds none of the user-scoped
// state the discovery bundle inspects.
func resolve(logger *log.Logger) Context {
	if !runningAsSystem() {
		return Current()
	}

	out, err := exec.Command("quser").CombinedOutput()
	if err != nil {
		// quser exits non-zero when nobody is logged on.
		logger.Warn("running as SYSTEM with no interactive user; discovery results may be empty")
		return Current()
	}

	username, ok := ParseConsoleUser(string(out))
	if !ok {
		logger.Warn("running as SYSTEM with no interactive user; discovery results may be empty")
		return Current()
	}

	profile := filepath.Join(profilesDirectory(), username)
	if _, err := os.Stat(profile); err != nil {
		logger.Warn("console user has no profile directory; staying on service profile",
			"user", username, "path", profile)
		return Current()
	}

	logger.Debug("rebound execution context to console user", "user", username, "profile", profile)
	return forUser(username, profile)
}

// runningAsSystem reports whether the process token belongs to the
// LocalSystem account.
func runningAsSystem() bool {
	var token windows.Token
	if err := windows.OpenProcessToken(windows.CurrentProcess(), windows.TOKEN_QUERY, &token); err != nil {
		return false
	}
	defer token.Close()

	user, err := token.GetTokenUser()
	if err != nil {
		return false
	}

	system, err := windows.CreateWellKnownSid(windows.WinLocalSystemSid)
	if err != nil {
		return false
	}
	return user.User.Sid.Equals(system)
}

// profilesDirectory returns the root under which per-user profiles
// live, from the ProfileList registry key, defaulting to C:\Users.
func profilesDirectory() string {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE,
		`SOFTWARE\Microsoft\Windows NT\CurrentVersion\ProfileList`, registry.QUERY_VALUE)
	if err != nil {
		return `C:\Users`
	}
	defer key.Close()

	dir, _, err := key.GetStringValue("ProfilesDirectory")
	if err != nil || dir == "" {
		return `C:\Users`
	}
	return os.ExpandEnv(dir)
}
