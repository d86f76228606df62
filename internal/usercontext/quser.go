// SPDX-License-Identifier: MPL-2.0

package usercontext

import "strings"

// ParseConsoleUser extracts the interactively logged-on account from
// `quser` output. The current session is marked with a leading '>';
// failing that, the first row attached to the console session is used.
// The returned name is normalized: any DOMAIN\ or machine qualifier is
// stripped. Returns false when no interactive user is logged on.
//
// Kept free of build tags so the parse logic is testable on every
// platform.
func ParseConsoleUser(output string) (string, bool) {
	lines := strings.Split(output, "\n")
	if len(lines) < 2 {
		return "", false
	}

	var fallback string
	for _, line := range lines[1:] {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		marked := strings.HasPrefix(trimmed, ">")
		fields := strings.Fields(strings.TrimPrefix(trimmed, ">"))
		if len(fields) < 2 {
			continue
		}

		name := normalizeAccount(fields[0])
		if name == "" {
			continue
		}
		if marked {
			return name, true
		}
		if fallback == "" && strings.EqualFold(fields[1], "console") {
			fallback = name
		}
	}

	if fallback != "" {
		return fallback, true
	}
	return "", false
}

// normalizeAccount strips a DOMAIN\ or MACHINE\ qualifier from an
// account name.
func normalizeAccount(account string) string {
	if i := strings.LastIndexByte(account, '\\'); i >= 0 {
		account = account[i+1:]
	}
	return account
}
