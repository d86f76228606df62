// SPDX-License-Identifier: MPL-2.0

package usercontext

import (
	"runtime"
	"testing"
)

const quserSingleUser = ` USERNAME              SESSIONNAME        ID  STATE   IDLE TIME  LOGON TIME
>alice                 console             1  Active      none   8/30/2026 9:02 AM
`

const quserRDPAndConsole = ` USERNAME              SESSIONNAME        ID  STATE   IDLE TIME  LOGON TIME
 bob                   rdp-tcp#2           2  Active         .   8/29/2026 5:11 PM
 carol                 console             1  Active      none   8/30/2026 8:45 AM
`

const quserQualified = ` USERNAME              SESSIONNAME        ID  STATE   IDLE TIME  LOGON TIME
>CORP\dave             console             1  Active      none   8/30/2026 9:02 AM
`

func TestParseConsoleUser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		output string
		want   string
		wantOK bool
	}{
		{name: "single marked session", output: quserSingleUser, want: "alice", wantOK: true},
		{name: "console row wins over rdp", output: quserRDPAndConsole, want: "carol", wantOK: true},
		{name: "domain qualifier stripped", output: quserQualified, want: "dave", wantOK: true},
		{name: "header only", output: " USERNAME  SESSIONNAME  ID  STATE  IDLE TIME  LOGON TIME\n", want: "", wantOK: false},
		{name: "empty output", output: "", want: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseConsoleUser(tt.output)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseConsoleUser() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNormalizeAccount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"alice", "alice"},
		{`CORP\alice`, "alice"},
		{`MACHINE\svc-account`, "svc-account"},
	}

	for _, tt := range tests {
		if got := normalizeAccount(tt.in); got != tt.want {
			t.Errorf("normalizeAccount(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOverrides_CarriesOnlyPresentPaths(t *testing.T) {
	t.Parallel()

	c := Context{Home: "/home/alice"}
	env := c.Overrides()
	if env["HOME"] != "/home/alice" {
		t.Errorf("HOME = %q", env["HOME"])
	}
	if _, ok := env["APPDATA"]; ok {
		t.Error("APPDATA should be absent when the context has no roaming root")
	}
}

func TestCurrent_HasHome(t *testing.T) {
	t.Parallel()

	if Current().Home == "" {
		t.Skip("no resolvable home directory in this environment")
	}
	if runtime.GOOS != "windows" {
		if Current().RoamingData != "" {
			t.Error("RoamingData should be empty off Windows")
		}
	}
}
