// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"slices"
	"sort"
	"testing"

	"toolscout-cli/internal/envprobe"
	"toolscout-cli/internal/usercontext"

	"github.com/google/go-cmp/cmp"
)

func TestArgv_RequiredFlagsAndForwarding(t *testing.T) {
	t.Parallel()

	inv := &Invocation{
		Runtime:    envprobe.Runtime{Command: "python3", Version: "3.11.4"},
		EntryPoint: "ai_tools_discovery.py",
		APIKey:     "k-123",
		Domain:     "example.com",
		ExtraArgs:  []string{"--dry-run", "--depth", "2"},
	}

	want := []string{
		"python3", "ai_tools_discovery.py",
		"--api-key", "k-123",
		"--domain", "example.com",
		"--dry-run", "--depth", "2",
	}
	if diff := cmp.Diff(want, inv.Argv()); diff != "" {
		t.Errorf("Argv() mismatch (-want +got):\n%s", diff)
	}
}

func TestArgv_OptionalAppName(t *testing.T) {
	t.Parallel()

	inv := &Invocation{
		Runtime:    envprobe.Runtime{Command: "python3"},
		EntryPoint: "ai_tools_discovery.py",
		APIKey:     "k",
		Domain:     "d",
		AppName:    "laptop-fleet",
	}

	argv := inv.Argv()
	i := slices.Index(argv, "--app-name")
	if i < 0 || i+1 >= len(argv) || argv[i+1] != "laptop-fleet" {
		t.Errorf("Argv() missing --app-name pair: %v", argv)
	}
}

func TestOverlayEnv_ReplacesCaseInsensitively(t *testing.T) {
	t.Parallel()

	base := []string{"Path=C:\\Windows", "userprofile=C:\\Windows\\system32\\config\\systemprofile", "FOO=bar"}
	got := overlayEnv(base, map[string]string{
		"USERPROFILE": `C:\Users\alice`,
		"APPDATA":     `C:\Users\alice\AppData\Roaming`,
	})

	sort.Strings(got)
	want := []string{
		`APPDATA=C:\Users\alice\AppData\Roaming`,
		"FOO=bar",
		"Path=C:\\Windows",
		`USERPROFILE=C:\Users\alice`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("overlayEnv() mismatch (-want +got):\n%s", diff)
	}
}

func TestOverlayEnv_NoOverridesIsIdentity(t *testing.T) {
	t.Parallel()

	base := []string{"HOME=/home/alice"}
	got := overlayEnv(base, usercontext.Context{}.Overrides())
	if diff := cmp.Diff(base, got); diff != "" {
		t.Errorf("overlayEnv() mismatch (-want +got):\n%s", diff)
	}
}
