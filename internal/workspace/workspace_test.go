// SPDX-License-Identifier: MPL-2.0

package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreate_UniquePaths(t *testing.T) {
	t.Parallel()

	a, err := Create("toolscout")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer a.Remove() //nolint:errcheck

	b, err := Create("toolscout")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer b.Remove() //nolint:errcheck

	if a.Path() == b.Path() {
		t.Errorf("two workspaces share a path: %s", a.Path())
	}
	if !strings.Contains(filepath.Base(a.Path()), "toolscout") {
		t.Errorf("workspace name %q missing prefix", a.Path())
	}
}

func TestRemove_DeletesPopulatedTree(t *testing.T) {
	t.Parallel()

	w, err := Create("toolscout")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	nested := filepath.Join(w.Path(), "bundle", "scripts")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(nested, "entry.py"), []byte("print()"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := w.Remove(); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := os.Stat(w.Path()); !os.IsNotExist(err) {
		t.Errorf("workspace still present after Remove: %v", err)
	}
}

func TestRemove_Idempotent(t *testing.T) {
	t.Parallel()

	w, err := Create("toolscout")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := w.Remove(); err != nil {
		t.Fatalf("first Remove() error = %v", err)
	}
	if err := w.Remove(); err != nil {
		t.Fatalf("second Remove() error = %v", err)
	}
}
