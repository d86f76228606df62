// SPDX-License-Identifier: MPL-2.0

package acquire

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

// fakeStrategy scripts one ladder rung and records whether it ran.
type fakeStrategy struct {
	name     string
	attempt  func(req Request) Attempt
	attempts int
}

func (f *fakeStrategy) Name() string { return f.name }

func (f *fakeStrategy) Attempt(_ context.Context, req Request) Attempt {
	f.attempts++
	return f.attempt(req)
}

func succeedInto(t *testing.T, req Request) Attempt {
	t.Helper()
	dir := filepath.Join(req.Workspace, filepath.FromSlash(req.Subpath))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	return Attempt{Outcome: OutcomeSucceeded}
}

func testRequest(t *testing.T) Request {
	t.Helper()
	return Request{
		RepoURL:    "https://example.com/bundle.git",
		Ref:        "main",
		Subpath:    "scripts/coding_discovery_tools",
		TarballURL: "https://example.com/tarball/refs/heads",
		Workspace:  t.TempDir(),
	}
}

func TestAcquire_FirstSuccessTerminatesLadder(t *testing.T) {
	t.Parallel()

	req := testRequest(t)
	first := &fakeStrategy{name: "first", attempt: func(req Request) Attempt {
		return succeedInto(t, req)
	}}
	second := &fakeStrategy{name: "second", attempt: func(Request) Attempt {
		t.Error("second strategy must not run after a success")
		return Attempt{Outcome: OutcomeFailed}
	}}

	dir, err := New(discardLogger(), first, second).Acquire(context.Background(), req)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	want := filepath.Join(req.Workspace, "scripts", "coding_discovery_tools")
	if dir != want {
		t.Errorf("bundle dir = %q, want %q", dir, want)
	}
	if second.attempts != 0 {
		t.Errorf("second strategy attempted %d times", second.attempts)
	}
}

func TestAcquire_SkippedStrategiesAreNotAttempts(t *testing.T) {
	t.Parallel()

	req := testRequest(t)
	skipped := &fakeStrategy{name: "sparse", attempt: func(Request) Attempt {
		return Attempt{Outcome: OutcomeSkipped, Reason: "git absent"}
	}}
	winner := &fakeStrategy{name: "tarball", attempt: func(req Request) Attempt {
		return succeedInto(t, req)
	}}

	if _, err := New(discardLogger(), skipped, winner).Acquire(context.Background(), req); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if skipped.attempts != 1 || winner.attempts != 1 {
		t.Errorf("attempts = (%d, %d), want (1, 1)", skipped.attempts, winner.attempts)
	}
}

func TestAcquire_FailureClearsWorkspaceBeforeNextStrategy(t *testing.T) {
	t.Parallel()

	req := testRequest(t)
	leaky := &fakeStrategy{name: "leaky", attempt: func(req Request) Attempt {
		if err := os.WriteFile(filepath.Join(req.Workspace, "partial.pack"), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		return Attempt{Outcome: OutcomeFailed, Err: errors.New("network reset")}
	}}
	checker := &fakeStrategy{name: "checker", attempt: func(req Request) Attempt {
		entries, err := os.ReadDir(req.Workspace)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 0 {
			t.Errorf("workspace not cleared before next strategy: %v", entries)
		}
		return succeedInto(t, req)
	}}

	if _, err := New(discardLogger(), leaky, checker).Acquire(context.Background(), req); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
}

func TestAcquire_ExhaustionReportsLastErrorAndTools(t *testing.T) {
	t.Parallel()

	req := testRequest(t)
	skipped := &fakeStrategy{name: "sparse", attempt: func(Request) Attempt {
		return Attempt{Outcome: OutcomeSkipped, Reason: "git present but broken"}
	}}
	failing := &fakeStrategy{name: "tarball", attempt: func(Request) Attempt {
		return Attempt{Outcome: OutcomeFailed, Err: errors.New("HTTP 404")}
	}}

	_, err := New(discardLogger(), skipped, failing).Acquire(context.Background(), req)
	if !errors.Is(err, ErrAcquisitionFailed) {
		t.Fatalf("error = %v, want ErrAcquisitionFailed", err)
	}

	var acqErr *Error
	if !errors.As(err, &acqErr) {
		t.Fatal("error should be *Error")
	}
	if acqErr.LastErr == nil || acqErr.LastErr.Error() != "HTTP 404" {
		t.Errorf("LastErr = %v, want HTTP 404", acqErr.LastErr)
	}
	if len(acqErr.Unavailable) != 1 || acqErr.Unavailable[0] != "git present but broken" {
		t.Errorf("Unavailable = %v", acqErr.Unavailable)
	}
}

func TestAcquire_SuccessWithoutSubpathFallsThrough(t *testing.T) {
	t.Parallel()

	req := testRequest(t)
	hollow := &fakeStrategy{name: "hollow", attempt: func(Request) Attempt {
		// Claims success but stages nothing.
		return Attempt{Outcome: OutcomeSucceeded}
	}}
	winner := &fakeStrategy{name: "winner", attempt: func(req Request) Attempt {
		return succeedInto(t, req)
	}}

	if _, err := New(discardLogger(), hollow, winner).Acquire(context.Background(), req); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if winner.attempts != 1 {
		t.Error("fallback strategy should have been attempted")
	}
}
