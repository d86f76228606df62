// SPDX-License-Identifier: MPL-2.0

package schedule

import (
	"errors"
	"io"
	"runtime"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewBackend_FailsFastOffDarwin(t *testing.T) {
	t.Parallel()

	backend, err := NewBackend(log.New(io.Discard))

	if runtime.GOOS == "darwin" {
		if err != nil {
			t.Fatalf("NewBackend() error = %v on darwin", err)
		}
		if backend == nil {
			t.Fatal("NewBackend() returned nil backend on darwin")
		}
		return
	}

	if !errors.Is(err, ErrUnsupportedPlatform) {
		t.Errorf("NewBackend() error = %v, want ErrUnsupportedPlatform", err)
	}
}
