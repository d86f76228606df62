// SPDX-License-Identifier: MPL-2.0

// Package workspace manages the ephemeral staging directory one
// acquisition owns for the lifetime of a single launcher run.
package workspace

import (
	"fmt"
	"os"
	"sync"
)

// Workspace is a uniquely named ephemeral directory. It is created once
// per acquisition request and never shared or reused; Remove is safe to
// defer on every exit path and to call more than once.
type Workspace struct {
	path string

	removeOnce sync.Once
	removeErr  error
}

// Create makes a fresh workspace directory under the system temp root.
// The name embeds prefix plus a unique suffix so concurrent launcher
// invocations never collide.
func Create(prefix string) (*Workspace, error) {
	path, err := os.MkdirTemp("", prefix+"-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace directory: %w", err)
	}
	return &Workspace{path: path}, nil
}

// Path returns the workspace directory.
func (w *Workspace) Path() string {
	return w.path
}

// Remove deletes the workspace and everything staged inside it.
// Idempotent; repeated calls return the first outcome.
func (w *Workspace) Remove() error {
	w.removeOnce.Do(func() {
		w.removeErr = os.RemoveAll(w.path)
	})
	return w.removeErr
}
