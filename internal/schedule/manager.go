// SPDX-License-Identifier: MPL-2.0

package schedule

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Manager owns the job lifecycle over one Backend. Its rules are
// platform-independent: install validates then atomically replaces any
// existing job with the same label, and uninstall of a job that is not
// installed succeeds without touching anything.
type Manager struct {
	backend Backend
	logger  *log.Logger
}

// NewManager wires a Manager to a scheduler backend.
func NewManager(backend Backend, logger *log.Logger) *Manager {
	return &Manager{backend: backend, logger: logger}
}

// Install registers the descriptor, replacing any existing job bearing
// the same label. Duplicate or orphaned registrations are never left
// behind: the existing job is stopped and removed before the new
// descriptor is written.
func (m *Manager) Install(d Descriptor) error {
	if err := d.Validate(); err != nil {
		return err
	}

	installed, err := m.backend.IsInstalled(d.Label)
	if err != nil {
		return fmt.Errorf("failed to query existing job: %w", err)
	}
	if installed {
		m.logger.Debug("replacing existing scheduled job", "label", d.Label)
		if err := m.backend.Uninstall(d.Label); err != nil {
			return fmt.Errorf("failed to remove existing job before replacement: %w", err)
		}
	}

	if err := m.backend.Install(d); err != nil {
		return err
	}
	m.logger.Info("scheduled job installed", "label", d.Label, "interval", d.Interval)
	return nil
}

// Uninstall tears the job down completely. Idempotent: when nothing is
// installed it returns success and performs no mutation.
func (m *Manager) Uninstall(label string) error {
	installed, err := m.backend.IsInstalled(label)
	if err != nil {
		return fmt.Errorf("failed to query existing job: %w", err)
	}
	if !installed {
		m.logger.Debug("no scheduled job to uninstall", "label", label)
		return nil
	}

	if err := m.backend.Uninstall(label); err != nil {
		return err
	}
	m.logger.Info("scheduled job removed", "label", label)
	return nil
}
