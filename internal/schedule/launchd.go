// SPDX-License-Identifier: MPL-2.0

package schedule

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"howett.net/plist"
)

// launchdJob is the property-list wire format launchd reads. The plist
// encoder escapes XML metacharacters in caller-supplied values and
// launchd unescapes them at load time, so arguments round-trip to their
// literal form when the job executes.
type launchdJob struct {
	Label             string   `plist:"Label"`
	ProgramArguments  []string `plist:"ProgramArguments"`
	StartInterval     int      `plist:"StartInterval"`
	RunAtLoad         bool     `plist:"RunAtLoad"`
	StandardOutPath   string   `plist:"StandardOutPath"`
	StandardErrorPath string   `plist:"StandardErrorPath"`
}

// LaunchdBackend registers per-user launchd agents.
type LaunchdBackend struct {
	home   string
	uid    int
	logger *log.Logger
}

// runLaunchctl is a test seam for launchctl invocations.
var runLaunchctl = func(args ...string) ([]byte, error) {
	return exec.Command("launchctl", args...).CombinedOutput()
}

// NewLaunchdBackend builds a backend rooted at the invoking user's
// home directory.
func NewLaunchdBackend(logger *log.Logger) (*LaunchdBackend, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return &LaunchdBackend{home: home, uid: os.Getuid(), logger: logger}, nil
}

// newLaunchdBackendAt is the test constructor with an explicit root.
func newLaunchdBackendAt(home string, logger *log.Logger) *LaunchdBackend {
	return &LaunchdBackend{home: home, uid: os.Getuid(), logger: logger}
}

// AgentPath returns the descriptor file path for a label. Deterministic
// so uninstall can locate it without extra state.
func (b *LaunchdBackend) AgentPath(label string) string {
	return filepath.Join(b.home, "Library", "LaunchAgents", label+".plist")
}

// LogDir returns the per-user log directory.
func (b *LaunchdBackend) LogDir() string {
	return filepath.Join(b.home, "Library", "Logs", "toolscout")
}

// IsInstalled reports whether the descriptor file exists.
func (b *LaunchdBackend) IsInstalled(label string) (bool, error) {
	_, err := os.Stat(b.AgentPath(label))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Install renders the descriptor, writes it under LaunchAgents, and
// registers it with launchd. A failed registration rolls the descriptor
// file back so no dangling half-installed state remains.
func (b *LaunchdBackend) Install(d Descriptor) error {
	path := b.AgentPath(d.Label)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create LaunchAgents directory: %w", err)
	}
	for _, logPath := range []string{d.StdoutPath, d.StderrPath} {
		if logPath == "" {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	job := launchdJob{
		Label:             d.Label,
		ProgramArguments:  d.ProgramArguments,
		StartInterval:     int(d.Interval.Seconds()),
		RunAtLoad:         d.RunAtLoad,
		StandardOutPath:   d.StdoutPath,
		StandardErrorPath: d.StderrPath,
	}
	data, err := plist.MarshalIndent(job, plist.XMLFormat, "\t")
	if err != nil {
		return fmt.Errorf("failed to render job descriptor: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write job descriptor: %w", err)
	}

	if out, err := runLaunchctl("bootstrap", b.domainTarget(), path); err != nil {
		// Roll back: a written-but-unregistered descriptor must not dangle.
		if rmErr := os.Remove(path); rmErr != nil {
			b.logger.Warn("failed to roll back descriptor after registration failure",
				"path", path, "err", rmErr)
		}
		return fmt.Errorf("launchctl bootstrap failed: %w: %s", err, strings.TrimSpace(string(out)))
	}

	b.logger.Debug("registered launchd agent", "label", d.Label, "path", path)
	return nil
}

// Uninstall stops the job registration if loaded, then deletes the
// descriptor file. Calling it for an absent label is a no-op success.
func (b *LaunchdBackend) Uninstall(label string) error {
	path := b.AgentPath(label)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	// Bootout fails when the job is not currently loaded; that is fine,
	// the descriptor still has to go.
	if out, err := runLaunchctl("bootout", b.domainTarget()+"/"+label); err != nil {
		b.logger.Debug("launchctl bootout returned non-zero", "label", label,
			"output", strings.TrimSpace(string(out)))
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove job descriptor: %w", err)
	}
	b.logger.Debug("removed launchd agent", "label", label, "path", path)
	return nil
}

func (b *LaunchdBackend) domainTarget() string {
	return fmt.Sprintf("gui/%d", b.uid)
}
