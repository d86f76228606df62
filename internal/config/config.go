// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name, used for config and log directories.
	AppName = "toolscout"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "yaml"
)

type (
	// Config holds the launcher settings. All fields have working defaults;
	// a config file is optional.
	Config struct {
		// Bundle describes where the discovery bundle lives and how to run it.
		Bundle BundleConfig `mapstructure:"bundle"`

		// Schedule controls the recurring launchd job.
		Schedule ScheduleConfig `mapstructure:"schedule"`

		// Verbose enables debug logging when set in the config file;
		// the --verbose flag takes precedence.
		Verbose bool `mapstructure:"verbose"`
	}

	// BundleConfig locates the remote discovery bundle.
	BundleConfig struct {
		// RepoURL is the git locator of the bundle repository.
		RepoURL string `mapstructure:"repo_url"`

		// Ref is the branch or tag to fetch.
		Ref string `mapstructure:"ref"`

		// Subpath narrows the checkout to the bundle directory.
		Subpath string `mapstructure:"subpath"`

		// EntryPoint is the script path, relative to Subpath, handed to
		// the python runtime.
		EntryPoint string `mapstructure:"entry_point"`

		// TarballURL is the archive-download endpoint for Ref snapshots.
		// The ref is appended as the final path element.
		TarballURL string `mapstructure:"tarball_url"`
	}

	// ScheduleConfig controls the recurring job registration.
	ScheduleConfig struct {
		// Interval between scheduled runs.
		Interval time.Duration `mapstructure:"interval"`
	}
)

// configDirOverride allows tests to redirect the config directory.
var configDirOverride string

// SetConfigDirOverride redirects config lookups, primarily for tests.
// Pass "" to restore the platform default.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// DefaultConfig returns the built-in defaults used when no config file
// or environment override is present.
func DefaultConfig() *Config {
	return &Config{
		Bundle: BundleConfig{
			RepoURL:    "https://github.com/toolscout/coding-discovery-tools.git",
			Ref:        "main",
			Subpath:    "scripts/coding_discovery_tools",
			EntryPoint: "ai_tools_discovery.py",
			TarballURL: "https://codeload.github.com/toolscout/coding-discovery-tools/tar.gz/refs/heads",
		},
		Schedule: ScheduleConfig{
			Interval: 12 * time.Hour,
		},
	}
}

// ConfigDir returns the toolscout configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// Load reads the configuration from the given file path, or from the
// default location when path is empty. A missing config file is not an
// error; defaults and environment overrides still apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("bundle.repo_url", defaults.Bundle.RepoURL)
	v.SetDefault("bundle.ref", defaults.Bundle.Ref)
	v.SetDefault("bundle.subpath", defaults.Bundle.Subpath)
	v.SetDefault("bundle.entry_point", defaults.Bundle.EntryPoint)
	v.SetDefault("bundle.tarball_url", defaults.Bundle.TarballURL)
	v.SetDefault("schedule.interval", defaults.Schedule.Interval)
	v.SetDefault("verbose", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		dir, err := ConfigDir()
		if err != nil {
			return nil, err
		}
		v.SetConfigName(ConfigFileName)
		v.SetConfigType(ConfigFileExt)
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks structural constraints the launcher depends on.
func (c *Config) Validate() error {
	if c.Bundle.RepoURL == "" {
		return errors.New("bundle.repo_url must not be empty")
	}
	if c.Bundle.Ref == "" {
		return errors.New("bundle.ref must not be empty")
	}
	if c.Bundle.EntryPoint == "" {
		return errors.New("bundle.entry_point must not be empty")
	}
	if c.Schedule.Interval < time.Minute {
		return fmt.Errorf("schedule.interval %s is below the 1m minimum", c.Schedule.Interval)
	}
	return nil
}
