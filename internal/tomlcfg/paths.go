// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package tomlcfg resolves warden's configuration/state directory and
// reads/writes its three TOML files (oauth.toml, profiles.toml,
// state.toml) via github.com/pelletier/go-toml/v2.
package tomlcfg

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigDirName is the directory name under $XDG_CONFIG_HOME (or
// ~/.config as fallback) that holds warden's configuration and state.
const ConfigDirName = "warden"

const (
	OAuthFileName    = "oauth.toml"
	ProfilesFileName = "profiles.toml"
	StateFileName    = "state.toml"
)

// Paths resolves the three config-dir file locations, honoring spec
// §4.1's "$XDG_CONFIG_HOME/warden (fallback ~/.config/warden)".
type Paths struct {
	ConfigDir string
}

// NewPaths resolves the config directory. override, if non-empty, is the
// --config flag value and takes precedence over $XDG_CONFIG_HOME (spec's
// supplemented "--config PATH" override, documented in SPEC_FULL.md).
func NewPaths(override string) (*Paths, error) {
	if override != "" {
		return &Paths{ConfigDir: override}, nil
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return &Paths{ConfigDir: filepath.Join(xdg, ConfigDirName)}, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return &Paths{ConfigDir: filepath.Join(home, ".config", ConfigDirName)}, nil
}

func (p *Paths) OAuthFile() string    { return filepath.Join(p.ConfigDir, OAuthFileName) }
func (p *Paths) ProfilesFile() string { return filepath.Join(p.ConfigDir, ProfilesFileName) }
func (p *Paths) StateFile() string    { return filepath.Join(p.ConfigDir, StateFileName) }

// EnsureConfigDir creates the config directory (user access only), mirroring
// the 0700 permission the teacher's config.Paths.EnsureDirectories uses.
func (p *Paths) EnsureConfigDir() error {
	if err := os.MkdirAll(p.ConfigDir, 0o700); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", p.ConfigDir, err)
	}
	return nil
}
