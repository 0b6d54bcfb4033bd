// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package tomlcfg

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// Read reads and unmarshals path into v. A missing file is not an error; v
// is left at its zero value so callers can treat "file absent" the same as
// "file present but empty". Exported for oauth.toml/profiles.toml/state.toml
// consumers outside this package (internal/provider, internal/profile,
// internal/credstore).
func Read(path string, v any) error {
	return readTOML(path, v)
}

// WriteAtomic marshals v and replaces path via write-temp-then-rename (spec
// §5/§9). Exported for internal/credstore's state.toml writer.
func WriteAtomic(path string, v any) error {
	return writeTOMLAtomic(path, v)
}

func readTOML(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// writeTOMLAtomic marshals v and replaces path via write-temp-then-rename,
// per spec §5/§9: this is what lets concurrent Git invocations race on
// state.toml without corrupting it.
func writeTOMLAtomic(path string, v any) error {
	data, err := toml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to chmod %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename %s to %s: %w", tmpPath, path, err)
	}

	return nil
}
