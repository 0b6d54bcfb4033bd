// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/archmagece/warden/internal/tomlcfg"
)

func writeProfilesTOML(t *testing.T, contents string) *tomlcfg.Paths {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, tomlcfg.ProfilesFileName), []byte(contents), 0o600))
	return &tomlcfg.Paths{ConfigDir: dir}
}

func TestLoadParsesProfilesRulesAndPatterns(t *testing.T) {
	paths := writeProfilesTOML(t, `
[profiles.work]
"user.name" = "Alice Work"
"user.email" = "alice@work.example"

[profiles.default]
"user.name" = "Alice"
"user.email" = "alice@personal.example"

[[rules]]
profile = "work"
owner = "Company"

[[rules]]
profile = "default"

[[patterns]]
name = "custom-shorthand"
regex = '^gh:(?P<owner>[^/]+)/(?P<repo>[^/]+)$'
host = "github.com"
infer = true
`)

	r, err := Load(paths)
	require.NoError(t, err)

	p, err := r.Profile("work")
	require.NoError(t, err)
	require.Equal(t, "Alice Work", p["user.name"])

	list := r.List()
	require.Len(t, list, 2)
	require.Equal(t, "default", list[0].Name)
	require.Equal(t, "work", list[1].Name)

	name, err := r.resolveByRemote("gh:Company/proj")
	require.NoError(t, err)
	require.Equal(t, "work", name)
}

func TestLoadRejectsInvalidPatternRegex(t *testing.T) {
	paths := writeProfilesTOML(t, `
[[patterns]]
name = "broken"
regex = "(unterminated"
`)
	_, err := Load(paths)
	require.Error(t, err)
}

func TestLoadMissingFileYieldsEmptyResolver(t *testing.T) {
	dir := t.TempDir()
	paths := &tomlcfg.Paths{ConfigDir: dir}
	r, err := Load(paths)
	require.NoError(t, err)
	require.Empty(t, r.List())
}
