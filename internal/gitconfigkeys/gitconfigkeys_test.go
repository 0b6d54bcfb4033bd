// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package gitconfigkeys

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/archmagece/warden/internal/gitcmd"
	"github.com/archmagece/warden/internal/testutil"
)

func setLocalConfig(t *testing.T, dir, key, value string) {
	t.Helper()
	cmd := exec.Command("git", "config", "--local", key, value)
	cmd.Dir = dir
	require.NoError(t, cmd.Run())
}

func TestLoadParsesRecognizedSuffixes(t *testing.T) {
	dir := testutil.TempGitRepo(t)
	setLocalConfig(t, dir, "credential.https://example.test.oauthType", "forgejo")
	setLocalConfig(t, dir, "credential.https://example.test.oauthClientId", "abc123")
	setLocalConfig(t, dir, "credential.https://example.test.oauthScopes", "repo, read:user")

	exec := gitcmd.NewExecutor()
	patches, err := Load(context.Background(), exec, dir, ScopeLocal)
	require.NoError(t, err)

	patch, ok := patches["example.test"]
	require.True(t, ok)
	require.NotNil(t, patch.Type)
	require.Equal(t, "forgejo", string(*patch.Type))
	require.NotNil(t, patch.ClientID)
	require.Equal(t, "abc123", *patch.ClientID)
	require.NotNil(t, patch.Scopes)
	require.Equal(t, []string{"repo", "read:user"}, *patch.Scopes)
}

func TestLoadReturnsEmptyMapWhenNoMatches(t *testing.T) {
	dir := testutil.TempGitRepo(t)
	exec := gitcmd.NewExecutor()
	patches, err := Load(context.Background(), exec, dir, ScopeLocal)
	require.NoError(t, err)
	require.Empty(t, patches)
}

func TestCanonicalHostLowercasesAndStripsScheme(t *testing.T) {
	require.Equal(t, "example.test", canonicalHost("Example.Test"))
	require.Equal(t, "example.test", canonicalHost("https://Example.Test"))
}
