// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package keyring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	wardenerrors "github.com/archmagece/warden/internal/errors"
	"github.com/archmagece/warden/internal/provider"
)

func TestPutGetBundleRoundTrip(t *testing.T) {
	kr := NewMemoryKeyring()
	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)

	in := provider.TokenBundle{
		AccessToken:  "t1",
		RefreshToken: "r1",
		ExpiresAt:    expires,
		TokenType:    "bearer",
		Scope:        "repo",
	}

	require.NoError(t, PutBundle(kr, "example.test", "alice", in))

	out, err := GetBundle(kr, "example.test", "alice")
	require.NoError(t, err)
	require.Equal(t, "t1", out.AccessToken)
	require.Equal(t, "r1", out.RefreshToken)
	require.True(t, out.ExpiresAt.Equal(expires))
	require.Equal(t, "repo", out.Scope)
}

func TestGetBundleMissingAccessIsNotFound(t *testing.T) {
	kr := NewMemoryKeyring()
	_, err := GetBundle(kr, "example.test", "alice")
	require.ErrorIs(t, err, wardenerrors.ErrNotFound)
}

func TestGetBundleWithoutRefreshOrExpiry(t *testing.T) {
	kr := NewMemoryKeyring()
	require.NoError(t, PutBundle(kr, "example.test", "alice", provider.TokenBundle{AccessToken: "t1"}))

	out, err := GetBundle(kr, "example.test", "alice")
	require.NoError(t, err)
	require.Equal(t, "t1", out.AccessToken)
	require.Empty(t, out.RefreshToken)
	require.True(t, out.ExpiresAt.IsZero())
}

func TestDeleteBundleRemovesAllFields(t *testing.T) {
	kr := NewMemoryKeyring()
	require.NoError(t, PutBundle(kr, "example.test", "alice", provider.TokenBundle{
		AccessToken: "t1", RefreshToken: "r1",
	}))
	require.NoError(t, DeleteBundle(kr, "example.test", "alice"))

	_, err := GetBundle(kr, "example.test", "alice")
	require.ErrorIs(t, err, wardenerrors.ErrNotFound)
}
