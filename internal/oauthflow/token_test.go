// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package oauthflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	wardenerrors "github.com/archmagece/warden/internal/errors"
)

func TestParseTokenResponseJSON(t *testing.T) {
	body := []byte(`{"access_token":"t1","refresh_token":"r1","expires_in":3600,"token_type":"bearer"}`)
	tr, err := parseTokenResponse(200, "application/json", body)
	require.NoError(t, err)
	require.Equal(t, "t1", tr.AccessToken)
	require.Equal(t, int64(3600), tr.ExpiresIn)
}

func TestParseTokenResponseFormEncoded(t *testing.T) {
	body := []byte(`access_token=t1&refresh_token=r1&expires_in=3600&token_type=bearer`)
	tr, err := parseTokenResponse(200, "application/x-www-form-urlencoded", body)
	require.NoError(t, err)
	require.Equal(t, "t1", tr.AccessToken)
	require.Equal(t, "r1", tr.RefreshToken)
}

func TestParseTokenResponseHTTPError(t *testing.T) {
	_, err := parseTokenResponse(500, "application/json", []byte(`internal error`))
	require.ErrorIs(t, err, wardenerrors.ErrProviderHTTP)
}

func TestParseTokenResponseOAuthError(t *testing.T) {
	body := []byte(`{"error":"invalid_grant","error_description":"bad code"}`)
	_, err := parseTokenResponse(400, "application/json", body)
	require.ErrorIs(t, err, wardenerrors.ErrAuthorizationDenied)
}

func TestParseTokenResponseMissingAccessToken(t *testing.T) {
	_, err := parseTokenResponse(200, "application/json", []byte(`{}`))
	require.ErrorIs(t, err, wardenerrors.ErrMalformedTokenResponse)
}

func TestToOAuth2TokenComputesExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tok := toOAuth2Token(now, tokenResponse{AccessToken: "t1", ExpiresIn: 3600})
	require.Equal(t, now.Add(time.Hour), tok.Expiry)
}

func TestToBundleDefaultsTokenType(t *testing.T) {
	now := time.Now()
	tok := toOAuth2Token(now, tokenResponse{AccessToken: "t1"})
	bundle := toBundle(tok, "repo")
	require.Equal(t, "bearer", bundle.TokenType)
	require.Equal(t, "repo", bundle.Scope)
}
