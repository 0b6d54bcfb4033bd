// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package oauthflow

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/archmagece/warden/internal/provider"
)

func TestRefreshPreservesOriginalTokenWhenOmitted(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "refresh_token", r.Form.Get("grant_type"))
		require.Equal(t, "r-old", r.Form.Get("refresh_token"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"t2","expires_in":3600}`))
	}))
	defer tokenServer.Close()

	p := provider.Provider{Host: "example.test", ClientID: "C", TokenURL: tokenServer.URL}
	bundle, err := Refresh(context.Background(), p, "r-old", Options{Timeout: 5 * time.Second})
	require.NoError(t, err)
	require.Equal(t, "t2", bundle.AccessToken)
	require.Equal(t, "r-old", bundle.RefreshToken)
}

func TestRefreshReplacesTokenWhenProvided(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"t2","refresh_token":"r-new","expires_in":3600}`))
	}))
	defer tokenServer.Close()

	p := provider.Provider{Host: "example.test", ClientID: "C", TokenURL: tokenServer.URL}
	bundle, err := Refresh(context.Background(), p, "r-old", Options{Timeout: 5 * time.Second})
	require.NoError(t, err)
	require.Equal(t, "r-new", bundle.RefreshToken)
}

func TestIsInvalidRefreshTokenOn4xx(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer tokenServer.Close()

	p := provider.Provider{Host: "example.test", ClientID: "C", TokenURL: tokenServer.URL}
	_, err := Refresh(context.Background(), p, "r-old", Options{Timeout: 5 * time.Second})
	require.Error(t, err)
	require.True(t, IsInvalidRefreshToken(err))
}

func TestIsInvalidRefreshTokenFalseOn5xx(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`boom`))
	}))
	defer tokenServer.Close()

	p := provider.Provider{Host: "example.test", ClientID: "C", TokenURL: tokenServer.URL}
	_, err := Refresh(context.Background(), p, "r-old", Options{Timeout: 5 * time.Second})
	require.Error(t, err)
	require.False(t, IsInvalidRefreshToken(err))
}
