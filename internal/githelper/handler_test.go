// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package githelper

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	wardenerrors "github.com/archmagece/warden/internal/errors"
	"github.com/archmagece/warden/internal/provider"
)

// fakeStore is an in-memory Store double for handler tests.
type fakeStore struct {
	active map[string]string
	tokens map[string]provider.TokenBundle
	puts   int
	putErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{active: map[string]string{}, tokens: map[string]provider.TokenBundle{}}
}

func tokenKey(host, name string) string { return host + "\x00" + name }

func (s *fakeStore) Active(host string) string { return s.active[host] }

func (s *fakeStore) GetToken(host, name string) (provider.TokenBundle, error) {
	b, ok := s.tokens[tokenKey(host, name)]
	if !ok {
		return provider.TokenBundle{}, wardenerrors.ErrNotFound
	}
	return b, nil
}

func (s *fakeStore) PutToken(host, name string, bundle provider.TokenBundle) error {
	s.puts++
	if s.putErr != nil {
		return s.putErr
	}
	s.tokens[tokenKey(host, name)] = bundle
	return nil
}

func TestHandleGetUnknownHostDeclinesSilently(t *testing.T) {
	h := &Handler{Providers: map[string]provider.Provider{}, Store: newFakeStore()}
	var out bytes.Buffer
	in := "protocol=https\nhost=unknown.test\n\n"
	err := h.Handle(context.Background(), "get", strings.NewReader(in), &out)
	require.NoError(t, err)
	require.Empty(t, out.String())
}

func TestHandleGetValidTokenNoHTTP(t *testing.T) {
	store := newFakeStore()
	store.active["example.test"] = "alice"
	store.tokens[tokenKey("example.test", "alice")] = provider.TokenBundle{AccessToken: "t1", ExpiresAt: time.Now().Add(time.Hour)}

	h := &Handler{
		Providers: map[string]provider.Provider{"example.test": {Host: "example.test", ClientID: "C"}},
		Store:     store,
	}

	var out bytes.Buffer
	in := "protocol=https\nhost=example.test\n\n"
	err := h.Handle(context.Background(), "get", strings.NewReader(in), &out)
	require.NoError(t, err)
	require.Equal(t, "protocol=https\nhost=example.test\nusername=alice\npassword=t1\n\n", out.String())
	require.Equal(t, 0, store.puts)
}

func TestHandleGetPathAwareUsernameOverridesActive(t *testing.T) {
	store := newFakeStore()
	store.active["example.test"] = "alice"
	store.tokens[tokenKey("example.test", "alice")] = provider.TokenBundle{AccessToken: "t-alice", ExpiresAt: time.Now().Add(time.Hour)}
	store.tokens[tokenKey("example.test", "bob")] = provider.TokenBundle{AccessToken: "t-bob", ExpiresAt: time.Now().Add(time.Hour)}

	h := &Handler{
		Providers: map[string]provider.Provider{"example.test": {Host: "example.test", ClientID: "C"}},
		Store:     store,
	}

	var out bytes.Buffer
	in := "protocol=https\nhost=example.test\npath=bob-org/repo\nusername=bob\n\n"
	err := h.Handle(context.Background(), "get", strings.NewReader(in), &out)
	require.NoError(t, err)
	require.Equal(t, "protocol=https\nhost=example.test\nusername=bob\npassword=t-bob\n\n", out.String())
}

func TestHandleGetExpiredTokenRefreshes(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "refresh_token", r.Form.Get("grant_type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"t2","expires_in":3600}`))
	}))
	defer tokenServer.Close()

	store := newFakeStore()
	store.active["example.test"] = "alice"
	store.tokens[tokenKey("example.test", "alice")] = provider.TokenBundle{
		AccessToken:  "t1",
		RefreshToken: "r1",
		ExpiresAt:    time.Now().Add(-10 * time.Second),
	}

	h := &Handler{
		Providers: map[string]provider.Provider{"example.test": {Host: "example.test", ClientID: "C", TokenURL: tokenServer.URL}},
		Store:     store,
	}

	var out bytes.Buffer
	in := "protocol=https\nhost=example.test\n\n"
	err := h.Handle(context.Background(), "get", strings.NewReader(in), &out)
	require.NoError(t, err)
	require.Equal(t, "protocol=https\nhost=example.test\nusername=alice\npassword=t2\n\n", out.String())
	require.Equal(t, "r1", store.tokens[tokenKey("example.test", "alice")].RefreshToken)
}

func TestHandleGetRefreshRejectedNonInteractiveDeclines(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer tokenServer.Close()

	store := newFakeStore()
	store.active["example.test"] = "alice"
	store.tokens[tokenKey("example.test", "alice")] = provider.TokenBundle{
		AccessToken:  "t1",
		RefreshToken: "r1",
		ExpiresAt:    time.Now().Add(-10 * time.Second),
	}

	h := &Handler{
		Providers:     map[string]provider.Provider{"example.test": {Host: "example.test", ClientID: "C", TokenURL: tokenServer.URL}},
		Store:         store,
		IsInteractive: func() bool { return false },
	}

	var out bytes.Buffer
	in := "protocol=https\nhost=example.test\n\n"
	err := h.Handle(context.Background(), "get", strings.NewReader(in), &out)
	require.NoError(t, err)
	require.Empty(t, out.String())
}

func TestHandleGetMissingTokenRunsDeviceLogin(t *testing.T) {
	deviceServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"device_code":"d1","user_code":"ABCD-1234","verification_uri":"https://example.test/activate","interval":1}`))
	}))
	defer deviceServer.Close()

	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"t1","expires_in":3600}`))
	}))
	defer tokenServer.Close()

	store := newFakeStore()
	h := &Handler{
		Providers: map[string]provider.Provider{
			"example.test": {Host: "example.test", ClientID: "C", DeviceAuthURL: deviceServer.URL, TokenURL: tokenServer.URL},
		},
		Store:       store,
		ForceDevice: true,
	}

	var out bytes.Buffer
	in := "protocol=https\nhost=example.test\n\n"
	err := h.Handle(context.Background(), "get", strings.NewReader(in), &out)
	require.NoError(t, err)
	require.Equal(t, "protocol=https\nhost=example.test\nusername=oauth\npassword=t1\n\n", out.String())
	require.Equal(t, 1, store.puts)
}

func TestHandleStoreAndEraseAreNoOps(t *testing.T) {
	h := &Handler{Providers: map[string]provider.Provider{}, Store: newFakeStore()}
	var out bytes.Buffer

	for _, cmd := range []string{"store", "erase"} {
		out.Reset()
		in := "protocol=https\nhost=example.test\nusername=alice\npassword=t1\n\n"
		err := h.Handle(context.Background(), cmd, strings.NewReader(in), &out)
		require.NoError(t, err)
		require.Empty(t, out.String())
	}
}
