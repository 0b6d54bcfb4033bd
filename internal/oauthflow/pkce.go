// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package oauthflow

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	wardenerrors "github.com/archmagece/warden/internal/errors"
	"github.com/archmagece/warden/internal/provider"
)

// callbackResult is what the loopback handler hands back to the flow once
// it has accepted its one permitted request (spec §5: "reject all but the
// first accepted connection").
type callbackResult struct {
	code  string
	state string
	err   error
}

// runAuthCodeFlow performs Authorization Code + PKCE per spec §4.4: bind
// the loopback listener first (so the redirect URI is accurate), build the
// authorization URL, wait for exactly one callback, then exchange the code.
func runAuthCodeFlow(ctx context.Context, p provider.Provider, opts Options) (provider.TokenBundle, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", opts.Port))
	if err != nil {
		return provider.TokenBundle{}, wardenerrors.Wrap(err, wardenerrors.ErrBindFailed)
	}
	defer listener.Close()

	_, portStr, err := net.SplitHostPort(listener.Addr().String())
	if err != nil {
		return provider.TokenBundle{}, wardenerrors.Wrap(err, wardenerrors.ErrBindFailed)
	}
	port, _ := strconv.Atoi(portStr)
	redirectURI := fmt.Sprintf("http://127.0.0.1:%d/", port)

	verifier, err := randomURLSafe(32)
	if err != nil {
		return provider.TokenBundle{}, err
	}
	challenge := codeChallengeS256(verifier)
	state, err := randomURLSafe(16)
	if err != nil {
		return provider.TokenBundle{}, err
	}

	authURL, err := buildAuthorizationURL(p, redirectURI, challenge, state)
	if err != nil {
		return provider.TokenBundle{}, err
	}

	resultCh := make(chan callbackResult, 1)
	server := &http.Server{Handler: loopbackHandler(state, resultCh)}

	serveErrCh := make(chan error, 1)
	go func() { serveErrCh <- server.Serve(listener) }()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	opts.reporter().Printf("Open the following URL to continue:\n%s\n", authURL)
	if opts.OpenBrowser != nil {
		_ = opts.OpenBrowser(authURL)
	}

	var cb callbackResult
	select {
	case cb = <-resultCh:
	case <-ctx.Done():
		return provider.TokenBundle{}, wardenerrors.Wrap(ctx.Err(), wardenerrors.ErrFlowTimeout)
	}

	if cb.err != nil {
		return provider.TokenBundle{}, cb.err
	}

	return exchangeAuthCode(ctx, p, opts, cb.code, verifier, redirectURI)
}

// loopbackHandler accepts exactly one request, parses it into a
// callbackResult, and closes the channel path so subsequent connections
// (replays) are answered but ignored by the flow (spec §5).
func loopbackHandler(wantState string, resultCh chan<- callbackResult) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		result := callbackResult{
			code:  query.Get("code"),
			state: query.Get("state"),
		}

		switch {
		case query.Get("error") != "":
			result.err = wardenerrors.Wrap(fmt.Errorf("authorization server returned error: %s", query.Get("error")), wardenerrors.ErrAuthorizationDenied)
		case result.state != wantState:
			result.err = wardenerrors.Wrap(fmt.Errorf("callback state mismatch"), wardenerrors.ErrStateMismatch)
		case result.code == "":
			result.err = wardenerrors.Wrap(fmt.Errorf("callback missing authorization code"), wardenerrors.ErrAuthorizationDenied)
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if result.err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("<!doctype html><html><body><h1>Sign-in failed</h1><p>You can close this tab and return to the terminal.</p></body></html>"))
		} else {
			_, _ = w.Write([]byte("<!doctype html><html><body><h1>Sign-in complete</h1><p>You can close this tab and return to the terminal.</p></body></html>"))
		}

		select {
		case resultCh <- result:
		default:
			// A replayed or duplicate request after the flow already
			// completed; spec §5 says reject all but the first.
		}
	})
}

func buildAuthorizationURL(p provider.Provider, redirectURI, challenge, state string) (string, error) {
	u, err := url.Parse(p.AuthURL)
	if err != nil {
		return "", wardenerrors.Wrap(err, wardenerrors.ErrConfigInvalid)
	}

	q := u.Query()
	q.Set("response_type", "code")
	q.Set("client_id", p.ClientID)
	q.Set("redirect_uri", redirectURI)
	q.Set("scope", strings.Join(p.Scopes, " "))
	q.Set("state", state)
	q.Set("code_challenge", challenge)
	q.Set("code_challenge_method", "S256")
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func exchangeAuthCode(ctx context.Context, p provider.Provider, opts Options, code, verifier, redirectURI string) (provider.TokenBundle, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", redirectURI)
	form.Set("client_id", p.ClientID)
	form.Set("code_verifier", verifier)
	if p.ClientSecret != "" {
		form.Set("client_secret", p.ClientSecret)
	}

	status, contentType, body, err := postForm(ctx, opts.httpClient(), p.TokenURL, form)
	if err != nil {
		return provider.TokenBundle{}, wardenerrors.Wrap(err, wardenerrors.ErrProviderHTTP)
	}

	return exchangeToBundle(status, contentType, body, time.Now())
}

func randomURLSafe(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func codeChallengeS256(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
