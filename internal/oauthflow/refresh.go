// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package oauthflow

import (
	"context"
	"net/url"
	"time"

	wardenerrors "github.com/archmagece/warden/internal/errors"
	"github.com/archmagece/warden/internal/provider"
)

// Refresh exchanges refreshToken for a new TokenBundle per spec §4.4. On
// an HTTP 4xx the refresh token has been rejected: this function surfaces
// that as a wardenerrors.ErrProviderHTTP with status in the 4xx range so
// callers can distinguish it from a transient 5xx. Neither Refresh nor its
// callers in warden delete the stored bundle after such a rejection.
func Refresh(ctx context.Context, p provider.Provider, refreshToken string, opts Options) (provider.TokenBundle, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	form.Set("client_id", p.ClientID)
	if p.ClientSecret != "" {
		form.Set("client_secret", p.ClientSecret)
	}

	status, contentType, body, err := postForm(ctx, opts.httpClient(), p.TokenURL, form)
	if err != nil {
		return provider.TokenBundle{}, wardenerrors.Wrap(err, wardenerrors.ErrProviderHTTP)
	}

	bundle, err := exchangeToBundle(status, contentType, body, time.Now())
	if err != nil {
		return provider.TokenBundle{}, err
	}

	// Providers commonly omit refresh_token from a refresh response,
	// meaning the original refresh token remains valid; preserve it so
	// callers don't lose the ability to refresh again.
	if bundle.RefreshToken == "" {
		bundle.RefreshToken = refreshToken
	}
	return bundle, nil
}

// IsInvalidRefreshToken reports whether err indicates the refresh token
// itself was rejected (HTTP 4xx), per spec §4.4's "refresh token is
// considered invalid" rule, as opposed to a transient provider failure.
// This matches both a bodyless 4xx (wrapped as ErrProviderHTTP) and a 4xx
// carrying an OAuth error field such as "invalid_grant" (wrapped as
// ErrAuthorizationDenied): both cases carry a *ProviderHTTPError with the
// status code in their chain.
func IsInvalidRefreshToken(err error) bool {
	var httpErr *wardenerrors.ProviderHTTPError
	if !wardenerrors.As(err, &httpErr) {
		return false
	}
	return httpErr.Status >= 400 && httpErr.Status < 500
}
