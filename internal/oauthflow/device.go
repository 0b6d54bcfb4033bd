// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package oauthflow

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	wardenerrors "github.com/archmagece/warden/internal/errors"
	"github.com/archmagece/warden/internal/provider"
)

// deviceAuthResponse is the response of the initial device-authorization
// request (spec §4.4 step 1).
type deviceAuthResponse struct {
	DeviceCode              string `json:"device_code"`
	UserCode                string `json:"user_code"`
	VerificationURI         string `json:"verification_uri"`
	VerificationURIComplete string `json:"verification_uri_complete"`
	ExpiresIn               int64  `json:"expires_in"`
	Interval                int64  `json:"interval"`
}

// runDeviceFlow performs the Device Authorization Grant per spec §4.4:
// request a device/user code pair, show it to the user, then poll the
// token endpoint on the provider's interval until success or a terminal
// error.
func runDeviceFlow(ctx context.Context, p provider.Provider, opts Options) (provider.TokenBundle, error) {
	auth, err := requestDeviceCode(ctx, p, opts)
	if err != nil {
		return provider.TokenBundle{}, err
	}

	if auth.VerificationURIComplete != "" {
		opts.reporter().Printf("To continue, visit:\n%s\n", auth.VerificationURIComplete)
	} else {
		opts.reporter().Printf("To continue, visit %s and enter code: %s\n", auth.VerificationURI, auth.UserCode)
	}

	interval := time.Duration(auth.Interval) * time.Second
	if interval <= 0 {
		interval = defaultDevicePoll
	}

	var expiry <-chan time.Time
	if auth.ExpiresIn > 0 {
		timer := time.NewTimer(time.Duration(auth.ExpiresIn) * time.Second)
		defer timer.Stop()
		expiry = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return provider.TokenBundle{}, wardenerrors.Wrap(ctx.Err(), wardenerrors.ErrFlowTimeout)
		case <-expiry:
			return provider.TokenBundle{}, wardenerrors.Wrap(errDeviceCodeExpired(), wardenerrors.ErrFlowTimeout)
		case <-time.After(interval):
		}

		bundle, pending, slowDown, err := pollDeviceToken(ctx, p, opts, auth.DeviceCode)
		if err != nil {
			return provider.TokenBundle{}, err
		}
		if slowDown {
			interval += 5 * time.Second
			continue
		}
		if pending {
			continue
		}
		return bundle, nil
	}
}

func requestDeviceCode(ctx context.Context, p provider.Provider, opts Options) (deviceAuthResponse, error) {
	form := url.Values{}
	form.Set("client_id", p.ClientID)
	form.Set("scope", strings.Join(p.Scopes, " "))

	status, contentType, body, err := postForm(ctx, opts.httpClient(), p.DeviceAuthURL, form)
	if err != nil {
		return deviceAuthResponse{}, wardenerrors.Wrap(err, wardenerrors.ErrProviderHTTP)
	}
	if status < 200 || status >= 300 {
		return deviceAuthResponse{}, wardenerrors.NewProviderHTTPError(status, string(body))
	}

	auth, err := decodeDeviceAuthResponse(contentType, body)
	if err != nil {
		return deviceAuthResponse{}, err
	}
	if auth.DeviceCode == "" {
		return deviceAuthResponse{}, wardenerrors.Wrap(errMissingDeviceCode(), wardenerrors.ErrMalformedTokenResponse)
	}
	return auth, nil
}

// pollDeviceToken performs one poll of the token endpoint for the device
// flow, interpreting the OAuth device-flow error codes of spec §4.4 step
// 3: authorization_pending keeps polling, slow_down backs off by 5s,
// access_denied/expired_token are terminal.
func pollDeviceToken(ctx context.Context, p provider.Provider, opts Options, deviceCode string) (bundle provider.TokenBundle, pending, slowDown bool, err error) {
	form := url.Values{}
	form.Set("grant_type", "urn:ietf:params:oauth:grant-type:device_code")
	form.Set("device_code", deviceCode)
	form.Set("client_id", p.ClientID)
	if p.ClientSecret != "" {
		form.Set("client_secret", p.ClientSecret)
	}

	status, contentType, body, httpErr := postForm(ctx, opts.httpClient(), p.TokenURL, form)
	if httpErr != nil {
		return provider.TokenBundle{}, false, false, wardenerrors.Wrap(httpErr, wardenerrors.ErrProviderHTTP)
	}

	tr, decodeErr := decodeTokenBody(status, contentType, body)
	if decodeErr != nil {
		return provider.TokenBundle{}, false, false, decodeErr
	}

	switch tr.Error {
	case "":
		if tr.AccessToken == "" {
			return provider.TokenBundle{}, false, false, wardenerrors.Wrap(errMissingAccessToken(), wardenerrors.ErrMalformedTokenResponse)
		}
		return toBundle(toOAuth2Token(time.Now(), tr), tr.Scope), false, false, nil
	case "authorization_pending":
		return provider.TokenBundle{}, true, false, nil
	case "slow_down":
		return provider.TokenBundle{}, false, true, nil
	case "access_denied":
		return provider.TokenBundle{}, false, false, wardenerrors.Wrap(errDeviceAccessDenied(), wardenerrors.ErrAuthorizationDenied)
	case "expired_token":
		return provider.TokenBundle{}, false, false, wardenerrors.Wrap(errDeviceCodeExpired(), wardenerrors.ErrFlowTimeout)
	default:
		return provider.TokenBundle{}, false, false, wardenerrors.Wrap(errUnknownDeviceError(tr.Error, tr.ErrorDesc), wardenerrors.ErrProviderHTTP)
	}
}

// decodeDeviceAuthResponse mirrors decodeTokenBody's JSON/form duality for
// the device-authorization response, whose field set differs from a token
// response so it isn't worth sharing the same struct.
func decodeDeviceAuthResponse(contentType string, body []byte) (deviceAuthResponse, error) {
	var auth deviceAuthResponse

	if isFormEncoded(contentType) {
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return deviceAuthResponse{}, wardenerrors.Wrap(err, wardenerrors.ErrMalformedTokenResponse)
		}
		auth.DeviceCode = values.Get("device_code")
		auth.UserCode = values.Get("user_code")
		auth.VerificationURI = values.Get("verification_uri")
		auth.VerificationURIComplete = values.Get("verification_uri_complete")
		if v := values.Get("expires_in"); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				auth.ExpiresIn = n
			}
		}
		if v := values.Get("interval"); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				auth.Interval = n
			}
		}
		return auth, nil
	}

	if err := json.Unmarshal(body, &auth); err != nil {
		return deviceAuthResponse{}, wardenerrors.Wrap(err, wardenerrors.ErrMalformedTokenResponse)
	}
	return auth, nil
}
