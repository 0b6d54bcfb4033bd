// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package oauthflow

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	wardenerrors "github.com/archmagece/warden/internal/errors"
	"github.com/archmagece/warden/internal/provider"
)

// tokenResponse is the wire shape of a token-endpoint response, covering
// both successful exchanges and OAuth error responses (spec §4.4 step 6:
// "Accept JSON or application/x-www-form-urlencoded response bodies").
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope"`
	ExpiresIn    int64  `json:"expires_in"`
	Error        string `json:"error"`
	ErrorDesc    string `json:"error_description"`
}

// postForm POSTs form to url with the standard OAuth token-request
// headers and returns the response's status code, Content-Type, and body.
func postForm(ctx context.Context, client *http.Client, tokenURL string, form url.Values) (int, string, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, "", nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, "", nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", nil, err
	}
	return resp.StatusCode, resp.Header.Get("Content-Type"), body, nil
}

// decodeTokenBody decodes body as JSON or form-encoded depending on
// contentType, falling back to JSON when the header is absent or unknown
// (most OAuth providers reply with JSON regardless of what was requested).
// It does not interpret tr.Error: device-code polling needs to distinguish
// "authorization_pending" from a hard failure, so that decision is left to
// the caller (parseTokenResponse below for the auth-code/refresh path,
// pollDeviceToken in device.go for the device path).
func decodeTokenBody(status int, contentType string, body []byte) (tokenResponse, error) {
	var tr tokenResponse

	if isFormEncoded(contentType) {
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return tokenResponse{}, wardenerrors.Wrap(err, wardenerrors.ErrMalformedTokenResponse)
		}
		tr.AccessToken = values.Get("access_token")
		tr.RefreshToken = values.Get("refresh_token")
		tr.TokenType = values.Get("token_type")
		tr.Scope = values.Get("scope")
		tr.Error = values.Get("error")
		tr.ErrorDesc = values.Get("error_description")
		if ei := values.Get("expires_in"); ei != "" {
			if v, err := strconv.ParseInt(ei, 10, 64); err == nil {
				tr.ExpiresIn = v
			}
		}
	} else if err := json.Unmarshal(body, &tr); err != nil {
		return tokenResponse{}, wardenerrors.Wrap(err, wardenerrors.ErrMalformedTokenResponse)
	}

	nonSuccess := status < 200 || status >= 300
	if nonSuccess && tr.Error == "" {
		return tokenResponse{}, wardenerrors.NewProviderHTTPError(status, string(body))
	}

	return tr, nil
}

// parseTokenResponse is decodeTokenBody plus the auth-code/refresh
// interpretation of tr.Error as a hard AuthorizationDenied failure (the
// device flow instead inspects tr.Error itself to keep polling). The
// status code travels along as the wrapped cause's *ProviderHTTPError so
// IsInvalidRefreshToken can still recognize a 4xx refresh rejection even
// when the provider's response carried an OAuth error field (e.g.
// "invalid_grant") rather than an empty body.
func parseTokenResponse(status int, contentType string, body []byte) (tokenResponse, error) {
	tr, err := decodeTokenBody(status, contentType, body)
	if err != nil {
		return tokenResponse{}, err
	}
	if tr.Error != "" {
		cause := wardenerrors.NewProviderHTTPError(status, fmt.Sprintf("%s: %s", tr.Error, tr.ErrorDesc))
		return tokenResponse{}, wardenerrors.Wrap(cause, wardenerrors.ErrAuthorizationDenied)
	}
	if tr.AccessToken == "" {
		return tokenResponse{}, wardenerrors.Wrap(fmt.Errorf("response missing access_token"), wardenerrors.ErrMalformedTokenResponse)
	}
	return tr, nil
}

// toOAuth2Token converts a parsed tokenResponse into the standard
// golang.org/x/oauth2 token shape, which in turn informs provider.TokenBundle
// (SPEC_FULL.md's DOMAIN STACK: "oauth2.Token shape informs TokenBundle").
func toOAuth2Token(now time.Time, tr tokenResponse) *oauth2.Token {
	t := &oauth2.Token{
		AccessToken:  tr.AccessToken,
		TokenType:    tr.TokenType,
		RefreshToken: tr.RefreshToken,
	}
	if tr.ExpiresIn > 0 {
		t.Expiry = now.Add(time.Duration(tr.ExpiresIn) * time.Second)
	}
	return t
}

// toBundle converts an oauth2.Token plus the original scope string into a
// provider.TokenBundle, applying spec §3's default token_type.
func toBundle(t *oauth2.Token, scope string) provider.TokenBundle {
	tokenType := t.TokenType
	if tokenType == "" {
		tokenType = provider.DefaultTokenType
	}
	return provider.TokenBundle{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		ExpiresAt:    t.Expiry,
		TokenType:    tokenType,
		Scope:        scope,
	}
}

func exchangeToBundle(status int, contentType string, body []byte, now time.Time) (provider.TokenBundle, error) {
	tr, err := parseTokenResponse(status, contentType, body)
	if err != nil {
		return provider.TokenBundle{}, err
	}
	return toBundle(toOAuth2Token(now, tr), tr.Scope), nil
}

// isFormEncoded reports whether contentType names
// application/x-www-form-urlencoded; anything else (including an absent
// header) is treated as JSON, which is what most OAuth providers send
// regardless of what the client's Accept header requested.
func isFormEncoded(contentType string) bool {
	mediaType, _, _ := mime.ParseMediaType(contentType)
	return mediaType == "application/x-www-form-urlencoded"
}
