// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package provider

import (
	"fmt"
	"net/url"
	"strings"

	wardenerrors "github.com/archmagece/warden/internal/errors"
)

// Patch is a partial provider record from a single configuration layer
// (oauth.toml, global Git config, or repo-local Git config). Pointer/slice
// fields left nil mean "not set by this layer" so Merge can tell "unset"
// from "set to empty string".
type Patch struct {
	Type          *Type
	ClientID      *string
	ClientSecret  *string
	AuthURL       *string
	TokenURL      *string
	DeviceAuthURL *string
	Scopes        *[]string
	PreferredFlow *Flow
}

// Merge computes the effective Provider for host by applying patches in
// order, later patches overriding individual fields of earlier ones (spec
// §4.1/§9: "per field, not per provider"). The canonical precedence order
// is oauth.toml, then global Git config, then repo-local Git config, so
// callers pass layers in that order.
func Merge(host string, layers ...Patch) Provider {
	p := Provider{Host: strings.ToLower(host), PreferredFlow: FlowAuto}

	for _, l := range layers {
		if l.Type != nil {
			p.Type = *l.Type
		}
		if l.ClientID != nil {
			p.ClientID = *l.ClientID
		}
		if l.ClientSecret != nil {
			p.ClientSecret = *l.ClientSecret
		}
		if l.AuthURL != nil {
			p.AuthURL = *l.AuthURL
		}
		if l.TokenURL != nil {
			p.TokenURL = *l.TokenURL
		}
		if l.DeviceAuthURL != nil {
			p.DeviceAuthURL = *l.DeviceAuthURL
		}
		if l.Scopes != nil {
			p.Scopes = *l.Scopes
		}
		if l.PreferredFlow != nil {
			p.PreferredFlow = *l.PreferredFlow
		}
	}

	return p
}

// Resolve finalizes a merged Provider: applies preset defaults, resolves
// relative endpoint URLs against "https://<host>", and validates the
// result per spec §3's invariant. A non-nil error means the provider must
// be discarded (by the caller, with a warning) rather than used.
func Resolve(p Provider) (Provider, error) {
	ApplyPreset(&p)

	if strings.TrimSpace(p.ClientID) == "" {
		return Provider{}, wardenerrors.Wrap(fmt.Errorf("provider %q: client_id is required", p.Host), wardenerrors.ErrConfigInvalid)
	}

	if p.PreferredFlow == FlowDevice && p.DeviceAuthURL == "" {
		return Provider{}, wardenerrors.Wrap(fmt.Errorf("provider %q: preferred_flow=device requires device_auth_url", p.Host), wardenerrors.ErrConfigInvalid)
	}

	base := "https://" + p.Host

	resolved, err := resolveURL(base, p.AuthURL)
	if err != nil {
		return Provider{}, wardenerrors.Wrap(fmt.Errorf("provider %q: auth_url: %w", p.Host, err), wardenerrors.ErrConfigInvalid)
	}
	p.AuthURL = resolved

	resolved, err = resolveURL(base, p.TokenURL)
	if err != nil {
		return Provider{}, wardenerrors.Wrap(fmt.Errorf("provider %q: token_url: %w", p.Host, err), wardenerrors.ErrConfigInvalid)
	}
	p.TokenURL = resolved

	if p.DeviceAuthURL != "" {
		resolved, err = resolveURL(base, p.DeviceAuthURL)
		if err != nil {
			return Provider{}, wardenerrors.Wrap(fmt.Errorf("provider %q: device_auth_url: %w", p.Host, err), wardenerrors.ErrConfigInvalid)
		}
		p.DeviceAuthURL = resolved
	}

	return p, nil
}

// resolveURL resolves raw against base if raw is relative. An empty raw
// resolves to empty (the field was never set and has no preset either).
func resolveURL(base, raw string) (string, error) {
	if raw == "" {
		return "", nil
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if parsed.IsAbs() {
		return raw, nil
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", base, err)
	}

	return baseURL.ResolveReference(parsed).String(), nil
}
