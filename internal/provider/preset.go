// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package provider

// preset holds the default endpoints/scopes for one provider Type.
// Endpoints may be absolute (github) or relative to the provider's host
// (gitlab, forgejo, gitea); ApplyPreset copies them as they are and
// Resolve turns relative ones into absolute URLs.
type preset struct {
	authURL       string
	tokenURL      string
	deviceAuthURL string
	scopes        []string
	requireSecret bool
}

// presets is the static table required by spec §4.3. Endpoints for
// self-hosted provider types are relative; Resolve resolves them against
// "https://<host>" the same way oauth.toml's own relative URLs are
// resolved.
var presets = map[Type]preset{
	TypeGitHub: {
		authURL:       "https://github.com/login/oauth/authorize",
		tokenURL:      "https://github.com/login/oauth/access_token",
		deviceAuthURL: "https://github.com/login/device/code",
		scopes:        []string{"repo", "read:user"},
		requireSecret: true,
	},
	TypeGitLab: {
		authURL:       "/oauth/authorize",
		tokenURL:      "/oauth/token",
		deviceAuthURL: "/oauth/authorize_device",
		scopes:        []string{"read_repository", "write_repository"},
	},
	TypeForgejo: {
		authURL:  "/login/oauth/authorize",
		tokenURL: "/login/oauth/access_token",
	},
	TypeGitea: {
		authURL:  "/login/oauth/authorize",
		tokenURL: "/login/oauth/access_token",
	},
}

// ApplyPreset fills p's unset endpoint/scope fields from the preset table
// for p.Type. Fields already set (by oauth.toml or Git config) are left
// untouched, per spec §4.3 ("only applied when the field is otherwise
// unset after merging").
func ApplyPreset(p *Provider) {
	preset, ok := presets[p.Type]
	if !ok {
		return
	}
	if p.AuthURL == "" {
		p.AuthURL = preset.authURL
	}
	if p.TokenURL == "" {
		p.TokenURL = preset.tokenURL
	}
	if p.DeviceAuthURL == "" {
		p.DeviceAuthURL = preset.deviceAuthURL
	}
	if len(p.Scopes) == 0 && len(preset.scopes) > 0 {
		p.Scopes = append([]string(nil), preset.scopes...)
	}
}

// RequiresClientSecret reports whether t's preset mandates a client secret
// (GitHub's OAuth apps do; PKCE-only providers do not).
func RequiresClientSecret(t Type) bool {
	return presets[t].requireSecret
}
