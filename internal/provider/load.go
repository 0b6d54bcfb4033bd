// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package provider

import (
	"context"
	"fmt"
	"os"
	"strings"

	wardenerrors "github.com/archmagece/warden/internal/errors"
	"github.com/archmagece/warden/internal/gitcmd"
	"github.com/archmagece/warden/internal/gitconfigkeys"
	"github.com/archmagece/warden/internal/tomlcfg"
)

// oauthTOMLProvider is one [providers.<host>] table in oauth.toml.
type oauthTOMLProvider struct {
	Type          string   `toml:"type,omitempty"`
	ClientID      string   `toml:"client_id,omitempty"`
	ClientSecret  string   `toml:"client_secret,omitempty"`
	AuthURL       string   `toml:"auth_url,omitempty"`
	TokenURL      string   `toml:"token_url,omitempty"`
	DeviceAuthURL string   `toml:"device_auth_url,omitempty"`
	PreferredFlow string   `toml:"preferred_flow,omitempty"`
	Scopes        []string `toml:"scopes,omitempty"`
}

// oauthTOMLFile is the root document of oauth.toml (spec §6).
type oauthTOMLFile struct {
	Port      int                          `toml:"port,omitempty"`
	OAuthOnly bool                         `toml:"oauth_only,omitempty"`
	Providers map[string]oauthTOMLProvider `toml:"providers"`
}

// GlobalSettings holds the oauth.toml top-level settings spec §4.1 lists
// alongside the provider map.
type GlobalSettings struct {
	Port      int
	OAuthOnly bool
}

func (p oauthTOMLProvider) patch() Patch {
	patch := Patch{}
	if p.Type != "" {
		t := Type(strings.ToLower(p.Type))
		patch.Type = &t
	}
	if p.ClientID != "" {
		v := p.ClientID
		patch.ClientID = &v
	}
	if p.ClientSecret != "" {
		v := p.ClientSecret
		patch.ClientSecret = &v
	}
	if p.AuthURL != "" {
		v := p.AuthURL
		patch.AuthURL = &v
	}
	if p.TokenURL != "" {
		v := p.TokenURL
		patch.TokenURL = &v
	}
	if p.DeviceAuthURL != "" {
		v := p.DeviceAuthURL
		patch.DeviceAuthURL = &v
	}
	if p.PreferredFlow != "" {
		f := Flow(strings.ToLower(p.PreferredFlow))
		patch.PreferredFlow = &f
	}
	if len(p.Scopes) > 0 {
		scopes := append([]string(nil), p.Scopes...)
		patch.Scopes = &scopes
	}
	return patch
}

// LoadEffectiveProviders computes the effective provider map (C1) by
// merging oauth.toml, global Git config, and repo-local Git config in that
// order, per field (spec §4.1/§9). repoDir may be empty when there is no
// current repository (repo-local layer is then simply absent). Invalid
// providers are discarded with a warning to stderr; an empty resulting map
// is a fatal ConfigInvalid error (spec §4.1).
func LoadEffectiveProviders(ctx context.Context, paths *tomlcfg.Paths, exec *gitcmd.Executor, repoDir string) (map[string]Provider, GlobalSettings, error) {
	var doc oauthTOMLFile
	if err := tomlcfg.Read(paths.OAuthFile(), &doc); err != nil {
		return nil, GlobalSettings{}, wardenerrors.Wrap(err, wardenerrors.ErrConfigInvalid)
	}

	tomlPatches := map[string]Patch{}
	for host, raw := range doc.Providers {
		tomlPatches[strings.ToLower(host)] = raw.patch()
	}

	globalPatches, err := gitconfigkeys.Load(ctx, exec, "", gitconfigkeys.ScopeGlobal)
	if err != nil {
		return nil, GlobalSettings{}, wardenerrors.Wrap(err, wardenerrors.ErrConfigInvalid)
	}

	localPatches := map[string]Patch{}
	if repoDir != "" {
		localPatches, err = gitconfigkeys.Load(ctx, exec, repoDir, gitconfigkeys.ScopeLocal)
		if err != nil {
			return nil, GlobalSettings{}, wardenerrors.Wrap(err, wardenerrors.ErrConfigInvalid)
		}
	}

	hosts := map[string]struct{}{}
	for h := range tomlPatches {
		hosts[h] = struct{}{}
	}
	for h := range globalPatches {
		hosts[h] = struct{}{}
	}
	for h := range localPatches {
		hosts[h] = struct{}{}
	}

	result := map[string]Provider{}
	for host := range hosts {
		merged := Merge(host, tomlPatches[host], globalPatches[host], localPatches[host])
		resolved, err := Resolve(merged)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: discarding provider %q: %v\n", host, err)
			continue
		}
		result[host] = resolved
	}

	if len(result) == 0 {
		return nil, GlobalSettings{}, wardenerrors.Wrap(fmt.Errorf("no valid OAuth providers configured"), wardenerrors.ErrConfigInvalid)
	}

	return result, GlobalSettings{Port: doc.Port, OAuthOnly: doc.OAuthOnly}, nil
}
