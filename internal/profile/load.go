// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package profile

import (
	"fmt"
	"regexp"

	wardenerrors "github.com/archmagece/warden/internal/errors"
	"github.com/archmagece/warden/internal/tomlcfg"
	"github.com/archmagece/warden/internal/urlpattern"
)

// profilesFile is the on-disk shape of profiles.toml (spec §6).
type profilesFile struct {
	Profiles map[string]map[string]string `toml:"profiles"`
	Rules    []ruleTOML                   `toml:"rules"`
	Patterns []patternTOML                `toml:"patterns"`
}

type ruleTOML struct {
	Profile string `toml:"profile"`
	Host    string `toml:"host,omitempty"`
	Owner   string `toml:"owner,omitempty"`
	Repo    string `toml:"repo,omitempty"`
}

type patternTOML struct {
	Name        string `toml:"name,omitempty"`
	Regex       string `toml:"regex"`
	Scheme      string `toml:"scheme,omitempty"`
	User        string `toml:"user,omitempty"`
	Host        string `toml:"host,omitempty"`
	Owner       string `toml:"owner,omitempty"`
	VCS         string `toml:"vcs,omitempty"`
	Infer       bool   `toml:"infer,omitempty"`
	URLTemplate string `toml:"url,omitempty"`
}

// Resolver is the loaded, ready-to-use C8 Profile Resolver.
type Resolver struct {
	profiles map[string]Profile
	rules    []Rule
	engine   *urlpattern.Engine
}

// Load reads profiles.toml and compiles its pattern/rule lists.
func Load(paths *tomlcfg.Paths) (*Resolver, error) {
	var doc profilesFile
	if err := tomlcfg.Read(paths.ProfilesFile(), &doc); err != nil {
		return nil, wardenerrors.Wrap(err, wardenerrors.ErrConfigInvalid)
	}

	profiles := make(map[string]Profile, len(doc.Profiles))
	for name, kv := range doc.Profiles {
		p := make(Profile, len(kv))
		for k, v := range kv {
			p[k] = v
		}
		profiles[name] = p
	}

	rules := make([]Rule, 0, len(doc.Rules))
	for _, r := range doc.Rules {
		rules = append(rules, Rule{
			ProfileName: r.Profile,
			Host:        nonEmptyPtr(r.Host),
			Owner:       nonEmptyPtr(r.Owner),
			Repo:        nonEmptyPtr(r.Repo),
		})
	}

	userPatterns := make([]urlpattern.Pattern, 0, len(doc.Patterns))
	for _, pt := range doc.Patterns {
		re, err := regexp.Compile(pt.Regex)
		if err != nil {
			return nil, wardenerrors.Wrap(fmt.Errorf("pattern %q: %w", pt.Name, err), wardenerrors.ErrConfigInvalid)
		}
		userPatterns = append(userPatterns, urlpattern.Pattern{
			Name:  pt.Name,
			Regex: re,
			Defaults: urlpattern.Defaults{
				Scheme: pt.Scheme,
				User:   pt.User,
				Host:   pt.Host,
				Owner:  pt.Owner,
				VCS:    pt.VCS,
			},
			Infer:       pt.Infer,
			URLTemplate: pt.URLTemplate,
		})
	}

	engine, err := urlpattern.NewEngine(userPatterns)
	if err != nil {
		return nil, wardenerrors.Wrap(err, wardenerrors.ErrConfigInvalid)
	}

	return &Resolver{profiles: profiles, rules: rules, engine: engine}, nil
}

func nonEmptyPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
