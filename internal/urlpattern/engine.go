// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package urlpattern

import "fmt"

// Engine holds an ordered pattern list: user-supplied patterns first, then
// Builtins(). The first pattern whose regex matches a remote string wins.
type Engine struct {
	patterns []Pattern
}

// NewEngine validates userPatterns (each must declare a "repo" capture),
// then appends the built-in patterns after them.
func NewEngine(userPatterns []Pattern) (*Engine, error) {
	all := make([]Pattern, 0, len(userPatterns)+4)
	for _, p := range userPatterns {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		all = append(all, p)
	}
	all = append(all, Builtins()...)

	return &Engine{patterns: all}, nil
}

// Parse matches remote against the pattern list in order and returns the
// structured attributes from the first match. repo is always non-empty on
// success (spec §8: "parse(s).repo is non-empty" over the built-in forms).
func (e *Engine) Parse(remote string) (ParsedRemote, error) {
	for _, p := range e.patterns {
		match := p.Regex.FindStringSubmatch(remote)
		if match == nil {
			continue
		}
		return buildParsedRemote(p, match), nil
	}
	return ParsedRemote{}, fmt.Errorf("no pattern matched remote %q", remote)
}

// Render reconstructs a URL for the pattern that produced parsed, selected
// by re-matching remote against the engine's pattern list. This is the
// round-trip half of spec §8's "render(parse(u)) = canonicalize(u)" law.
func (e *Engine) Render(remote string) (string, error) {
	for _, p := range e.patterns {
		match := p.Regex.FindStringSubmatch(remote)
		if match == nil {
			continue
		}
		parsed := buildParsedRemote(p, match)
		if p.Infer {
			return InferURL(parsed), nil
		}
		return RenderTemplate(p.URLTemplate, parsed), nil
	}
	return "", fmt.Errorf("no pattern matched remote %q", remote)
}

func buildParsedRemote(p Pattern, match []string) ParsedRemote {
	fields := map[string]string{}
	for i, name := range p.Regex.SubexpNames() {
		if i == 0 || name == "" {
			continue
		}
		if match[i] != "" {
			fields[name] = match[i]
		}
	}

	get := func(name, fallback string) string {
		if v, ok := fields[name]; ok {
			return v
		}
		return fallback
	}

	return ParsedRemote{
		Scheme: get("scheme", p.Defaults.Scheme),
		User:   get("user", p.Defaults.User),
		Host:   get("host", p.Defaults.Host),
		Owner:  get("owner", p.Defaults.Owner),
		Repo:   fields["repo"],
		VCS:    get("vcs", p.Defaults.VCS),
	}
}
