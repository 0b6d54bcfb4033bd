// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package gitconfigkeys reads the "credential.<base>.oauth<Suffix>" family
// of Git config keys (spec §4.1/§6) from a given config scope (global or
// repo-local) via internal/gitcmd, and turns them into per-host
// provider.Patch values the Configuration Resolver (C1) can merge.
package gitconfigkeys

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/archmagece/warden/internal/gitcmd"
	"github.com/archmagece/warden/internal/parser"
	"github.com/archmagece/warden/internal/provider"
)

var keyPattern = regexp.MustCompile(`(?i)^credential\.(.+)\.oauth(type|clientid|clientsecret|authurl|tokenurl|deviceauthurl|preferredflow|scopes)$`)

// Scope selects which Git config file gitcmd reads from.
type Scope string

const (
	ScopeGlobal Scope = "--global"
	ScopeLocal  Scope = "--local"
)

// Load reads all "credential.*.oauth*" keys visible at scope from the
// repository at dir (dir is ignored for ScopeGlobal beyond being a valid
// working directory for the git invocation) and returns one Patch per
// canonical host.
func Load(ctx context.Context, exec *gitcmd.Executor, dir string, scope Scope) (map[string]provider.Patch, error) {
	lines, err := exec.RunLines(ctx, dir, "config", string(scope), "--get-regexp", `^credential\..*\.oauth`)
	if err != nil {
		// git config --get-regexp exits 1 when nothing matches; that is
		// not a failure, it's an empty result.
		if ge, ok := asGitError(err); ok && ge.ExitCode == 1 {
			return map[string]provider.Patch{}, nil
		}
		return nil, err
	}

	patches := map[string]provider.Patch{}
	for _, line := range lines {
		key, value, ok := splitConfigLine(line)
		if !ok {
			continue
		}

		base, suffix, ok := parseOAuthKey(key)
		if !ok {
			continue
		}

		host := canonicalHost(base)
		patch := patches[host]
		applySuffix(&patch, suffix, value)
		patches[host] = patch
	}

	return patches, nil
}

// splitConfigLine splits a "key value" line from --get-regexp output. The
// key and value are separated by the first space; values may contain
// spaces (e.g. a scopes list) and are preserved verbatim.
func splitConfigLine(line string) (key, value string, ok bool) {
	idx := strings.IndexByte(line, ' ')
	if idx < 0 {
		return line, "", true
	}
	return line[:idx], line[idx+1:], true
}

func parseOAuthKey(key string) (base, suffix string, ok bool) {
	m := keyPattern.FindStringSubmatch(key)
	if m == nil {
		return "", "", false
	}
	return m[1], strings.ToLower(m[2]), true
}

// canonicalHost resolves the lowercased DNS authority from a <base> that
// may or may not carry a scheme (spec §4.1: "https:// is assumed").
func canonicalHost(base string) string {
	raw := base
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return strings.ToLower(base)
	}
	return strings.ToLower(u.Host)
}

func applySuffix(p *provider.Patch, suffix, value string) {
	switch suffix {
	case "type":
		t := provider.Type(strings.ToLower(value))
		p.Type = &t
	case "clientid":
		v := value
		p.ClientID = &v
	case "clientsecret":
		v := value
		p.ClientSecret = &v
	case "authurl":
		v := value
		p.AuthURL = &v
	case "tokenurl":
		v := value
		p.TokenURL = &v
	case "deviceauthurl":
		v := value
		p.DeviceAuthURL = &v
	case "preferredflow":
		f := provider.Flow(strings.ToLower(value))
		p.PreferredFlow = &f
	case "scopes":
		scopes := parser.SplitScopeList(value)
		p.Scopes = &scopes
	}
}

func asGitError(err error) (*gitcmd.GitError, bool) {
	ge, ok := err.(*gitcmd.GitError)
	return ge, ok
}
