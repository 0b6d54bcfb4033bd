// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package profile

import (
	"fmt"
	"sort"
	"strings"

	wardenerrors "github.com/archmagece/warden/internal/errors"
	"github.com/archmagece/warden/internal/urlpattern"
)

// matchRule walks rules top-to-bottom and returns the first whose set
// fields all equal parsed's corresponding attribute (spec §4.8: "a rule
// matches iff every set field equals the parsed remote's field").
func matchRule(rules []Rule, parsed urlpattern.ParsedRemote) (Rule, bool) {
	for _, r := range rules {
		if r.Host != nil && !strings.EqualFold(*r.Host, parsed.Host) {
			continue
		}
		if r.Owner != nil && *r.Owner != parsed.Owner {
			continue
		}
		if r.Repo != nil && *r.Repo != parsed.Repo {
			continue
		}
		return r, true
	}
	return Rule{}, false
}

// resolveByRemote parses remote and matches it against the rule set,
// returning the selected profile's name.
func (r *Resolver) resolveByRemote(remote string) (string, error) {
	parsed, err := r.engine.Parse(remote)
	if err != nil {
		return "", wardenerrors.Wrap(err, wardenerrors.ErrRepoDetectionFailed)
	}
	rule, ok := matchRule(r.rules, parsed)
	if !ok {
		return "", wardenerrors.Wrap(fmt.Errorf("no rule matched remote %q", remote), wardenerrors.ErrNoMatchingRule)
	}
	return rule.ProfileName, nil
}

// Profile returns the named profile, or ErrProfileUnknown.
func (r *Resolver) Profile(name string) (Profile, error) {
	p, ok := r.profiles[name]
	if !ok {
		return nil, wardenerrors.Wrap(fmt.Errorf("profile %q not found", name), wardenerrors.ErrProfileUnknown)
	}
	return p, nil
}

// List returns all profiles sorted by name, each with its user.name/
// user.email if present (spec §4.8).
func (r *Resolver) List() []Summary {
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Summary, 0, len(names))
	for _, name := range names {
		p := r.profiles[name]
		out = append(out, Summary{Name: name, UserName: p["user.name"], UserEmail: p["user.email"]})
	}
	return out
}
