// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package urlpattern

import "regexp"

// Builtins returns the default pattern list required by spec §4.2,
// appended after any user patterns. They are tried in list order; the bare
// "owner/repo" shorthand excludes ':' and '@' from the owner, so it cannot
// shadow the user@host:, host: or scheme:// shapes around it.
func Builtins() []Pattern {
	return []Pattern{
		{
			Name:     "ssh-shorthand",
			Regex:    regexp.MustCompile(`^(?P<user>[^@/\s]+)@(?P<host>[^:/\s]+):(?P<owner>[^/\s]+)/(?P<repo>[^/\s]+?)(?:\.git)?$`),
			Defaults: Defaults{Scheme: "ssh"},
			Infer:    true,
		},
		{
			Name:     "host-owner-repo",
			Regex:    regexp.MustCompile(`^(?P<host>[A-Za-z0-9.-]+\.[A-Za-z]{2,}):(?P<owner>[^/\s]+)/(?P<repo>[^/\s]+?)(?:\.git)?$`),
			Defaults: Defaults{Scheme: "https"},
			Infer:    true,
		},
		{
			Name:     "owner-repo",
			Regex:    regexp.MustCompile(`^(?P<owner>[^/:@\s]+)/(?P<repo>[^/\s]+?)(?:\.git)?$`),
			Defaults: Defaults{Scheme: "https", Host: "github.com"},
			Infer:    true,
		},
		{
			Name:     "scheme-url",
			Regex:    regexp.MustCompile(`^(?P<scheme>[A-Za-z][A-Za-z0-9+.-]*)://(?:(?P<user>[^@/\s]+)@)?(?P<host>[^/\s]+)/(?P<owner>[^/\s]+)/(?P<repo>[^/\s]+?)(?:\.git)?/?$`),
			Infer:    true,
		},
	}
}
