// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package uiadapt

import (
	"fmt"
	"io"
	"strings"
)

// StatusRow is one line of `warden status`: a credential set under a host.
type StatusRow struct {
	Host      string
	Name      string
	Active    bool
	HasToken  bool
	Expired   bool
	ExpiresIn string // human string, e.g. "47m0s" or "" if HasToken is false
}

// RenderStatus writes a styled table of host/credential-set rows to w.
func RenderStatus(w io.Writer, rows []StatusRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, SubtleStyle.Render("no credential sets configured"))
		return
	}

	header := fmt.Sprintf("%-28s %-16s %-8s %-10s %s", "HOST", "NAME", "ACTIVE", "TOKEN", "EXPIRES")
	fmt.Fprintln(w, HeaderStyle.Render(header))

	for _, r := range rows {
		active := ""
		if r.Active {
			active = ActiveStyle.Render("yes")
		} else {
			active = SubtleStyle.Render("no")
		}

		var token, expires string
		switch {
		case !r.HasToken:
			token = MissingStyle.Render("absent")
			expires = SubtleStyle.Render("-")
		case r.Expired:
			token = ExpiredStyle.Render("expired")
			expires = ExpiredStyle.Render(r.ExpiresIn)
		default:
			token = ActiveStyle.Render("present")
			expires = r.ExpiresIn
		}

		fmt.Fprintf(w, "%-28s %-16s %-8s %-10s %s\n", r.Host, r.Name, active, token, expires)
	}
}

// ProfileRow is one line of `warden list` (profiles).
type ProfileRow struct {
	Name     string
	UserName string
	Email    string
}

// RenderProfileList writes a styled table of configured profiles to w.
func RenderProfileList(w io.Writer, rows []ProfileRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, SubtleStyle.Render("no profiles configured"))
		return
	}

	header := fmt.Sprintf("%-20s %s", "NAME", "IDENTITY")
	fmt.Fprintln(w, HeaderStyle.Render(header))

	for _, r := range rows {
		identity := SubtleStyle.Render("-")
		if r.UserName != "" || r.Email != "" {
			identity = strings.TrimSpace(fmt.Sprintf("%s <%s>", r.UserName, r.Email))
		}
		fmt.Fprintf(w, "%-20s %s\n", r.Name, identity)
	}
}
