// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package urlpattern

import "strings"

// InferURL synthesizes a canonical URL from p's fields, per spec §4.2:
// "{scheme://}{user@}{host}/{owner}/{repo}.git", omitting absent optional
// components.
func InferURL(p ParsedRemote) string {
	var b strings.Builder
	if p.Scheme != "" {
		b.WriteString(p.Scheme)
		b.WriteString("://")
	}
	if p.User != "" {
		b.WriteString(p.User)
		b.WriteByte('@')
	}
	b.WriteString(p.Host)
	b.WriteByte('/')
	b.WriteString(p.Owner)
	b.WriteByte('/')
	b.WriteString(p.Repo)
	b.WriteString(".git")
	return b.String()
}

// RenderTemplate substitutes "{{field}}" placeholders in tmpl with p's
// fields, for patterns configured with an explicit url template instead
// of Infer.
func RenderTemplate(tmpl string, p ParsedRemote) string {
	replacer := strings.NewReplacer(
		"{{scheme}}", p.Scheme,
		"{{user}}", p.User,
		"{{host}}", p.Host,
		"{{owner}}", p.Owner,
		"{{repo}}", p.Repo,
		"{{vcs}}", p.VCS,
	)
	return replacer.Replace(tmpl)
}
