// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package urlpattern

import (
	"regexp"
	"testing"
)

func newBuiltinEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(nil)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func TestParseBuiltinForms(t *testing.T) {
	e := newBuiltinEngine(t)

	tests := []struct {
		name   string
		remote string
		want   ParsedRemote
	}{
		{
			"ssh shorthand",
			"git@github.com:acme/widget.git",
			ParsedRemote{Scheme: "ssh", User: "git", Host: "github.com", Owner: "acme", Repo: "widget"},
		},
		{
			"host owner repo",
			"example.test:acme/widget",
			ParsedRemote{Scheme: "https", Host: "example.test", Owner: "acme", Repo: "widget"},
		},
		{
			"owner repo shorthand",
			"acme/widget",
			ParsedRemote{Scheme: "https", Host: "github.com", Owner: "acme", Repo: "widget"},
		},
		{
			"scheme url",
			"https://example.test/acme/widget.git",
			ParsedRemote{Scheme: "https", Host: "example.test", Owner: "acme", Repo: "widget"},
		},
		{
			"scheme url with user",
			"ssh://git@example.test/acme/widget.git",
			ParsedRemote{Scheme: "ssh", User: "git", Host: "example.test", Owner: "acme", Repo: "widget"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Parse(tt.remote)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.remote, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.remote, got, tt.want)
			}
			if got.Repo == "" {
				t.Errorf("Parse(%q).Repo is empty, violates totality invariant", tt.remote)
			}
		})
	}
}

func TestParseNoMatch(t *testing.T) {
	e := newBuiltinEngine(t)
	if _, err := e.Parse(""); err == nil {
		t.Error("Parse(\"\") expected error, got nil")
	}
}

func TestRenderRoundTrip(t *testing.T) {
	e := newBuiltinEngine(t)

	for _, remote := range []string{
		"git@github.com:acme/widget.git",
		"https://example.test/acme/widget.git",
		"acme/widget",
	} {
		canonical, err := e.Render(remote)
		if err != nil {
			t.Fatalf("Render(%q) error = %v", remote, err)
		}

		reparsed, err := e.Parse(canonical)
		if err != nil {
			t.Fatalf("Parse(canonical %q) error = %v", canonical, err)
		}

		canonicalAgain, err := e.Render(canonical)
		if err != nil {
			t.Fatalf("Render(canonical %q) error = %v", canonical, err)
		}
		if canonicalAgain != canonical {
			t.Errorf("render(parse(render(%q))) = %q, want fixed point %q", remote, canonicalAgain, canonical)
		}
		if reparsed.Repo == "" {
			t.Errorf("re-parsing canonical form lost repo: %q", canonical)
		}
	}
}

func TestUserPatternPrecedesBuiltins(t *testing.T) {
	custom := Pattern{
		Name:     "custom-jira-style",
		Regex:    regexp.MustCompile(`^JIRA:(?P<owner>[^/]+)/(?P<repo>[^/]+)$`),
		Infer:    true,
		Defaults: Defaults{Scheme: "https", Host: "jira.example.test"},
	}

	e, err := NewEngine([]Pattern{custom})
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	got, err := e.Parse("JIRA:team/project")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got.Owner != "team" || got.Repo != "project" {
		t.Errorf("Parse() = %+v, want owner=team repo=project via custom pattern", got)
	}
}

func TestPatternWithoutRepoGroupRejected(t *testing.T) {
	bad := Pattern{
		Name:  "missing-repo-group",
		Regex: regexp.MustCompile(`^(?P<owner>[^/]+)$`),
	}
	if _, err := NewEngine([]Pattern{bad}); err == nil {
		t.Error("NewEngine() expected error for pattern lacking a repo capture")
	}
}
