// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package provider

import (
	"testing"

	wardenerrors "github.com/archmagece/warden/internal/errors"
)

func strPtr(s string) *string { return &s }
func typePtr(t Type) *Type    { return &t }
func flowPtr(f Flow) *Flow    { return &f }

func TestMergeFieldPrecedence(t *testing.T) {
	// oauth.toml sets client_id and type; global git config overrides
	// client_secret; repo-local overrides client_id only. Per spec §9 this
	// is a field-by-field merge, not a whole-record replace.
	tomlLayer := Patch{
		Type:     typePtr(TypeGitHub),
		ClientID: strPtr("from-toml"),
	}
	globalLayer := Patch{
		ClientSecret: strPtr("from-global"),
	}
	repoLayer := Patch{
		ClientID: strPtr("from-repo"),
	}

	p := Merge("example.test", tomlLayer, globalLayer, repoLayer)

	if p.ClientID != "from-repo" {
		t.Errorf("ClientID = %q, want repo-local override", p.ClientID)
	}
	if p.ClientSecret != "from-global" {
		t.Errorf("ClientSecret = %q, want global value (never overridden by repo layer)", p.ClientSecret)
	}
	if p.Type != TypeGitHub {
		t.Errorf("Type = %q, want github (only set by toml layer)", p.Type)
	}
}

func TestMergeHostLowercased(t *testing.T) {
	p := Merge("Example.TEST")
	if p.Host != "example.test" {
		t.Errorf("Host = %q, want lowercased", p.Host)
	}
}

func TestResolveAppliesPresetOnlyWhenUnset(t *testing.T) {
	p := Merge("github.com", Patch{
		Type:     typePtr(TypeGitHub),
		ClientID: strPtr("abc"),
		AuthURL:  strPtr("https://github.example/custom/authorize"),
	})

	resolved, err := Resolve(p)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if resolved.AuthURL != "https://github.example/custom/authorize" {
		t.Errorf("AuthURL = %q, want the explicitly configured value preserved", resolved.AuthURL)
	}
	if resolved.TokenURL != "https://github.com/login/oauth/access_token" {
		t.Errorf("TokenURL = %q, want preset default", resolved.TokenURL)
	}
}

func TestResolveRelativeEndpoints(t *testing.T) {
	p := Merge("git.example.test", Patch{
		Type:     typePtr(TypeGitea),
		ClientID: strPtr("abc"),
	})

	resolved, err := Resolve(p)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if resolved.AuthURL != "https://git.example.test/login/oauth/authorize" {
		t.Errorf("AuthURL = %q, want resolved against https://<host>", resolved.AuthURL)
	}
}

func TestResolveMissingClientIDFails(t *testing.T) {
	p := Merge("example.test", Patch{Type: typePtr(TypeGitHub)})

	_, err := Resolve(p)
	if !wardenerrors.Is(err, wardenerrors.ErrConfigInvalid) {
		t.Errorf("Resolve() error = %v, want ErrConfigInvalid", err)
	}
}

func TestResolveDeviceFlowRequiresDeviceAuthURL(t *testing.T) {
	p := Merge("example.test", Patch{
		Type:          typePtr(TypeForgejo),
		ClientID:      strPtr("abc"),
		PreferredFlow: flowPtr(FlowDevice),
	})

	_, err := Resolve(p)
	if !wardenerrors.Is(err, wardenerrors.ErrConfigInvalid) {
		t.Errorf("Resolve() error = %v, want ErrConfigInvalid (forgejo has no device preset)", err)
	}
}
