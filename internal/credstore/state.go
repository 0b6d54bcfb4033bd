// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package credstore implements the C6 Credential Store: per-host tracking
// of named credential sets and the active selection, persisted as
// state.toml, plus orchestration of the keyring-backed TokenBundle CRUD.
package credstore

import (
	"sync"

	wardenerrors "github.com/archmagece/warden/internal/errors"
	"github.com/archmagece/warden/internal/keyring"
	"github.com/archmagece/warden/internal/provider"
)

// hostState is the on-disk shape of one host's credential set, matching
// spec §6's "[hosts.<host>] credentials = [...] active = ...".
type hostState struct {
	Credentials []string `toml:"credentials"`
	Active      string   `toml:"active,omitempty"`
}

// stateFile is the root document persisted at state.toml.
type stateFile struct {
	Hosts map[string]*hostState `toml:"hosts"`
}

// Store is the C6 Credential Store. It owns both the on-disk index
// (state.toml) and, through kr, the keyring-backed TokenBundles. In
// OAuthOnly mode the on-disk index is never read or written and token
// operations are no-ops against persistent storage (spec §4.6).
type Store struct {
	mu        sync.Mutex
	statePath string
	kr        keyring.Keyring
	oauthOnly bool
	doc       stateFile
}

// New loads statePath (if present) and wires kr for token CRUD. When
// oauthOnly is true, the state file is neither read nor written and
// GetToken/PutToken operate purely in memory for the process lifetime.
func New(statePath string, kr keyring.Keyring, oauthOnly bool) (*Store, error) {
	s := &Store{statePath: statePath, kr: kr, oauthOnly: oauthOnly}
	s.doc.Hosts = map[string]*hostState{}

	if oauthOnly {
		return s, nil
	}

	if err := readState(statePath, &s.doc); err != nil {
		return nil, err
	}
	if s.doc.Hosts == nil {
		s.doc.Hosts = map[string]*hostState{}
	}
	return s, nil
}

// List returns the ordered credential names for host.
func (s *Store) List(host string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	hs, ok := s.doc.Hosts[host]
	if !ok {
		return nil
	}
	return append([]string(nil), hs.Credentials...)
}

// Active returns the active credential name for host, or "" if none.
func (s *Store) Active(host string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	hs, ok := s.doc.Hosts[host]
	if !ok {
		return ""
	}
	return hs.Active
}

// Add appends name to host's credential set if absent; if it's the first
// entry for host, it also becomes active (spec §4.6).
func (s *Store) Add(host, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	hs := s.doc.Hosts[host]
	if hs == nil {
		hs = &hostState{}
		s.doc.Hosts[host] = hs
	}
	if !contains(hs.Credentials, name) {
		hs.Credentials = append(hs.Credentials, name)
	}
	if hs.Active == "" {
		hs.Active = name
	}
	return s.persist()
}

// Remove deletes name from host's credential set, reassigns Active if it
// was the removed entry, and deletes the corresponding keyring entries
// (spec §4.6: "also deletes corresponding keyring entries").
func (s *Store) Remove(host, name string) error {
	s.mu.Lock()
	hs := s.doc.Hosts[host]
	if hs != nil {
		hs.Credentials = remove(hs.Credentials, name)
		if hs.Active == name {
			if len(hs.Credentials) > 0 {
				hs.Active = hs.Credentials[0]
			} else {
				hs.Active = ""
			}
		}
		if len(hs.Credentials) == 0 {
			delete(s.doc.Hosts, host)
		}
	}
	err := s.persist()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return keyring.DeleteBundle(s.kr, host, name)
}

// SetActive sets host's active credential to name, which must already
// exist in the set (spec §4.6: "name must exist").
func (s *Store) SetActive(host, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	hs := s.doc.Hosts[host]
	if hs == nil || !contains(hs.Credentials, name) {
		return wardenerrors.Wrap(errNoSuchCredential(host, name), wardenerrors.ErrProviderUnknown)
	}
	hs.Active = name
	return s.persist()
}

// GetToken reads the TokenBundle for (host, name) from the keyring.
// Returns wardenerrors.ErrNotFound if absent.
func (s *Store) GetToken(host, name string) (provider.TokenBundle, error) {
	return keyring.GetBundle(s.kr, host, name)
}

// PutToken writes bundle to the keyring and ensures (host, name) is present
// in the state index, unless OAuthOnly, in which case the state file is
// never touched and the keyring write still happens against whatever
// keyring adapter the caller wired (typically an in-memory one for
// oauth_only, per spec §4.6).
func (s *Store) PutToken(host, name string, bundle provider.TokenBundle) error {
	if err := keyring.PutBundle(s.kr, host, name, bundle); err != nil {
		return err
	}
	if s.oauthOnly {
		return nil
	}
	return s.Add(host, name)
}

// OAuthOnly reports whether the store was constructed in oauth_only mode.
func (s *Store) OAuthOnly() bool { return s.oauthOnly }

// persist writes the state document atomically, unless OAuthOnly (spec
// §4.6: "state file is not written"). Caller must hold s.mu.
func (s *Store) persist() error {
	if s.oauthOnly {
		return nil
	}
	return writeState(s.statePath, s.doc)
}

func contains(ss []string, v string) bool {
	for _, s := range ss {
		if s == v {
			return true
		}
	}
	return false
}

func remove(ss []string, v string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}
