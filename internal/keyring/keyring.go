// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package keyring is the concrete C5 Keyring Adapter: CRUD of secrets keyed
// by (host, credential-name, field) against the OS secret store. It is the
// only package in warden that touches github.com/zalando/go-keyring; every
// other component consumes the Keyring interface.
package keyring

import "fmt"

// Field identifies one of the four pieces of a TokenBundle persisted per
// spec §4.5/§8 ("at least access; refresh/expires_at may or may not exist").
type Field string

const (
	FieldAccess    Field = "access"
	FieldRefresh   Field = "refresh"
	FieldExpiresAt Field = "expires_at"
	FieldScope     Field = "scope"
)

// Keyring is the interface every other warden component consumes. Absent
// keys are reported via wardenerrors.ErrNotFound, a non-error sentinel
// (spec §4.5: "Absent keys return 'not found'").
type Keyring interface {
	Get(host, name string, field Field) (string, error)
	Set(host, name string, field Field, value string) error
	Delete(host, name string, field Field) error
}

// key builds the "warden:<host>:<name>:<field>" service key spec §4.5
// mandates. go-keyring addresses secrets by (service, user); warden folds
// all four coordinates into the service string and uses a constant user.
func key(host, name string, field Field) string {
	return fmt.Sprintf("warden:%s:%s:%s", host, name, field)
}

// keyringUser is the go-keyring "user" component. warden has no notion of
// OS user multiplexing within one secret-store account, so it is constant.
const keyringUser = "warden"
