// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package keyring

import (
	gokeyring "github.com/zalando/go-keyring"

	wardenerrors "github.com/archmagece/warden/internal/errors"
)

// OSKeyring adapts github.com/zalando/go-keyring to the Keyring interface.
// It is the production adapter behind C5; go-keyring itself dispatches to
// the platform secret store (Keychain, Secret Service, Credential Manager).
type OSKeyring struct{}

// NewOSKeyring constructs the OS-backed adapter.
func NewOSKeyring() *OSKeyring {
	return &OSKeyring{}
}

func (OSKeyring) Get(host, name string, field Field) (string, error) {
	v, err := gokeyring.Get(key(host, name, field), keyringUser)
	if err != nil {
		if err == gokeyring.ErrNotFound {
			return "", wardenerrors.ErrNotFound
		}
		return "", wardenerrors.Wrap(err, wardenerrors.ErrKeyringUnavailable)
	}
	return v, nil
}

func (OSKeyring) Set(host, name string, field Field, value string) error {
	if err := gokeyring.Set(key(host, name, field), keyringUser, value); err != nil {
		return wardenerrors.Wrap(err, wardenerrors.ErrKeyringUnavailable)
	}
	return nil
}

func (OSKeyring) Delete(host, name string, field Field) error {
	if err := gokeyring.Delete(key(host, name, field), keyringUser); err != nil {
		if err == gokeyring.ErrNotFound {
			return nil
		}
		return wardenerrors.Wrap(err, wardenerrors.ErrKeyringUnavailable)
	}
	return nil
}
