// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package keyring

import (
	"sync"

	wardenerrors "github.com/archmagece/warden/internal/errors"
)

// MemoryKeyring is an in-process Keyring used for oauth_only mode (spec
// §4.6: "tokens flow through memory only per invocation") and for tests
// that don't want to touch the real OS secret store.
type MemoryKeyring struct {
	mu    sync.Mutex
	store map[string]string
}

// NewMemoryKeyring constructs an empty in-memory adapter.
func NewMemoryKeyring() *MemoryKeyring {
	return &MemoryKeyring{store: map[string]string{}}
}

func (m *MemoryKeyring) Get(host, name string, field Field) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.store[key(host, name, field)]
	if !ok {
		return "", wardenerrors.ErrNotFound
	}
	return v, nil
}

func (m *MemoryKeyring) Set(host, name string, field Field, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[key(host, name, field)] = value
	return nil
}

func (m *MemoryKeyring) Delete(host, name string, field Field) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, key(host, name, field))
	return nil
}
