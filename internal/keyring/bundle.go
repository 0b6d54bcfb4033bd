// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package keyring

import (
	"strconv"
	"time"

	wardenerrors "github.com/archmagece/warden/internal/errors"

	"github.com/archmagece/warden/internal/provider"
)

// PutBundle writes a TokenBundle's fields to kr under (host, name). The
// access token is always written; the other fields only when non-empty or
// non-zero. A field absent from b is not cleared, so any value an earlier
// PutBundle stored for it under (host, name) stays in place unless the
// caller deletes it first.
func PutBundle(kr Keyring, host, name string, b provider.TokenBundle) error {
	if err := kr.Set(host, name, FieldAccess, b.AccessToken); err != nil {
		return err
	}
	if b.RefreshToken != "" {
		if err := kr.Set(host, name, FieldRefresh, b.RefreshToken); err != nil {
			return err
		}
	}
	if !b.ExpiresAt.IsZero() {
		if err := kr.Set(host, name, FieldExpiresAt, strconv.FormatInt(b.ExpiresAt.Unix(), 10)); err != nil {
			return err
		}
	}
	if b.Scope != "" {
		if err := kr.Set(host, name, FieldScope, b.Scope); err != nil {
			return err
		}
	}
	return nil
}

// GetBundle reads a TokenBundle back from kr. Returns wardenerrors.ErrNotFound
// if the access token field is absent (spec §8: "keyring entries include at
// least access"); refresh/expires_at/scope are optional and simply omitted
// when absent.
func GetBundle(kr Keyring, host, name string) (provider.TokenBundle, error) {
	access, err := kr.Get(host, name, FieldAccess)
	if err != nil {
		return provider.TokenBundle{}, err
	}

	b := provider.TokenBundle{
		AccessToken: access,
		TokenType:   provider.DefaultTokenType,
	}

	if refresh, err := kr.Get(host, name, FieldRefresh); err == nil {
		b.RefreshToken = refresh
	} else if !wardenerrors.Is(err, wardenerrors.ErrNotFound) {
		return provider.TokenBundle{}, err
	}

	if rawExpiry, err := kr.Get(host, name, FieldExpiresAt); err == nil {
		if ts, parseErr := strconv.ParseInt(rawExpiry, 10, 64); parseErr == nil {
			b.ExpiresAt = time.Unix(ts, 0).UTC()
		}
	} else if !wardenerrors.Is(err, wardenerrors.ErrNotFound) {
		return provider.TokenBundle{}, err
	}

	if scope, err := kr.Get(host, name, FieldScope); err == nil {
		b.Scope = scope
	} else if !wardenerrors.Is(err, wardenerrors.ErrNotFound) {
		return provider.TokenBundle{}, err
	}

	return b, nil
}

// DeleteBundle removes all four fields for (host, name). Missing fields are
// not an error (adapters treat delete-of-absent as a no-op).
func DeleteBundle(kr Keyring, host, name string) error {
	for _, f := range []Field{FieldAccess, FieldRefresh, FieldExpiresAt, FieldScope} {
		if err := kr.Delete(host, name, f); err != nil {
			return err
		}
	}
	return nil
}
