// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package githelper

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	wardenerrors "github.com/archmagece/warden/internal/errors"
	"github.com/archmagece/warden/internal/oauthflow"
	"github.com/archmagece/warden/internal/provider"
)

// Store is the subset of *credstore.Store the helper needs, narrowed so
// tests can supply a fake.
type Store interface {
	Active(host string) string
	GetToken(host, name string) (provider.TokenBundle, error)
	PutToken(host, name string, bundle provider.TokenBundle) error
}

// defaultGetTimeout bounds a single `get` invocation (spec §4.7: "must
// complete within a configured ceiling (default 600 s)").
const defaultGetTimeout = 600 * time.Second

// Handler dispatches the get/store/erase commands against an effective
// provider map and a credential store, running C4 logins/refreshes as
// needed (spec §4.7's Flow line: "Git → C7 → C1 → C6 → C4 → C5 → C7").
type Handler struct {
	// Providers is the effective provider map from C1, keyed by canonical
	// host.
	Providers map[string]provider.Provider

	// Store is the C6 credential store.
	Store Store

	// FlowOptions seeds each Login/Refresh call; Name is overwritten per
	// invocation, FlowOverride is set to device only when ForceDevice is
	// true, and the other fields (Timeout included) pass through unchanged.
	FlowOptions oauthflow.Options

	// ForceDevice mirrors the global --device flag (spec §4.9).
	ForceDevice bool

	// GetTimeout bounds one `get` call; zero uses defaultGetTimeout.
	GetTimeout time.Duration

	// IsInteractive reports whether stdin is a TTY; nil defaults to a
	// term.IsTerminal check on os.Stdin. Tests override this.
	IsInteractive func() bool

	// Now is injectable for tests; nil defaults to time.Now.
	Now func() time.Time
}

func (h *Handler) isInteractive() bool {
	if h.IsInteractive != nil {
		return h.IsInteractive()
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *Handler) getTimeout() time.Duration {
	if h.GetTimeout > 0 {
		return h.GetTimeout
	}
	return defaultGetTimeout
}

// Handle dispatches cmd ("get", "store", or "erase") by reading a request
// from r and, for "get", writing a response to w.
func (h *Handler) Handle(ctx context.Context, cmd string, r io.Reader, w io.Writer) error {
	fields, err := ReadRequest(r)
	if err != nil {
		return err
	}

	switch cmd {
	case "get":
		return h.handleGet(ctx, fields, w)
	case "store", "erase":
		// No-ops for OAuth-issued credentials: Git expects idempotent
		// behavior and warden never persists plaintext tokens outside
		// the keyring (spec §4.7).
		return nil
	default:
		return nil
	}
}

func canonicalHost(host string) string {
	return strings.ToLower(strings.TrimSpace(host))
}

func (h *Handler) handleGet(ctx context.Context, fields map[string]string, w io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, h.getTimeout())
	defer cancel()

	host := canonicalHost(fields["host"])
	if host == "" {
		return nil
	}

	p, ok := h.Providers[host]
	if !ok {
		// No provider configured for this host: decline silently so Git
		// falls through to the next credential helper (spec §4.7 step 2).
		return nil
	}

	name := fields["username"]
	if name == "" {
		name = h.Store.Active(host)
	}
	if name == "" {
		name = provider.DefaultCredentialName
	}

	bundle, err := h.resolveToken(ctx, p, name)
	if err != nil {
		if wardenerrors.Is(err, errDecline) {
			return nil
		}
		return err
	}

	return WriteResponse(w, map[string]string{
		"protocol": fields["protocol"],
		"host":     fields["host"],
		"username": name,
		"password": bundle.AccessToken,
	})
}

// resolveToken implements spec §4.7 step 4: load the stored bundle,
// refreshing or running a full login when absent or near expiry. errDecline
// signals the non-interactive-declined case from spec §7's recovery policy.
func (h *Handler) resolveToken(ctx context.Context, p provider.Provider, name string) (provider.TokenBundle, error) {
	bundle, err := h.Store.GetToken(p.Host, name)
	switch {
	case err == nil:
		if !bundle.Expired(h.now(), oauthflow.RefreshSkew) {
			return bundle, nil
		}
		return h.refreshOrLogin(ctx, p, name, bundle)
	case wardenerrors.Is(err, wardenerrors.ErrNotFound):
		return h.login(ctx, p, name)
	default:
		return provider.TokenBundle{}, err
	}
}

func (h *Handler) refreshOrLogin(ctx context.Context, p provider.Provider, name string, stale provider.TokenBundle) (provider.TokenBundle, error) {
	if stale.RefreshToken == "" {
		return h.login(ctx, p, name)
	}

	opts := h.flowOptions(name)
	bundle, err := oauthflow.Refresh(ctx, p, stale.RefreshToken, opts)
	if err == nil {
		if perr := h.Store.PutToken(p.Host, name, bundle); perr != nil {
			return provider.TokenBundle{}, perr
		}
		return bundle, nil
	}

	if !oauthflow.IsInvalidRefreshToken(err) {
		return provider.TokenBundle{}, err
	}

	// Refresh token rejected: per spec §7, fall through to a full flow
	// only when interactive; otherwise decline so Git tries the next
	// helper rather than hanging on an unreachable browser prompt.
	if !h.isInteractive() {
		return provider.TokenBundle{}, errDecline
	}
	return h.login(ctx, p, name)
}

func (h *Handler) login(ctx context.Context, p provider.Provider, name string) (provider.TokenBundle, error) {
	opts := h.flowOptions(name)
	bundle, err := oauthflow.Login(ctx, p, opts)
	if err != nil {
		return provider.TokenBundle{}, err
	}
	if err := h.Store.PutToken(p.Host, name, bundle); err != nil {
		return provider.TokenBundle{}, err
	}
	return bundle, nil
}

func (h *Handler) flowOptions(name string) oauthflow.Options {
	opts := h.FlowOptions
	opts.Name = name
	if h.ForceDevice {
		opts.FlowOverride = provider.FlowDevice
	}
	return opts
}
