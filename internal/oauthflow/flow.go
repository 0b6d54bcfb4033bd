// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package oauthflow is the C4 OAuth Flow Engine: Authorization Code+PKCE
// (with a locally bound loopback callback server), Device Authorization
// Grant, and refresh, run against a provider.Provider per spec §4.4.
package oauthflow

import (
	"context"
	"net/http"
	"time"

	wardenerrors "github.com/archmagece/warden/internal/errors"
	"github.com/archmagece/warden/internal/provider"
)

// Reporter is the narrow TTY-output surface the flow engine writes
// progress to (the authorization URL, the device user code, poll status).
// The concrete adapter is consoleReporter in cmd/warden/cmd; tests supply
// a recording stub.
type Reporter interface {
	Printf(format string, args ...any)
}

// Options configures a single login/refresh attempt.
type Options struct {
	// Name is the credential name the resulting TokenBundle will be
	// stored under (not used by the flow itself, only echoed through by
	// callers; kept here so callers don't need a parallel struct).
	Name string

	// FlowOverride is the --device / CLI-selected hint; empty defers
	// entirely to Provider.PreferredFlow.
	FlowOverride provider.Flow

	// Port is the loopback port to bind for the auth-code flow. Zero
	// means OS-chosen ephemeral (spec §4.1 "port ... default: OS-chosen
	// ephemeral").
	Port int

	// Timeout bounds the whole flow (default 300s per spec §4.4).
	Timeout time.Duration

	// HTTPClient performs provider HTTP calls; defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Reporter receives human-readable progress output.
	Reporter Reporter

	// OpenBrowser best-effort opens a URL in the user's browser. Nil
	// disables browser auto-open (the URL is still printed via Reporter).
	OpenBrowser func(url string) error
}

const (
	defaultFlowTimeout = 300 * time.Second
	defaultDevicePoll  = 5 * time.Second
	// RefreshSkew is the "skew" window spec §4.7 uses to decide whether a
	// token needs proactive refresh before it actually expires.
	RefreshSkew = 60 * time.Second
)

func (o Options) httpClient() *http.Client {
	if o.HTTPClient != nil {
		return o.HTTPClient
	}
	return http.DefaultClient
}

func (o Options) timeout() time.Duration {
	if o.Timeout > 0 {
		return o.Timeout
	}
	return defaultFlowTimeout
}

func (o Options) reporter() Reporter {
	if o.Reporter != nil {
		return o.Reporter
	}
	return noopReporter{}
}

type noopReporter struct{}

func (noopReporter) Printf(string, ...any) {}

// resolveFlow applies spec §4.4's selection rule: the override (if any)
// wins, else the provider's PreferredFlow, else auto. auto picks device
// when DeviceAuthURL is configured, else authcode.
func resolveFlow(p provider.Provider, override provider.Flow) (provider.Flow, error) {
	hint := override
	if hint == "" {
		hint = p.PreferredFlow
	}
	if hint == "" {
		hint = provider.FlowAuto
	}

	switch hint {
	case provider.FlowDevice:
		if p.DeviceAuthURL == "" {
			return "", wardenerrors.Wrap(errNoDeviceEndpoint(p.Host), wardenerrors.ErrFlowUnsupported)
		}
		return provider.FlowDevice, nil
	case provider.FlowAuthCode:
		return provider.FlowAuthCode, nil
	case provider.FlowAuto:
		if p.DeviceAuthURL != "" {
			return provider.FlowDevice, nil
		}
		return provider.FlowAuthCode, nil
	default:
		return "", wardenerrors.Wrap(errUnknownFlow(string(hint)), wardenerrors.ErrFlowUnsupported)
	}
}

// Login runs the appropriate flow (auth-code or device) to completion and
// returns a fresh TokenBundle.
func Login(ctx context.Context, p provider.Provider, opts Options) (provider.TokenBundle, error) {
	flow, err := resolveFlow(p, opts.FlowOverride)
	if err != nil {
		return provider.TokenBundle{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, opts.timeout())
	defer cancel()

	switch flow {
	case provider.FlowDevice:
		return runDeviceFlow(ctx, p, opts)
	default:
		return runAuthCodeFlow(ctx, p, opts)
	}
}
