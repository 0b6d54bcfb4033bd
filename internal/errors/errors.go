// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package errors defines warden's error kinds and small wrapping helpers.
// Error kinds are propagated rather than collapsed: callers match on the
// sentinel with errors.Is instead of parsing message strings.
package errors

import (
	"errors"
	"fmt"
)

// Is reports whether any error in err's chain matches target.
// It is a thin re-export of the standard library so callers that only
// import this package don't also need to import "errors".
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Wrap returns an error that matches target via errors.Is while keeping err
// in its chain for unwrapping and logging. If err is nil, target is
// returned unchanged (there's nothing to wrap, but callers still want the
// sentinel). If target is nil, err is returned unchanged.
func Wrap(err, target error) error {
	if err == nil {
		return target
	}
	if target == nil {
		return err
	}
	return &kindError{kind: target, cause: err}
}

// WrapWithMessage annotates err with a message while preserving its chain.
// Returns nil if err is nil.
func WrapWithMessage(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// kindError pairs an underlying cause with the sentinel kind it should be
// recognized as via errors.Is, without discarding the cause's message.
type kindError struct {
	kind  error
	cause error
}

func (e *kindError) Error() string {
	if e.cause == nil {
		return e.kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.kind.Error(), e.cause.Error())
}

func (e *kindError) Unwrap() error {
	return e.cause
}

func (e *kindError) Is(target error) bool {
	return errors.Is(e.kind, target)
}

// Kind classifies warden errors into the categories spec §7 propagates.
type Kind string

const (
	ConfigInvalid          Kind = "config_invalid"
	ProviderUnknown        Kind = "provider_unknown"
	FlowUnsupported        Kind = "flow_unsupported"
	FlowTimeout            Kind = "flow_timeout"
	StateMismatch          Kind = "state_mismatch"
	AuthorizationDenied    Kind = "authorization_denied"
	ProviderHTTPKind       Kind = "provider_http"
	MalformedTokenResponse Kind = "malformed_token_response"
	BindFailed             Kind = "bind_failed"
	KeyringUnavailable     Kind = "keyring_unavailable"
	RepoDetectionFailed    Kind = "repo_detection_failed"
	NoMatchingRule         Kind = "no_matching_rule"
	ProfileUnknown         Kind = "profile_unknown"
	GitConfigWriteFailed   Kind = "git_config_write_failed"
)

// sentinel errors for each of the Kind values above, usable directly with
// errors.Is (or this package's Is) and as the target argument to Wrap.
var (
	ErrConfigInvalid          = errors.New(string(ConfigInvalid))
	ErrProviderUnknown        = errors.New(string(ProviderUnknown))
	ErrFlowUnsupported        = errors.New(string(FlowUnsupported))
	ErrFlowTimeout            = errors.New(string(FlowTimeout))
	ErrStateMismatch          = errors.New(string(StateMismatch))
	ErrAuthorizationDenied    = errors.New(string(AuthorizationDenied))
	ErrProviderHTTP           = errors.New(string(ProviderHTTPKind))
	ErrMalformedTokenResponse = errors.New(string(MalformedTokenResponse))
	ErrBindFailed             = errors.New(string(BindFailed))
	ErrKeyringUnavailable     = errors.New(string(KeyringUnavailable))
	ErrRepoDetectionFailed    = errors.New(string(RepoDetectionFailed))
	ErrNoMatchingRule         = errors.New(string(NoMatchingRule))
	ErrProfileUnknown         = errors.New(string(ProfileUnknown))
	ErrGitConfigWriteFailed   = errors.New(string(GitConfigWriteFailed))

	// ErrNotFound is the non-error sentinel returned by the keyring and
	// credential store lookups for an absent entry (spec §4.5, §4.6).
	ErrNotFound = errors.New("not found")
)

// ProviderHTTPError carries the status and trimmed body of a non-2xx
// response from an OAuth provider, per spec §4.4/§7 ProviderHTTP(status, body).
type ProviderHTTPError struct {
	Status int
	Body   string
}

const maxBodyEcho = 2048

// NewProviderHTTPError trims body to a diagnosable length before storing it.
func NewProviderHTTPError(status int, body string) *ProviderHTTPError {
	if len(body) > maxBodyEcho {
		body = body[:maxBodyEcho] + "...(truncated)"
	}
	return &ProviderHTTPError{Status: status, Body: body}
}

func (e *ProviderHTTPError) Error() string {
	return fmt.Sprintf("provider returned HTTP %d: %s", e.Status, e.Body)
}

func (e *ProviderHTTPError) Is(target error) bool {
	return target == ErrProviderHTTP
}
