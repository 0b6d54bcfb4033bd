package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		wantIs error
	}{
		{
			name:   "wrap with target",
			err:    errors.New("original error"),
			target: ErrNotFound,
			wantIs: ErrNotFound,
		},
		{
			name:   "nil err returns target",
			err:    nil,
			target: ErrNotFound,
			wantIs: ErrNotFound,
		},
		{
			name:   "nil target returns err",
			err:    errors.New("original"),
			target: nil,
			wantIs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.err, tt.target)
			if tt.wantIs != nil && !Is(got, tt.wantIs) {
				t.Errorf("Wrap() error should match %v", tt.wantIs)
			}
		})
	}
}

func TestWrapWithMessage(t *testing.T) {
	original := errors.New("original error")
	wrapped := WrapWithMessage(original, "context")

	if wrapped == nil {
		t.Error("WrapWithMessage should return non-nil error")
	}

	if !Is(wrapped, original) {
		t.Error("wrapped error should match original")
	}

	// nil error should return nil.
	if WrapWithMessage(nil, "context") != nil {
		t.Error("WrapWithMessage(nil) should return nil")
	}
}

func TestWardenSentinelErrors(t *testing.T) {
	// Verify warden's error kinds are defined and distinct.
	kindErrors := []error{
		ErrConfigInvalid,
		ErrProviderUnknown,
		ErrFlowUnsupported,
		ErrFlowTimeout,
		ErrStateMismatch,
		ErrAuthorizationDenied,
		ErrProviderHTTP,
		ErrMalformedTokenResponse,
		ErrBindFailed,
		ErrKeyringUnavailable,
		ErrRepoDetectionFailed,
		ErrNoMatchingRule,
		ErrProfileUnknown,
		ErrGitConfigWriteFailed,
		ErrNotFound,
	}

	seen := make(map[string]bool, len(kindErrors))
	for _, err := range kindErrors {
		if err == nil {
			t.Fatal("warden sentinel error should not be nil")
		}
		if seen[err.Error()] {
			t.Errorf("duplicate sentinel message: %v", err)
		}
		seen[err.Error()] = true
	}
}

func TestProviderHTTPError(t *testing.T) {
	err := NewProviderHTTPError(401, `{"error":"bad_verification_code"}`)

	if !Is(err, ErrProviderHTTP) {
		t.Error("ProviderHTTPError should match ErrProviderHTTP via Is")
	}
	if err.Status != 401 {
		t.Errorf("Status = %d, want 401", err.Status)
	}

	long := NewProviderHTTPError(500, string(make([]byte, 4096)))
	if len(long.Body) >= 4096 {
		t.Error("long body should be truncated")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	wrapped := Wrap(cause, ErrBindFailed)

	if !Is(wrapped, ErrBindFailed) {
		t.Error("Wrap() result should match the target sentinel")
	}
	if !strings.Contains(wrapped.Error(), cause.Error()) {
		t.Errorf("Wrap() should keep the cause message, got %q", wrapped.Error())
	}
	if errors.Unwrap(wrapped) != cause {
		t.Error("Unwrap() should return the original cause")
	}
}
