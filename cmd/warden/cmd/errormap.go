// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import wardenerrors "github.com/archmagece/warden/internal/errors"

// exitCodeFor maps an error to one of the exit codes spec §6 defines:
// 1 user error (bad config, missing profile), 2 provider/flow failure,
// 3 I/O. Anything unrecognized defaults to 1.
func exitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	userErrors := []error{
		wardenerrors.ErrConfigInvalid,
		wardenerrors.ErrProviderUnknown,
		wardenerrors.ErrNoMatchingRule,
		wardenerrors.ErrProfileUnknown,
	}
	for _, e := range userErrors {
		if wardenerrors.Is(err, e) {
			return 1
		}
	}

	flowErrors := []error{
		wardenerrors.ErrFlowUnsupported,
		wardenerrors.ErrFlowTimeout,
		wardenerrors.ErrStateMismatch,
		wardenerrors.ErrAuthorizationDenied,
		wardenerrors.ErrProviderHTTP,
		wardenerrors.ErrMalformedTokenResponse,
		wardenerrors.ErrBindFailed,
	}
	for _, e := range flowErrors {
		if wardenerrors.Is(err, e) {
			return 2
		}
	}

	ioErrors := []error{
		wardenerrors.ErrKeyringUnavailable,
		wardenerrors.ErrRepoDetectionFailed,
		wardenerrors.ErrGitConfigWriteFailed,
	}
	for _, e := range ioErrors {
		if wardenerrors.Is(err, e) {
			return 3
		}
	}

	return 1
}
