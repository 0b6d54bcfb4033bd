// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package prompt

import (
	"os"

	"golang.org/x/term"
)

// envNonInteractive, when set to a recognized truthy value, forces
// IsInteractive() to report false regardless of whether stdin is a TTY
// (useful for scripted/CI invocations of interactive commands).
const envNonInteractive = "WARDEN_NONINTERACTIVE"

// IsInteractive reports whether warden should prompt the user: stdin must
// be a terminal and WARDEN_NONINTERACTIVE must be unset/false. Per spec §9,
// the credential helper's `get` path uses this to decide whether it is safe
// to block on an OAuth prompt.
func IsInteractive() bool {
	switch os.Getenv(envNonInteractive) {
	case "1", "true", "yes":
		return false
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}
