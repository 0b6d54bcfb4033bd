// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package githelper

import "errors"

// errDecline is an internal sentinel meaning "produce no credentials and
// exit 0" (spec §7: non-interactive get declining a required fallback
// flow). It never escapes Handle.
var errDecline = errors.New("githelper: declining to produce credentials")
