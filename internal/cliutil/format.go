// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cliutil

import (
	"fmt"
	"strings"
)

// CoreFormats is a general-purpose list of --format values for
// ValidateFormat; warden's status and list commands pass their own
// narrower list ("table", "json") instead.
var CoreFormats = []string{"default", "compact", "json"}

// ValidateFormat checks if the given format is in the allowed list.
func ValidateFormat(format string, allowed []string) error {
	for _, f := range allowed {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format: %s (allowed: %s)", format, strings.Join(allowed, ", "))
}

// IsMachineFormat returns true for formats intended for machine consumption.
func IsMachineFormat(format string) bool {
	return strings.ToLower(format) == "json"
}
