// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package credstore

import (
	"fmt"

	"github.com/archmagece/warden/internal/tomlcfg"
)

func readState(path string, v *stateFile) error {
	return tomlcfg.Read(path, v)
}

func writeState(path string, v stateFile) error {
	return tomlcfg.WriteAtomic(path, v)
}

func errNoSuchCredential(host, name string) error {
	return fmt.Errorf("no credential %q on host %q", name, host)
}
