// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"os/exec"
	"runtime"
)

// consoleReporter is the oauthflow.Reporter adapter that prints progress
// to stdout (the authorization URL, the device user code, poll status).
type consoleReporter struct{}

func (consoleReporter) Printf(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}

// openBrowser best-effort opens url in the user's default browser, using
// the OS-appropriate command (spec §4.4 step 4: "best-effort; also print
// it").
func openBrowser(url string) error {
	var name string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		name, args = "open", []string{url}
	case "windows":
		name, args = "cmd", []string{"/c", "start", "", url}
	default:
		name, args = "xdg-open", []string{url}
	}

	return exec.Command(name, args...).Start()
}
