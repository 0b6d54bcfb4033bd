// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package cmd implements warden's CLI commands (C9 Command Orchestrator):
// dispatch of get/store/erase/login/logout/refresh/switch/status/list/
// apply/show/completions (spec §4.9/§6).
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/archmagece/warden/internal/cliutil"
)

var (
	appVersion string

	forceDevice bool
	verbose     bool
	configPath  string
)

// rootCmd is warden's base command, in the teacher's Use/Short/Long/RunE
// shape (pkg/... cmd/gz-git/cmd/root.go).
var rootCmd = &cobra.Command{
	Use:   "warden",
	Short: "Git credential/profile assistant",
	Long: `warden is an OAuth-issuing Git credential helper and per-repository
Git identity profile manager.
` + cliutil.QuickStartHelp(`  # Log in to a provider and store the token
  warden login --hostname example.test

  # Check what's configured
  warden status

  # Apply the identity profile matching the current repo's remote
  warden apply`),
	Version:           appVersion,
	SilenceUsage:      true,
	SilenceErrors:     true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the command tree; called from cmd/warden/main.go once.
// It returns the process exit code (spec §6: 0 success, 1 user error,
// 2 provider/flow failure, 3 I/O).
func Execute(version string) int {
	appVersion = version
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCodeFor(err)
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&forceDevice, "device", false, "force the Device Authorization Grant flow for any command that logs in")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "override the warden config directory (default $XDG_CONFIG_HOME/warden)")

	rootCmd.AddCommand(
		loginCmd,
		logoutCmd,
		refreshCmd,
		switchCmd,
		statusCmd,
		listCmd,
		applyCmd,
		showCmd,
		getCmd,
		storeCmd,
		eraseCmd,
		completionsCmd,
	)
}
