// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/archmagece/warden/internal/githelper"
	"github.com/archmagece/warden/internal/oauthflow"
	"github.com/archmagece/warden/internal/prompt"
)

var getCmd = &cobra.Command{
	Use:    "get",
	Short:  "Implement Git's credential-helper get protocol",
	Hidden: true,
	RunE:   runHelperCmd("get"),
}

var storeCmd = &cobra.Command{
	Use:    "store",
	Short:  "Implement Git's credential-helper store protocol (no-op)",
	Hidden: true,
	RunE:   runHelperCmd("store"),
}

var eraseCmd = &cobra.Command{
	Use:    "erase",
	Short:  "Implement Git's credential-helper erase protocol (no-op)",
	Hidden: true,
	RunE:   runHelperCmd("erase"),
}

// runHelperCmd builds the RunE for one of the three Git credential-helper
// subcommands, all of which share the same wiring (spec §4.7).
func runHelperCmd(sub string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}

		h := &githelper.Handler{
			Providers: a.providers,
			Store:     a.store,
			FlowOptions: oauthflow.Options{
				Reporter:    consoleReporter{},
				OpenBrowser: openBrowser,
			},
			ForceDevice:   forceDevice,
			IsInteractive: prompt.IsInteractive,
		}

		return h.Handle(ctx, sub, os.Stdin, cmd.OutOrStdout())
	}
}
