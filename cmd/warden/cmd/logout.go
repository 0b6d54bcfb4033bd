// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archmagece/warden/internal/prompt"
	"github.com/archmagece/warden/internal/provider"
)

var (
	logoutHostname string
	logoutName     string
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove a stored credential and its keyring entries",
	RunE:  runLogout,
}

func init() {
	logoutCmd.Flags().StringVar(&logoutHostname, "hostname", "", "provider host to log out of")
	logoutCmd.Flags().StringVar(&logoutName, "name", "", "credential name to remove (default: the active one)")
}

func runLogout(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	host := logoutHostname
	if host == "" {
		hosts := make([]prompt.Option, 0, len(a.providers))
		for h := range a.providers {
			hosts = append(hosts, prompt.Option{Label: h, Value: h})
		}
		host, err = a.prompter.Select("Provider", "Choose a host to log out of", hosts)
		if err != nil {
			return err
		}
	}

	name := logoutName
	if name == "" {
		name = a.store.Active(host)
	}
	if name == "" {
		name = provider.DefaultCredentialName
	}

	if err := a.store.Remove(host, name); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Logged out %q on %s\n", name, host)
	return nil
}
