// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archmagece/warden/internal/oauthflow"
	"github.com/archmagece/warden/internal/prompt"
	"github.com/archmagece/warden/internal/provider"
)

var (
	loginHostname string
	loginName     string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to a provider and store the resulting token",
	RunE:  runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginHostname, "hostname", "", "provider host to log in to")
	loginCmd.Flags().StringVar(&loginName, "name", provider.DefaultCredentialName, "credential name to store the token under")
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	host := loginHostname
	if host == "" {
		hosts := make([]prompt.Option, 0, len(a.providers))
		for h := range a.providers {
			hosts = append(hosts, prompt.Option{Label: h, Value: h})
		}
		host, err = a.prompter.Select("Provider", "Choose a host to log in to", hosts)
		if err != nil {
			return err
		}
	}

	p, err := a.providerFor(host)
	if err != nil {
		return err
	}

	name := loginName
	opts := oauthflow.Options{
		Name:        name,
		Reporter:    consoleReporter{},
		OpenBrowser: openBrowser,
	}
	if forceDevice {
		opts.FlowOverride = provider.FlowDevice
	}

	var bundle provider.TokenBundle
	err = a.prompter.Spin(fmt.Sprintf("Waiting for authorization on %s...", host), func() error {
		var loginErr error
		bundle, loginErr = oauthflow.Login(ctx, p, opts)
		return loginErr
	})
	if err != nil {
		return err
	}

	if err := a.store.PutToken(host, name, bundle); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s as %q\n", host, name)
	return nil
}
