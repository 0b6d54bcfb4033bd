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
	refreshHostname string
	refreshName     string
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Force a token refresh, falling back to a full login if needed",
	RunE:  runRefresh,
}

func init() {
	refreshCmd.Flags().StringVar(&refreshHostname, "hostname", "", "provider host to refresh")
	refreshCmd.Flags().StringVar(&refreshName, "name", "", "credential name to refresh (default: the active one)")
}

func runRefresh(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	if a.store.OAuthOnly() {
		fmt.Fprintln(cmd.OutOrStdout(), "refresh is a no-op in oauth_only mode (no persisted refresh tokens)")
		return nil
	}

	host := refreshHostname
	if host == "" {
		hosts := make([]prompt.Option, 0, len(a.providers))
		for h := range a.providers {
			hosts = append(hosts, prompt.Option{Label: h, Value: h})
		}
		host, err = a.prompter.Select("Provider", "Choose a host to refresh", hosts)
		if err != nil {
			return err
		}
	}

	p, err := a.providerFor(host)
	if err != nil {
		return err
	}

	name := refreshName
	if name == "" {
		name = a.store.Active(host)
	}
	if name == "" {
		name = provider.DefaultCredentialName
	}

	stale, err := a.store.GetToken(host, name)
	if err != nil {
		return err
	}

	opts := oauthflow.Options{
		Name:        name,
		Reporter:    consoleReporter{},
		OpenBrowser: openBrowser,
	}
	if forceDevice {
		opts.FlowOverride = provider.FlowDevice
	}

	if stale.RefreshToken == "" {
		return runFullLogin(cmd, a, p, host, name, opts)
	}

	bundle, err := oauthflow.Refresh(ctx, p, stale.RefreshToken, opts)
	if err != nil {
		if oauthflow.IsInvalidRefreshToken(err) {
			return runFullLogin(cmd, a, p, host, name, opts)
		}
		return err
	}

	if err := a.store.PutToken(host, name, bundle); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Refreshed %q on %s\n", name, host)
	return nil
}

func runFullLogin(cmd *cobra.Command, a *app, p provider.Provider, host, name string, opts oauthflow.Options) error {
	ctx := cmd.Context()
	var bundle provider.TokenBundle
	err := a.prompter.Spin(fmt.Sprintf("Waiting for authorization on %s...", host), func() error {
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
