// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	wardenerrors "github.com/archmagece/warden/internal/errors"
	"github.com/archmagece/warden/internal/prompt"
)

var (
	switchHostname string
	switchName     string
)

var switchCmd = &cobra.Command{
	Use:   "switch",
	Short: "Change the active credential for a host",
	RunE:  runSwitch,
}

func init() {
	switchCmd.Flags().StringVar(&switchHostname, "hostname", "", "provider host to switch credentials for")
	switchCmd.Flags().StringVar(&switchName, "name", "", "credential name to switch to")
}

// runSwitch implements spec's "toggles if exactly two exist, else prompts":
// with --name given it switches directly; otherwise with exactly two
// stored credentials it flips to the other one, and with more than two
// it asks the user to pick.
func runSwitch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	host := switchHostname
	if host == "" {
		hosts := make([]prompt.Option, 0, len(a.providers))
		for h := range a.providers {
			hosts = append(hosts, prompt.Option{Label: h, Value: h})
		}
		host, err = a.prompter.Select("Provider", "Choose a host to switch credentials for", hosts)
		if err != nil {
			return err
		}
	}

	names := a.store.List(host)

	name := switchName
	if name == "" {
		switch len(names) {
		case 0:
			return wardenerrors.Wrap(fmt.Errorf("no stored credentials for host %q", host), wardenerrors.ErrProfileUnknown)
		case 2:
			active := a.store.Active(host)
			for _, n := range names {
				if n != active {
					name = n
					break
				}
			}
		default:
			opts := make([]prompt.Option, 0, len(names))
			for _, n := range names {
				opts = append(opts, prompt.Option{Label: n, Value: n})
			}
			name, err = a.prompter.Select("Credential", fmt.Sprintf("Choose the active credential for %s", host), opts)
			if err != nil {
				return err
			}
		}
	}

	if err := a.store.SetActive(host, name); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Active credential for %s is now %q\n", host, name)
	return nil
}
