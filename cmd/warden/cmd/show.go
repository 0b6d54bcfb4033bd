// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	wardenerrors "github.com/archmagece/warden/internal/errors"
)

var showCmd = &cobra.Command{
	Use:   "show <profile>",
	Short: "Print a profile's Git config keys and values",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	p, err := a.profiles.Profile(args[0])
	if err != nil {
		return err
	}
	if len(p) == 0 {
		return wardenerrors.Wrap(fmt.Errorf("profile %q has no keys", args[0]), wardenerrors.ErrProfileUnknown)
	}

	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", k, p[k])
	}
	return nil
}
