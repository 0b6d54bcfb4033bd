// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	wardenerrors "github.com/archmagece/warden/internal/errors"
)

var applyProfileName string

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply a profile's Git identity to the current repository",
	RunE:  runApply,
}

func init() {
	applyCmd.Flags().StringVar(&applyProfileName, "profile", "", "profile to apply (default: resolved from the current remote)")
}

func runApply(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	if a.repoDir == "" {
		return wardenerrors.Wrap(fmt.Errorf("not inside a Git repository"), wardenerrors.ErrRepoDetectionFailed)
	}

	name, err := a.profiles.Apply(ctx, a.exec, a.repoDir, applyProfileName)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Applied profile %q\n", name)
	return nil
}
