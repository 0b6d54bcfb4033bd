// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/archmagece/warden/internal/cliutil"
	"github.com/archmagece/warden/internal/uiadapt"
)

var listFormat string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured profiles",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listFormat, "format", "table", "output format: table or json")
}

func runList(cmd *cobra.Command, args []string) error {
	if err := cliutil.ValidateFormat(listFormat, []string{"table", "json"}); err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	summaries := a.profiles.List()
	rows := make([]uiadapt.ProfileRow, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, uiadapt.ProfileRow{Name: s.Name, UserName: s.UserName, Email: s.UserEmail})
	}

	if cliutil.IsMachineFormat(listFormat) {
		return cliutil.WriteJSON(cmd.OutOrStdout(), rows, verbose)
	}

	uiadapt.RenderProfileList(cmd.OutOrStdout(), rows)
	return nil
}
