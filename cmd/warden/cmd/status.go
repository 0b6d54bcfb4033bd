// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"sort"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/archmagece/warden/internal/cliutil"
	"github.com/archmagece/warden/internal/oauthflow"
	"github.com/archmagece/warden/internal/uiadapt"
)

var statusFormat string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the credential state of every configured host",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusFormat, "format", "table", "output format: table or json")
}

func runStatus(cmd *cobra.Command, args []string) error {
	if err := cliutil.ValidateFormat(statusFormat, []string{"table", "json"}); err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	hosts := make([]string, 0, len(a.providers))
	for h := range a.providers {
		hosts = append(hosts, h)
	}
	sort.Strings(hosts)

	rows := make([][]uiadapt.StatusRow, len(hosts))
	g, _ := errgroup.WithContext(ctx)
	for i, host := range hosts {
		i, host := i, host
		g.Go(func() error {
			rows[i] = statusRowsForHost(a, host)
			return nil
		})
	}
	_ = g.Wait()

	var all []uiadapt.StatusRow
	for _, r := range rows {
		all = append(all, r...)
	}

	if cliutil.IsMachineFormat(statusFormat) {
		return cliutil.WriteJSON(cmd.OutOrStdout(), all, verbose)
	}

	uiadapt.RenderStatus(cmd.OutOrStdout(), all)
	return nil
}

func statusRowsForHost(a *app, host string) []uiadapt.StatusRow {
	names := a.store.List(host)
	if len(names) == 0 {
		return nil
	}

	active := a.store.Active(host)
	now := time.Now()

	rows := make([]uiadapt.StatusRow, 0, len(names))
	for _, name := range names {
		row := uiadapt.StatusRow{Host: host, Name: name, Active: name == active}

		bundle, err := a.store.GetToken(host, name)
		if err != nil {
			rows = append(rows, row)
			continue
		}

		row.HasToken = true
		row.Expired = bundle.Expired(now, oauthflow.RefreshSkew)
		if !bundle.ExpiresAt.IsZero() {
			row.ExpiresIn = bundle.ExpiresAt.Sub(now).Round(time.Second).String()
		}
		rows = append(rows, row)
	}
	return rows
}
