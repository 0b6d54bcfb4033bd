// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package uiadapt

import "github.com/charmbracelet/lipgloss"

// Pre-defined styles for consistent `status`/`list` output.
var (
	// HeaderStyle is used for the column header row.
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	// ActiveStyle marks the credential set currently selected for a host.
	ActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	// ExpiredStyle marks a token past its expires_at.
	ExpiredStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	// MissingStyle marks a host with no stored token.
	MissingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	// SubtleStyle is used for less important information (hints, footers).
	SubtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)
