// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package uiadapt provides lipgloss styling for warden's human-readable
// command output: the host/credential-set table `status` prints and the
// profile listing `list` prints.
package uiadapt
