// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package cliutil provides CLI output helpers shared by warden's commands:
// output-format validation and JSON encoding for --format=json.
package cliutil
