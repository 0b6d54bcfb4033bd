// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cliutil_test

import (
	"testing"

	"github.com/archmagece/warden/internal/cliutil"
)

func TestValidateFormat(t *testing.T) {
	allowed := cliutil.CoreFormats

	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{"valid format default", "default", false},
		{"valid format json", "json", false},
		{"valid format compact", "compact", false},
		{"invalid format xml", "xml", true},
		{"empty format", "", true},
		{"invalid format with space", " json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cliutil.ValidateFormat(tt.format, allowed)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsMachineFormat(t *testing.T) {
	tests := []struct {
		name   string
		format string
		want   bool
	}{
		{"json is machine format", "json", true},
		{"uppercase JSON is machine format", "JSON", true},
		{"default is not machine format", "default", false},
		{"compact is not machine format", "compact", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cliutil.IsMachineFormat(tt.format); got != tt.want {
				t.Errorf("IsMachineFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}
