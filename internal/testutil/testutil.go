// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package testutil provides fixtures shared by warden's package tests:
// throwaway git repositories for exercising the profile resolver and the
// git config key reader against a real `git` binary.
package testutil

import (
	"os/exec"
	"testing"
)

// TempGitRepo creates a temporary git repository.
// Returns the repository path. Automatically cleaned up.
func TempGitRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	cmd := exec.Command("git", "init")
	cmd.Dir = dir
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to init git repo: %v", err)
	}

	cmd = exec.Command("git", "config", "user.email", "test@test.com")
	cmd.Dir = dir
	_ = cmd.Run() // best-effort; absence doesn't affect remote/config tests

	cmd = exec.Command("git", "config", "user.name", "Test")
	cmd.Dir = dir
	_ = cmd.Run()

	return dir
}

// TempGitRepoWithRemote creates a temp git repository with "origin" set to
// remoteURL, for exercising remote URL detection and profile resolution.
func TempGitRepoWithRemote(t *testing.T, remoteURL string) string {
	t.Helper()
	dir := TempGitRepo(t)

	cmd := exec.Command("git", "remote", "add", "origin", remoteURL)
	cmd.Dir = dir
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to add remote: %v", err)
	}

	return dir
}
