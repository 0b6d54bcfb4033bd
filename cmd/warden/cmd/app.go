// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"fmt"
	"os"

	wardenerrors "github.com/archmagece/warden/internal/errors"
	"github.com/archmagece/warden/internal/gitcmd"
	"github.com/archmagece/warden/internal/keyring"
	"github.com/archmagece/warden/internal/prompt"
	"github.com/archmagece/warden/internal/provider"

	"github.com/archmagece/warden/internal/credstore"
	"github.com/archmagece/warden/internal/profile"
	"github.com/archmagece/warden/internal/tomlcfg"
)

// app bundles the components every command needs, built once per
// invocation by newApp. It is the concrete wiring of spec §2's "Flow:
// Git → C7 → (C1, C2) → C6 → C4 → C5 → C7".
type app struct {
	paths     *tomlcfg.Paths
	exec      *gitcmd.Executor
	providers map[string]provider.Provider
	settings  provider.GlobalSettings
	store     *credstore.Store
	profiles  *profile.Resolver
	prompter  prompt.Prompter
	repoDir   string // "" when cwd is not inside a Git repository
}

// newApp wires up C1 (effective providers), C5/C6 (keyring + credential
// store), and C8 (profile resolver) for one command invocation.
func newApp(ctx context.Context) (*app, error) {
	paths, err := tomlcfg.NewPaths(configPath)
	if err != nil {
		return nil, wardenerrors.Wrap(err, wardenerrors.ErrConfigInvalid)
	}

	exec := gitcmd.NewExecutor()
	repoDir, _ := detectRepoRoot(ctx, exec)

	providers, settings, err := provider.LoadEffectiveProviders(ctx, paths, exec, repoDir)
	if err != nil {
		return nil, err
	}

	var kr keyring.Keyring
	if settings.OAuthOnly {
		kr = keyring.NewMemoryKeyring()
	} else {
		kr = keyring.NewOSKeyring()
	}

	store, err := credstore.New(paths.StateFile(), kr, settings.OAuthOnly)
	if err != nil {
		return nil, err
	}

	profiles, err := profile.Load(paths)
	if err != nil {
		return nil, err
	}

	var prompter prompt.Prompter = prompt.NewHuhPrompter()
	if !prompt.IsInteractive() {
		prompter = &prompt.Scripted{}
	}

	return &app{
		paths:     paths,
		exec:      exec,
		providers: providers,
		settings:  settings,
		store:     store,
		profiles:  profiles,
		prompter:  prompter,
		repoDir:   repoDir,
	}, nil
}

// detectRepoRoot returns the top-level directory of the Git repository
// containing the current working directory, or ok=false when cwd is not
// inside one (in which case the repo-local Git config layer is absent,
// per spec §4.1).
func detectRepoRoot(ctx context.Context, exec *gitcmd.Executor) (string, bool) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", false
	}
	root, err := exec.RunOutput(ctx, cwd, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", false
	}
	return root, true
}

// providerFor looks up the effective provider for host, returning
// ErrProviderUnknown when absent.
func (a *app) providerFor(host string) (provider.Provider, error) {
	p, ok := a.providers[host]
	if !ok {
		return provider.Provider{}, wardenerrors.Wrap(fmt.Errorf("no provider configured for host %q", host), wardenerrors.ErrProviderUnknown)
	}
	return p, nil
}
