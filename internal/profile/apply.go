// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package profile

import (
	"context"
	"fmt"
	"sort"

	wardenerrors "github.com/archmagece/warden/internal/errors"
	"github.com/archmagece/warden/internal/gitcmd"
)

// Apply implements spec §4.8's `apply(explicit_name?)`: if explicitName is
// non-empty, that profile is applied directly; otherwise the current
// repository's remote is discovered and matched against the rule set.
func (r *Resolver) Apply(ctx context.Context, exec *gitcmd.Executor, repoDir, explicitName string) (string, error) {
	name := explicitName
	if name == "" {
		remote, err := discoverRemote(ctx, exec, repoDir)
		if err != nil {
			return "", err
		}
		name, err = r.resolveByRemote(remote)
		if err != nil {
			return "", err
		}
	}

	p, err := r.Profile(name)
	if err != nil {
		return "", err
	}
	if err := applyProfile(ctx, exec, repoDir, p); err != nil {
		return "", err
	}
	return name, nil
}

// discoverRemote returns the current repository's "origin" remote URL,
// falling back to the first remote in `git remote`'s (alphabetical)
// output when origin is absent (spec §4.8).
func discoverRemote(ctx context.Context, exec *gitcmd.Executor, repoDir string) (string, error) {
	names, err := exec.RunLines(ctx, repoDir, "remote")
	if err != nil {
		return "", wardenerrors.Wrap(err, wardenerrors.ErrRepoDetectionFailed)
	}
	if len(names) == 0 {
		return "", wardenerrors.Wrap(fmt.Errorf("repository %s has no remotes", repoDir), wardenerrors.ErrRepoDetectionFailed)
	}

	sort.Strings(names)
	name := names[0]
	for _, n := range names {
		if n == "origin" {
			name = "origin"
			break
		}
	}

	url, err := exec.RunOutput(ctx, repoDir, "remote", "get-url", name)
	if err != nil {
		return "", wardenerrors.Wrap(err, wardenerrors.ErrRepoDetectionFailed)
	}
	return url, nil
}

// applyProfile runs "git config --local <key> <value>" for every pair in
// p. Keys previously set outside p are left untouched (spec §4.8).
func applyProfile(ctx context.Context, exec *gitcmd.Executor, repoDir string, p Profile) error {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		result, err := exec.Run(ctx, repoDir, "config", "--local", key, p[key])
		if err != nil {
			return wardenerrors.Wrap(err, wardenerrors.ErrGitConfigWriteFailed)
		}
		if result.ExitCode != 0 {
			return wardenerrors.Wrap(&gitcmd.GitError{
				Command:  "git config --local " + key,
				ExitCode: result.ExitCode,
				Stderr:   result.Stderr,
			}, wardenerrors.ErrGitConfigWriteFailed)
		}
	}
	return nil
}
