// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

// Package git provides typed access to the git CLI for the narrow set
// of repository operations the hooks need: enumerating branches and
// reading commit messages. All commands target a specific repository
// directory via the -C flag, which is automatically injected by all
// Repository methods. The review system names that directory in the
// GIT_DIR environment variable when it invokes a hook.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Repository represents a git repository at a specific directory. All
// operations target this directory via "git -C <dir>". There is no
// default directory; callers must always specify which repository
// they mean.
type Repository struct {
	dir string
}

// NewRepository returns a Repository targeting the given directory.
// The directory may be a bare repository (as under a review system's
// git root) or a working tree.
func NewRepository(dir string) *Repository {
	return &Repository{dir: dir}
}

// FromEnv returns the Repository named by the GIT_DIR environment
// variable, the contract under which the review system invokes hooks.
func FromEnv() (*Repository, error) {
	dir := os.Getenv("GIT_DIR")
	if dir == "" {
		return nil, fmt.Errorf("GIT_DIR environment variable not set; hooks must be invoked with the repository path")
	}
	return NewRepository(dir), nil
}

// Dir returns the repository directory.
func (r *Repository) Dir() string {
	return r.dir
}

// Run executes a git command targeting this repository and returns
// stdout. Stderr is captured separately and included in error messages
// on failure.
func (r *Repository) Run(ctx context.Context, args ...string) (string, error) {
	fullArgs := append([]string{"-C", r.dir}, args...)
	var stdout, stderr bytes.Buffer
	command := exec.CommandContext(ctx, "git", fullArgs...)
	command.Stdout = &stdout
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		return "", fmt.Errorf("git %s in %s: %w (stderr: %s)",
			strings.Join(args, " "), r.dir, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// Branches lists the local branch names (refs/heads) of the repository.
func (r *Repository) Branches(ctx context.Context) ([]string, error) {
	out, err := r.Run(ctx, "for-each-ref", "--format=%(refname:short)", "refs/heads")
	if err != nil {
		return nil, err
	}
	var branches []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			branches = append(branches, line)
		}
	}
	return branches, nil
}

// CommitMessage returns the full commit message (subject and body) of
// the given revision.
func (r *Repository) CommitMessage(ctx context.Context, revision string) (string, error) {
	out, err := r.Run(ctx, "log", "-1", "--format=%B", revision)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}
