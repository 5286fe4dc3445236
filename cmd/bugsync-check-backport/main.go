// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/bugsync/bugsync/lib/config"
	"github.com/bugsync/bugsync/lib/gerrit"
	"github.com/bugsync/bugsync/lib/git"
	"github.com/bugsync/bugsync/lib/hook"
	"github.com/bugsync/bugsync/lib/rules"
	"github.com/bugsync/bugsync/lib/version"
)

const binaryName = "bugsync-check-backport"

const resultTitle = "Check Backport"

func main() {
	os.Exit(run())
}

func run() int {
	// Handle --version before anything else.
	for _, argument := range os.Args[1:] {
		if argument == "--version" {
			version.Print(binaryName)
			return 0
		}
	}

	params, err := hook.ParseParams(binaryName, os.Args[1:], "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		printUsage()
		return 2
	}
	logger := hook.NewLogger(params.Verbose)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("loading configuration", "error", err)
		return 1
	}

	gr, err := hook.GerritClient(cfg, logger)
	if err != nil {
		logger.Error("building the gerrit client", "error", err)
		return 1
	}
	defer gr.Close()

	ctx := context.Background()

	repo, err := git.FromEnv()
	if err != nil {
		logger.Error("locating the repository", "error", err)
		return 1
	}
	branches, err := repo.Branches(ctx)
	if err != nil {
		logger.Error("listing branches", "error", err)
		return 1
	}

	related, err := gr.Query(ctx, gerrit.QueryOptions{Query: "change:" + params.Change})
	if err != nil {
		logger.Error("querying sibling changes", "change", params.Change, "error", err)
		return 1
	}

	result := rules.CheckBackport(logger, rules.BackportInput{
		Branch:     params.Branch,
		MainBranch: cfg.Hooks.MainBranch,
		Branches:   branches,
		Related:    related,
	})

	hook.Print(os.Stdout, resultTitle, []hook.Result{result})
	return 0
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "\nusage: %s --change CHANGE --project PROJECT --branch BRANCH --commit SHA\n", binaryName)
	fmt.Fprintf(os.Stderr, "\nchecks that the change has merged on every branch newer than the patch target\n")
	fmt.Fprintf(os.Stderr, "\nexit codes:\n")
	fmt.Fprintf(os.Stderr, "  0  decision made\n")
	fmt.Fprintf(os.Stderr, "  1  configuration or lookup failure\n")
	fmt.Fprintf(os.Stderr, "  2  unusable command line\n")
	fmt.Fprintf(os.Stderr, "\nenvironment:\n")
	fmt.Fprintf(os.Stderr, "  GIT_DIR         repository the hook runs in\n")
	fmt.Fprintf(os.Stderr, "  BUGSYNC_CONFIG  configuration file (default: $GIT_DIR/hooks/bugsync.yaml)\n")
}
