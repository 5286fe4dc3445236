// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/bugsync/bugsync/lib/config"
	"github.com/bugsync/bugsync/lib/git"
	"github.com/bugsync/bugsync/lib/hook"
	"github.com/bugsync/bugsync/lib/rules"
	"github.com/bugsync/bugsync/lib/version"
)

const binaryName = "bugsync-check-product"

const resultTitle = "Check Product"

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

	bz, err := hook.BugzillaClient(cfg, logger)
	if err != nil {
		logger.Error("connecting to bugzilla", "error", err)
		return 1
	}

	ctx := context.Background()

	repo, err := git.FromEnv()
	if err != nil {
		logger.Error("locating the repository", "error", err)
		return 1
	}
	ids, err := hook.ResolveBugIDs(ctx, repo, params.Commit, cfg.Bugzilla.Server)
	if err != nil {
		logger.Error("extracting bug references", "commit", params.Commit, "error", err)
		return 1
	}
	if len(ids) == 0 {
		hook.Print(os.Stdout, resultTitle, []hook.Result{
			hook.Ignoref("no bug referenced"),
		})
		return 0
	}

	var results []hook.Result
	for _, id := range ids {
		bug, warning, err := hook.FetchBug(bz, id)
		if err != nil {
			logger.Error("fetching bug", "bug", id, "error", err)
			return 1
		}
		if warning != "" {
			results = append(results, hook.Warnf(0, -1, "%s", warning))
			continue
		}
		results = append(results, rules.CheckProduct(rules.ProductInput{
			Project:    params.Project,
			Branch:     params.Branch,
			MainBranch: cfg.Hooks.MainBranch,
			Tracker:    cfg.Tracker,
			Bug:        bug,
		}))
	}

	hook.Print(os.Stdout, resultTitle, results)
	return 0
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "\nusage: %s --change CHANGE --project PROJECT --branch BRANCH --commit SHA\n", binaryName)
	fmt.Fprintf(os.Stderr, "\nchecks each referenced bug's product against the patch project on stable branches\n")
	fmt.Fprintf(os.Stderr, "\nexit codes:\n")
	fmt.Fprintf(os.Stderr, "  0  decision made\n")
	fmt.Fprintf(os.Stderr, "  1  configuration or lookup failure\n")
	fmt.Fprintf(os.Stderr, "  2  unusable command line\n")
	fmt.Fprintf(os.Stderr, "\nenvironment:\n")
	fmt.Fprintf(os.Stderr, "  GIT_DIR         repository the hook runs in\n")
	fmt.Fprintf(os.Stderr, "  BUGSYNC_CONFIG  configuration file (default: $GIT_DIR/hooks/bugsync.yaml)\n")
}
