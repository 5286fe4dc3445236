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

const binaryName = "bugsync-set-post"

const resultTitle = "Set POST"

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

	if params.IsDraft {
		hook.Print(os.Stdout, resultTitle, []hook.Result{
			hook.Ignoref("draft patch sets are not published to the tracker"),
		})
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("loading configuration", "error", err)
		return 1
	}

	bz, err := hook.AuthBugzillaClient(cfg, logger)
	if err != nil {
		logger.Error("connecting to bugzilla", "error", err)
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

	changeStatus, err := gr.ChangeStatus(ctx, params.ChangeRef())
	if err != nil {
		logger.Error("querying the change", "change", params.Change, "error", err)
		return 1
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
		results = append(results, rules.SetPost(logger, bz, rules.SetPostInput{
			ChangeStatus: changeStatus,
			ChangeURL:    params.ChangeURL,
			Bug:          bug,
			Tracker:      cfg.Tracker,
		}))
	}

	hook.Print(os.Stdout, resultTitle, results)
	return 0
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "\nusage: %s --change CHANGE --project PROJECT --branch BRANCH --commit SHA\n", binaryName)
	fmt.Fprintf(os.Stderr, "\nmoves bugs referenced by the commit message to POST when a fix goes up for review\n")
	fmt.Fprintf(os.Stderr, "\nexit codes:\n")
	fmt.Fprintf(os.Stderr, "  0  decision made\n")
	fmt.Fprintf(os.Stderr, "  1  configuration or lookup failure\n")
	fmt.Fprintf(os.Stderr, "  2  unusable command line\n")
	fmt.Fprintf(os.Stderr, "\nenvironment:\n")
	fmt.Fprintf(os.Stderr, "  GIT_DIR         repository the hook runs in\n")
	fmt.Fprintf(os.Stderr, "  BUGSYNC_CONFIG  configuration file (default: $GIT_DIR/hooks/bugsync.yaml)\n")
}
