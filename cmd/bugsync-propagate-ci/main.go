// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/bugsync/bugsync/lib/config"
	"github.com/bugsync/bugsync/lib/gerrit"
	"github.com/bugsync/bugsync/lib/hook"
	"github.com/bugsync/bugsync/lib/rules"
	"github.com/bugsync/bugsync/lib/version"
)

const binaryName = "bugsync-propagate-ci"

const resultTitle = "Propagate Review Value"

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

	// The CI label's flag name is configuration, so the config loads
	// before the command line parses.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	params, err := hook.ParseParams(binaryName, os.Args[1:], cfg.Hooks.CIFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		printUsage(cfg.Hooks.CIFlag)
		return 2
	}
	logger := hook.NewLogger(params.Verbose)

	gr, err := hook.GerritClient(cfg, logger)
	if err != nil {
		logger.Error("building the gerrit client", "error", err)
		return 1
	}
	defer gr.Close()

	ctx := context.Background()

	change, err := gr.QueryChange(ctx, params.ChangeRef(), gerrit.QueryOptions{
		PatchSets:    true,
		AllApprovals: true,
	})
	if err != nil {
		logger.Error("querying the change", "change", params.Change, "error", err)
		return 1
	}

	// comment-added events identify the revision by SHA; older event
	// formats pass the patch set number directly.
	patchSet := params.PatchSet
	if patchSet == 0 {
		for i := range change.PatchSets {
			if change.PatchSets[i].Revision == params.Commit {
				patchSet = int(change.PatchSets[i].Number)
				break
			}
		}
	}
	if patchSet == 0 {
		logger.Error("commented revision is not on the change",
			"change", params.Change, "commit", params.Commit)
		return 1
	}

	result, err := rules.PropagateCI(ctx, logger, gr, rules.PropagateCIInput{
		Project:  params.Project,
		Change:   change,
		PatchSet: patchSet,
		CIValue:  params.CIValue,
		Flag:     cfg.Hooks.CIFlag,
		Users:    cfg.Hooks.CIUsers,
	})
	if err != nil {
		logger.Error("propagating the vote", "change", params.Change, "error", err)
		return 1
	}

	hook.Print(os.Stdout, resultTitle, []hook.Result{result})
	return 0
}

func printUsage(ciFlag string) {
	fmt.Fprintf(os.Stderr, "\nusage: %s --change CHANGE --project PROJECT --branch BRANCH --commit SHA [--%s VALUE]\n", binaryName, ciFlag)
	fmt.Fprintf(os.Stderr, "\ncarries a %s vote forward over message-only revisions\n", ciFlag)
	fmt.Fprintf(os.Stderr, "\nexit codes:\n")
	fmt.Fprintf(os.Stderr, "  0  decision made\n")
	fmt.Fprintf(os.Stderr, "  1  configuration or lookup failure\n")
	fmt.Fprintf(os.Stderr, "  2  unusable command line\n")
	fmt.Fprintf(os.Stderr, "\nenvironment:\n")
	fmt.Fprintf(os.Stderr, "  BUGSYNC_CONFIG  configuration file (default: $GIT_DIR/hooks/bugsync.yaml)\n")
}
