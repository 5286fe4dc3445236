// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

package hook

import (
	"context"

	"github.com/bugsync/bugsync/lib/bugzilla"
	"github.com/bugsync/bugsync/lib/git"
)

// ResolveBugIDs returns the bug IDs a commit refers to. A revert
// commit carries no bug references of its own, so the walk follows the
// "This reverts commit <sha>" line to the reverted commit and reports
// that commit's bugs instead, chaining through reverts of reverts. A
// visited set keeps self-referential or circular revert messages from
// walking forever: when every named commit has been seen already, the
// current message's own Bug-Url lines are the answer.
func ResolveBugIDs(ctx context.Context, repo *git.Repository, commit, serverURL string) ([]int, error) {
	visited := make(map[string]bool)
	current := commit
	for {
		visited[current] = true
		message, err := repo.CommitMessage(ctx, current)
		if err != nil {
			return nil, err
		}

		next := ""
		for _, sha := range bugzilla.RevertedCommits(message) {
			if !visited[sha] {
				next = sha
				break
			}
		}
		if next == "" {
			return bugzilla.ExtractBugIDs(message, serverURL)
		}
		current = next
	}
}
