// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"github.com/bugsync/bugsync/lib/bugzilla"
	"github.com/bugsync/bugsync/lib/hook"
)

// BugFetch is the outcome of looking one referenced bug up: either the
// bug snapshot or the warning that stands in for it (private bug,
// tracker host unresolvable).
type BugFetch struct {
	ID      int
	Bug     *bugzilla.Bug
	Warning string
}

// BugURLInput is the snapshot CheckBugURL decides over.
type BugURLInput struct {
	// Branch the patch was pushed to. The mainline branch does not
	// require bug references.
	Branch     string
	MainBranch string

	// Bugs are the lookups for every bug the commit message
	// referenced, in order of first appearance.
	Bugs []BugFetch
}

// CheckBugURL verifies that a stable-branch patch names the bug it
// delivers and that every named bug actually resolves on the tracker.
// Mainline patches without references pass silently, feature work has
// no bug to point at yet.
func CheckBugURL(input BugURLInput) []hook.Result {
	if len(input.Bugs) == 0 {
		if input.Branch == input.MainBranch {
			return []hook.Result{
				hook.Ignoref("no bug referenced, not required on %s", input.Branch),
			}
		}
		return []hook.Result{
			hook.Warnf(0, -1, "no bug referenced, changes on %s need a Bug-Url", input.Branch),
		}
	}

	results := make([]hook.Result, 0, len(input.Bugs))
	for _, fetch := range input.Bugs {
		if fetch.Warning != "" {
			results = append(results, hook.Warnf(0, -1, "%s", fetch.Warning))
			continue
		}
		results = append(results, hook.OKf(0, 1, "bug %d: %s", fetch.ID, fetch.Bug.Summary))
	}
	return results
}
