// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/bugsync/bugsync/lib/gerrit"
	"github.com/bugsync/bugsync/lib/hook"
	"github.com/bugsync/bugsync/lib/relver"
)

// BackportInput is the snapshot CheckBackport decides over.
type BackportInput struct {
	// Branch the patch was pushed to.
	Branch string

	// MainBranch is exempt from backport bookkeeping.
	MainBranch string

	// Branches is the repository branch list.
	Branches []string

	// Related are the changes sharing this patch's change-id across
	// branches, the patch's own change included.
	Related []gerrit.Change
}

// CheckBackport verifies that a patch aimed at a release branch has
// already merged on every newer release branch, so a fix never ships
// in an old release and silently regresses in a newer one. Siblings on
// branches outside the newer set carry no weight.
func CheckBackport(logger *slog.Logger, input BackportInput) hook.Result {
	if input.Branch == input.MainBranch {
		return hook.Ignoref("backports are not tracked for %s", input.Branch)
	}
	newer := relver.NewerBranches(input.Branches, input.Branch)
	if len(newer) == 0 {
		return hook.Ignoref("no branch is newer than %s", input.Branch)
	}

	byBranch := make(map[string][]*gerrit.Change, len(input.Related))
	for i := range input.Related {
		change := &input.Related[i]
		if change.Branch == input.Branch {
			continue
		}
		if !slices.Contains(newer, change.Branch) {
			logger.Debug("sibling change on unrelated branch",
				"change", int(change.Number), "branch", change.Branch)
			continue
		}
		byBranch[change.Branch] = append(byBranch[change.Branch], change)
	}

	var problems []string
	for _, branch := range newer {
		siblings := byBranch[branch]
		switch {
		case anyMerged(siblings):
		case len(siblings) == 0:
			problems = append(problems, "not found on "+branch)
		default:
			if open := firstOpen(siblings); open != nil {
				problems = append(problems,
					fmt.Sprintf("change %d on %s is still open", int(open.Number), branch))
				continue
			}
			problems = append(problems, "only abandoned on "+branch)
		}
	}
	if len(problems) > 0 {
		return hook.Warnf(0, -1, "%s", strings.Join(problems, "; "))
	}
	return hook.OKf(0, 1, "merged on %s", strings.Join(newer, ", "))
}

func anyMerged(changes []*gerrit.Change) bool {
	for _, change := range changes {
		if change.Merged() {
			return true
		}
	}
	return false
}

func firstOpen(changes []*gerrit.Change) *gerrit.Change {
	for _, change := range changes {
		if change.Open {
			return change
		}
	}
	return nil
}
