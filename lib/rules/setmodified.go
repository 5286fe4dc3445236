// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bugsync/bugsync/lib/bugzilla"
	"github.com/bugsync/bugsync/lib/gerrit"
	"github.com/bugsync/bugsync/lib/hook"
	"github.com/bugsync/bugsync/lib/relver"
)

// SetModifiedInput is the snapshot SetModified decides over.
type SetModifiedInput struct {
	// ChangeStatus is the review status of the change that triggered
	// the hook. Only merged changes advance bugs.
	ChangeStatus string

	// ChangeURL locates the change for the bug comment. May be empty.
	ChangeURL string

	// Branch the change merged on.
	Branch string

	// Branches is the repository branch list, used to spot a branch
	// matching the bug's milestone better than this one.
	Branches []string

	// ExternalType selects the bug's tracker rows that point back at
	// the review system (substring match on the type description).
	ExternalType string

	Bug *bugzilla.Bug
}

// SetModified moves a bug from POST to MODIFIED once a change merges,
// provided every linked review on the same branch has merged too and
// no better-matching release branch is waiting to deliver the fix. The
// status write itself failing degrades to a warning; a failed lookup
// of a linked change aborts the hook instead, since without it the
// rule cannot decide anything.
func SetModified(ctx context.Context, logger *slog.Logger, bugs BugUpdater, changes ChangeStates, input SetModifiedInput) (hook.Result, error) {
	if input.ChangeStatus != gerrit.StatusMerged {
		return hook.Ignoref("change is %s, not merged", input.ChangeStatus), nil
	}

	bug := input.Bug
	if bug.Status == bugzilla.StatusModified {
		return hook.Ignoref("bug %d is already in MODIFIED", bug.ID), nil
	}
	if bug.Status != bugzilla.StatusPost {
		return hook.Ignoref("bug %d is in %s, only POST advances on merge", bug.ID, bug.Status), nil
	}

	// Every linked review on this branch has to land before the bug
	// can leave POST.
	for _, ext := range bug.ExternalsOfType(input.ExternalType) {
		if ext.Branch != input.Branch {
			continue
		}
		status, err := changes.ChangeStatus(ctx, ext.ExternalID)
		if err != nil {
			return hook.Result{}, fmt.Errorf("resolving linked change %s: %w", ext.ExternalID, err)
		}
		logger.Debug("linked change", "change", ext.ExternalID, "status", status)
		if status != gerrit.StatusMerged {
			return hook.Warnf(0, -1, "change %s on %s is still %s, keeping bug %d in POST",
				ext.ExternalID, input.Branch, status, bug.ID), nil
		}
	}

	// A branch carrying the milestone's own version token delivers the
	// fix for that milestone; merging elsewhere must not close the bug.
	milestoneSuffix := relver.Suffix(bug.TargetMilestone)
	if milestoneSuffix != "" && milestoneSuffix != relver.Suffix(input.Branch) {
		for _, name := range input.Branches {
			if strings.Contains(name, milestoneSuffix) {
				return hook.Warnf(0, -1, "branch %s matches milestone %s better than %s, leaving bug %d to it",
					name, bug.TargetMilestone, input.Branch, bug.ID), nil
			}
		}
	}

	comment := fmt.Sprintf("The fix merged on %s, moving to MODIFIED.", input.Branch)
	if input.ChangeURL != "" {
		comment = fmt.Sprintf("Change %s merged on %s, moving to MODIFIED.",
			input.ChangeURL, input.Branch)
	}
	logger.Debug("advancing bug", "bug", bug.ID, "from", bug.Status, "to", bugzilla.StatusModified)
	update := bugzilla.BugUpdate{Status: bugzilla.StatusModified, Comment: comment}
	if err := bugs.UpdateBug(bug.ID, update); err != nil {
		return hook.Warnf(0, -1, "could not move bug %d to MODIFIED: %v", bug.ID, err), nil
	}
	return hook.OKf(0, 0, "moved bug %d to MODIFIED", bug.ID), nil
}
