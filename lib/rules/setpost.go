// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"fmt"
	"log/slog"

	"github.com/bugsync/bugsync/lib/bugzilla"
	"github.com/bugsync/bugsync/lib/config"
	"github.com/bugsync/bugsync/lib/gerrit"
	"github.com/bugsync/bugsync/lib/hook"
)

// SetPostInput is the snapshot SetPost decides over.
type SetPostInput struct {
	// ChangeStatus is the review status of the change whose commit
	// message referenced the bug.
	ChangeStatus string

	// ChangeURL locates the change for the bug comment. May be empty.
	ChangeURL string

	Bug     *bugzilla.Bug
	Tracker config.TrackerConfig
}

// SetPost moves a bug that is still NEW or ASSIGNED to POST when a
// change referencing it goes up for review. Bugs outside the
// configured classifications and products are left alone, as are bugs
// that already advanced. A failed status update degrades to a warning
// so the review still gets its score lines.
func SetPost(logger *slog.Logger, bugs BugUpdater, input SetPostInput) hook.Result {
	if input.ChangeStatus != gerrit.StatusNew {
		return hook.Ignoref("change is %s, not under review", input.ChangeStatus)
	}

	bug := input.Bug
	switch bug.Status {
	case bugzilla.StatusNew, bugzilla.StatusAssigned:
	case bugzilla.StatusPost, bugzilla.StatusModified:
		return hook.Ignoref("bug %d is already in %s", bug.ID, bug.Status)
	default:
		return hook.Ignoref("bug %d is in %s, not a status this hook advances", bug.ID, bug.Status)
	}
	if !input.Tracker.AcceptsBug(bug.Classification, bug.Product) {
		return hook.Ignoref("bug %d is in %s/%s, not a tracked classification or product",
			bug.ID, bug.Classification, bug.Product)
	}

	comment := "A fix for this bug went up for review, moving to POST."
	if input.ChangeURL != "" {
		comment = fmt.Sprintf("A fix for this bug went up for review, moving to POST: %s",
			input.ChangeURL)
	}
	logger.Debug("advancing bug", "bug", bug.ID, "from", bug.Status, "to", bugzilla.StatusPost)
	update := bugzilla.BugUpdate{Status: bugzilla.StatusPost, Comment: comment}
	if err := bugs.UpdateBug(bug.ID, update); err != nil {
		return hook.Warnf(0, -1, "could not move bug %d to POST: %v", bug.ID, err)
	}
	return hook.OKf(0, 0, "moved bug %d from %s to POST", bug.ID, bug.Status)
}
