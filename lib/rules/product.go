// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"github.com/bugsync/bugsync/lib/bugzilla"
	"github.com/bugsync/bugsync/lib/config"
	"github.com/bugsync/bugsync/lib/hook"
)

// ProductInput is the snapshot CheckProduct decides over.
type ProductInput struct {
	// Project the patch belongs to, compared against the bug product.
	Project string

	// Branch the patch was pushed to. The mainline branch is exempt,
	// development can reference bugs filed against any product there.
	Branch     string
	MainBranch string

	Tracker config.TrackerConfig
	Bug     *bugzilla.Bug
}

// CheckProduct verifies that a bug referenced from a stable branch is
// filed against the product the patch project belongs to. Only bugs in
// the configured classifications are held to this; a mismatch scores
// the review down rather than just warning the verification flag.
func CheckProduct(input ProductInput) hook.Result {
	if input.Branch == input.MainBranch {
		return hook.Ignoref("product is not checked on %s", input.Branch)
	}
	bug := input.Bug
	if !input.Tracker.CoversClassification(bug.Classification) {
		return hook.Ignoref("bug %d classification %s is not checked", bug.ID, bug.Classification)
	}
	if bug.Product != input.Project {
		return hook.Warnf(-1, 0, "bug %d is filed against %s, not %s",
			bug.ID, bug.Product, input.Project)
	}
	return hook.OKf(0, 1, "bug %d product matches project %s", bug.ID, input.Project)
}
