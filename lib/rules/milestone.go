// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"strings"

	"github.com/bugsync/bugsync/lib/bugzilla"
	"github.com/bugsync/bugsync/lib/hook"
	"github.com/bugsync/bugsync/lib/relver"
)

// MilestoneInput is the snapshot CheckTargetMilestone decides over.
type MilestoneInput struct {
	// Branch the patch was pushed to.
	Branch string

	Bug *bugzilla.Bug
}

// CheckTargetMilestone compares the bug's target milestone against the
// patch branch by major version. Equal majors pass. A patch on a newer
// branch passes only when a flag on the bug names the milestone's
// version, meaning a clone for that release is planned. A patch on an
// older branch than the milestone always warns, and so does a bug with
// no usable milestone, since an unset milestone outranks every branch.
func CheckTargetMilestone(input MilestoneInput) hook.Result {
	bug := input.Bug
	branch := relver.MajorOf(input.Branch)
	milestone := relver.MajorOf(bug.TargetMilestone)

	switch branch.Compare(milestone) {
	case 0:
		if !milestone.IsSet() {
			return hook.OKf(0, 1, "neither branch %s nor milestone %q names a release",
				input.Branch, bug.TargetMilestone)
		}
		return hook.OKf(0, 1, "milestone %s matches branch %s", bug.TargetMilestone, input.Branch)
	case 1:
		if flag, ok := flagNaming(bug.Flags, milestone.String()); ok {
			return hook.OKf(0, 1, "flag %s%s covers milestone %s on the newer branch %s",
				flag.Name, flag.Status, bug.TargetMilestone, input.Branch)
		}
		return hook.Warnf(0, -1, "bug %d milestone %s is older than branch %s and no flag names %s",
			bug.ID, bug.TargetMilestone, input.Branch, milestone)
	default:
		if !milestone.IsSet() {
			return hook.Warnf(0, -1, "bug %d has no usable target milestone (%q)",
				bug.ID, bug.TargetMilestone)
		}
		return hook.Warnf(0, -1, "bug %d milestone %s expects a newer release than branch %s",
			bug.ID, bug.TargetMilestone, input.Branch)
	}
}

// flagNaming returns the first flag whose name contains the version
// token, any flag status.
func flagNaming(flags []bugzilla.Flag, version string) (bugzilla.Flag, bool) {
	for _, flag := range flags {
		if strings.Contains(flag.Name, version) {
			return flag, true
		}
	}
	return bugzilla.Flag{}, false
}
