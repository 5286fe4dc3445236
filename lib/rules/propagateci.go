// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bugsync/bugsync/lib/gerrit"
	"github.com/bugsync/bugsync/lib/hook"
)

// PropagateCIInput is the snapshot PropagateCI decides over.
type PropagateCIInput struct {
	// Project the change belongs to, passed through to gerrit review.
	Project string

	// Change with all patch sets and approvals loaded.
	Change *gerrit.Change

	// PatchSet the comment arrived on.
	PatchSet int

	// CIValue is the flag value carried by the comment event itself.
	// Zero means the comment did not vote the flag.
	CIValue int

	// Flag is the label to propagate, e.g. Continuous-Integration.
	Flag string

	// Users whose votes count. Empty means everyone.
	Users []string
}

// PropagateCI carries a continuous-integration vote forward to the
// latest revision of a change when the revisions in between changed
// nothing but the commit message. A rebase or a code change means the
// automation will vote the new revision on its own, so the hook backs
// off; it also backs off when the latest revision already has a vote.
func PropagateCI(ctx context.Context, logger *slog.Logger, reviews Reviewer, input PropagateCIInput) (hook.Result, error) {
	if input.CIValue == 0 {
		return hook.Ignoref("comment carries no %s vote", input.Flag), nil
	}

	change := input.Change
	latest, ok := change.LatestPatchSet()
	if !ok {
		return hook.Result{}, fmt.Errorf("change %d has no patch sets", int(change.Number))
	}
	if input.PatchSet >= int(latest.Number) {
		return hook.Ignoref("patch set %d is the latest", input.PatchSet), nil
	}
	commented, ok := change.PatchSet(input.PatchSet)
	if !ok {
		return hook.Result{}, fmt.Errorf("change %d has no patch set %d", int(change.Number), input.PatchSet)
	}
	for i := range change.PatchSets {
		ps := &change.PatchSets[i]
		if int(ps.Number) <= input.PatchSet {
			continue
		}
		if ps.HasCodeChange() {
			return hook.Ignoref("patch set %d changed the code, automation re-evaluates",
				int(ps.Number)), nil
		}
	}
	if current := latest.CIValue(input.Flag, input.Users); current != 0 {
		return hook.Ignoref("patch set %d already carries %s %+d",
			int(latest.Number), input.Flag, current), nil
	}
	value := commented.CIValue(input.Flag, input.Users)
	if value == 0 {
		return hook.Ignoref("no %s vote on patch set %d from the configured reviewers",
			input.Flag, input.PatchSet), nil
	}

	logger.Info("propagating review flag", "flag", input.Flag, "value", value,
		"from", input.PatchSet, "to", int(latest.Number))
	review := gerrit.ReviewInput{
		Revision: latest.Revision,
		Project:  input.Project,
		Message: fmt.Sprintf("Propagating %s %+d from patch set %d, no code changes since.",
			input.Flag, value, input.PatchSet),
		Labels: map[string]int{input.Flag: value},
	}
	if err := reviews.Review(ctx, review); err != nil {
		return hook.Result{}, err
	}
	return hook.OKf(0, 0, "propagated %s %+d from patch set %d to patch set %d",
		input.Flag, value, input.PatchSet, int(latest.Number)), nil
}
