// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bugsync/bugsync/lib/gerrit"
	"github.com/bugsync/bugsync/lib/hook"
)

const ciFlag = "Continuous-Integration"

func ciPatchSet(number int, kind string, approvals ...gerrit.Approval) gerrit.PatchSet {
	return gerrit.PatchSet{
		Number:    gerrit.Number(number),
		Revision:  fmt.Sprintf("rev%d", number),
		Kind:      kind,
		Approvals: approvals,
	}
}

func ciVote(value int, by string) gerrit.Approval {
	return gerrit.Approval{
		Type:  ciFlag,
		Value: gerrit.Number(value),
		By:    gerrit.Account{Name: by},
	}
}

func TestPropagateCI(t *testing.T) {
	tests := []struct {
		name        string
		patchSets   []gerrit.PatchSet
		patchSet    int
		ciValue     int
		users       []string
		wantOutcome hook.Outcome
		wantValue   int
	}{
		{
			name: "propagates over message-only revisions",
			patchSets: []gerrit.PatchSet{
				ciPatchSet(1, "REWORK", ciVote(1, "Jenkins CI")),
				ciPatchSet(2, gerrit.KindNoCodeChange),
				ciPatchSet(3, gerrit.KindNoCodeChange),
			},
			patchSet:    1,
			ciValue:     1,
			wantOutcome: hook.OK,
			wantValue:   1,
		},
		{
			name: "negative vote propagates too",
			patchSets: []gerrit.PatchSet{
				ciPatchSet(1, "REWORK", ciVote(-1, "Jenkins CI")),
				ciPatchSet(2, gerrit.KindNoCodeChange),
			},
			patchSet:    1,
			ciValue:     -1,
			wantOutcome: hook.OK,
			wantValue:   -1,
		},
		{
			name: "comment without a vote",
			patchSets: []gerrit.PatchSet{
				ciPatchSet(1, "REWORK"),
				ciPatchSet(2, gerrit.KindNoCodeChange),
			},
			patchSet:    1,
			ciValue:     0,
			wantOutcome: hook.Ignore,
		},
		{
			name: "comment already on the latest revision",
			patchSets: []gerrit.PatchSet{
				ciPatchSet(1, "REWORK"),
				ciPatchSet(2, gerrit.KindNoCodeChange, ciVote(1, "Jenkins CI")),
			},
			patchSet:    2,
			ciValue:     1,
			wantOutcome: hook.Ignore,
		},
		{
			name: "code change in between",
			patchSets: []gerrit.PatchSet{
				ciPatchSet(1, "REWORK", ciVote(1, "Jenkins CI")),
				ciPatchSet(2, "REWORK"),
				ciPatchSet(3, gerrit.KindNoCodeChange),
			},
			patchSet:    1,
			ciValue:     1,
			wantOutcome: hook.Ignore,
		},
		{
			name: "latest revision already voted",
			patchSets: []gerrit.PatchSet{
				ciPatchSet(1, "REWORK", ciVote(1, "Jenkins CI")),
				ciPatchSet(2, gerrit.KindNoCodeChange, ciVote(-1, "Jenkins CI")),
			},
			patchSet:    1,
			ciValue:     1,
			wantOutcome: hook.Ignore,
		},
		{
			name: "vote from an unconfigured reviewer",
			patchSets: []gerrit.PatchSet{
				ciPatchSet(1, "REWORK", ciVote(1, "drive-by")),
				ciPatchSet(2, gerrit.KindNoCodeChange),
			},
			patchSet:    1,
			ciValue:     1,
			users:       []string{"Jenkins CI"},
			wantOutcome: hook.Ignore,
		},
		{
			name: "positive beats negative within one revision",
			patchSets: []gerrit.PatchSet{
				ciPatchSet(1, "REWORK", ciVote(-1, "Jenkins CI"), ciVote(1, "oVirt CI")),
				ciPatchSet(2, gerrit.KindNoCodeChange),
			},
			patchSet:    1,
			ciValue:     -1,
			wantOutcome: hook.OK,
			wantValue:   1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reviewer := &fakeReviewer{}
			change := &gerrit.Change{Number: 4711, Project: "vdsm", PatchSets: tt.patchSets}
			result, err := PropagateCI(context.Background(), discardLogger(), reviewer, PropagateCIInput{
				Project:  "vdsm",
				Change:   change,
				PatchSet: tt.patchSet,
				CIValue:  tt.ciValue,
				Flag:     ciFlag,
				Users:    tt.users,
			})
			if err != nil {
				t.Fatalf("PropagateCI: %v", err)
			}
			if result.Outcome != tt.wantOutcome {
				t.Fatalf("outcome = %s (%s), want %s", result.Outcome, result.Message, tt.wantOutcome)
			}
			if tt.wantOutcome != hook.OK {
				if len(reviewer.reviews) != 0 {
					t.Fatalf("posted %d reviews, want none", len(reviewer.reviews))
				}
				return
			}
			if len(reviewer.reviews) != 1 {
				t.Fatalf("posted %d reviews, want 1", len(reviewer.reviews))
			}
			review := reviewer.reviews[0]
			latest := tt.patchSets[len(tt.patchSets)-1]
			if review.Revision != latest.Revision {
				t.Errorf("reviewed revision %q, want %q", review.Revision, latest.Revision)
			}
			if review.Project != "vdsm" {
				t.Errorf("reviewed project %q, want vdsm", review.Project)
			}
			if got := review.Labels[ciFlag]; got != tt.wantValue {
				t.Errorf("label %s = %d, want %d", ciFlag, got, tt.wantValue)
			}
		})
	}
}

func TestPropagateCIMissingPatchSet(t *testing.T) {
	// The event names a patch set the query did not return: the
	// snapshot is inconsistent with the event, a hard failure.
	change := &gerrit.Change{
		Number:    4711,
		PatchSets: []gerrit.PatchSet{ciPatchSet(1, "REWORK"), ciPatchSet(3, "REWORK")},
	}
	_, err := PropagateCI(context.Background(), discardLogger(), &fakeReviewer{}, PropagateCIInput{
		Change:   change,
		PatchSet: 2,
		CIValue:  1,
		Flag:     ciFlag,
	})
	if err == nil {
		t.Fatal("expected an error for the missing patch set")
	}
}

func TestPropagateCIReviewError(t *testing.T) {
	change := &gerrit.Change{
		Number: 4711,
		PatchSets: []gerrit.PatchSet{
			ciPatchSet(1, "REWORK", ciVote(1, "Jenkins CI")),
			ciPatchSet(2, gerrit.KindNoCodeChange),
		},
	}
	reviewer := &fakeReviewer{err: errors.New("ssh: connection refused")}
	_, err := PropagateCI(context.Background(), discardLogger(), reviewer, PropagateCIInput{
		Project:  "vdsm",
		Change:   change,
		PatchSet: 1,
		CIValue:  1,
		Flag:     ciFlag,
	})
	if err == nil {
		t.Fatal("expected the review failure to propagate")
	}
}
