// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"errors"
	"strings"
	"testing"

	"github.com/bugsync/bugsync/lib/bugzilla"
	"github.com/bugsync/bugsync/lib/config"
	"github.com/bugsync/bugsync/lib/gerrit"
	"github.com/bugsync/bugsync/lib/hook"
)

func TestSetPost(t *testing.T) {
	tracker := config.TrackerConfig{
		ExternalType:    "gerrit",
		Classifications: []string{"oVirt"},
		Products:        []string{"Red Hat Enterprise Virtualization Manager"},
	}
	changeURL := "https://gerrit.example.org/4711"

	tests := []struct {
		name         string
		changeStatus string
		bug          bugzilla.Bug
		updateErr    error
		wantOutcome  hook.Outcome
		wantVerified int
		wantUpdates  int
	}{
		{
			name:         "assigned bug moves to post",
			changeStatus: gerrit.StatusNew,
			bug:          bugzilla.Bug{ID: 4242, Status: bugzilla.StatusAssigned, Classification: "oVirt", Product: "ovirt-engine"},
			wantOutcome:  hook.OK,
			wantUpdates:  1,
		},
		{
			name:         "new bug moves to post",
			changeStatus: gerrit.StatusNew,
			bug:          bugzilla.Bug{ID: 4242, Status: bugzilla.StatusNew, Classification: "oVirt", Product: "ovirt-engine"},
			wantOutcome:  hook.OK,
			wantUpdates:  1,
		},
		{
			name:         "merged change is ignored",
			changeStatus: gerrit.StatusMerged,
			bug:          bugzilla.Bug{ID: 4242, Status: bugzilla.StatusNew, Classification: "oVirt", Product: "ovirt-engine"},
			wantOutcome:  hook.Ignore,
		},
		{
			name:         "bug already in post",
			changeStatus: gerrit.StatusNew,
			bug:          bugzilla.Bug{ID: 4242, Status: bugzilla.StatusPost, Classification: "oVirt", Product: "ovirt-engine"},
			wantOutcome:  hook.Ignore,
		},
		{
			name:         "bug already modified",
			changeStatus: gerrit.StatusNew,
			bug:          bugzilla.Bug{ID: 4242, Status: bugzilla.StatusModified, Classification: "oVirt", Product: "ovirt-engine"},
			wantOutcome:  hook.Ignore,
		},
		{
			name:         "closed bug is not advanced",
			changeStatus: gerrit.StatusNew,
			bug:          bugzilla.Bug{ID: 4242, Status: "CLOSED", Classification: "oVirt", Product: "ovirt-engine"},
			wantOutcome:  hook.Ignore,
		},
		{
			name:         "foreign classification and product ignored",
			changeStatus: gerrit.StatusNew,
			bug:          bugzilla.Bug{ID: 4242, Status: bugzilla.StatusNew, Classification: "Other", Product: "cockpit"},
			wantOutcome:  hook.Ignore,
		},
		{
			name:         "listed product accepted outside classification",
			changeStatus: gerrit.StatusNew,
			bug:          bugzilla.Bug{ID: 4242, Status: bugzilla.StatusNew, Classification: "Red Hat", Product: "Red Hat Enterprise Virtualization Manager"},
			wantOutcome:  hook.OK,
			wantUpdates:  1,
		},
		{
			name:         "failed update degrades to warning",
			changeStatus: gerrit.StatusNew,
			bug:          bugzilla.Bug{ID: 4242, Status: bugzilla.StatusAssigned, Classification: "oVirt", Product: "ovirt-engine"},
			updateErr:    errors.New("bugzilla: fault 32000: internal error"),
			wantOutcome:  hook.Warn,
			wantVerified: -1,
			wantUpdates:  1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updater := &fakeBugUpdater{err: tt.updateErr}
			result := SetPost(discardLogger(), updater, SetPostInput{
				ChangeStatus: tt.changeStatus,
				ChangeURL:    changeURL,
				Bug:          &tt.bug,
				Tracker:      tracker,
			})
			if result.Outcome != tt.wantOutcome {
				t.Fatalf("outcome = %s (%s), want %s", result.Outcome, result.Message, tt.wantOutcome)
			}
			if result.Verified != tt.wantVerified {
				t.Errorf("verified = %d, want %d", result.Verified, tt.wantVerified)
			}
			if len(updater.updates) != tt.wantUpdates {
				t.Fatalf("update calls = %d, want %d", len(updater.updates), tt.wantUpdates)
			}
			if tt.wantUpdates == 0 {
				return
			}
			call := updater.updates[0]
			if call.id != tt.bug.ID {
				t.Errorf("updated bug %d, want %d", call.id, tt.bug.ID)
			}
			if call.update.Status != bugzilla.StatusPost {
				t.Errorf("update status = %q, want %q", call.update.Status, bugzilla.StatusPost)
			}
			if !strings.Contains(call.update.Comment, changeURL) {
				t.Errorf("update comment %q does not name the change", call.update.Comment)
			}
		})
	}
}
