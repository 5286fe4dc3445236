// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/bugsync/bugsync/lib/bugzilla"
	"github.com/bugsync/bugsync/lib/gerrit"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeBugUpdater records status updates and fails them on demand.
type fakeBugUpdater struct {
	err     error
	updates []bugUpdateCall
}

type bugUpdateCall struct {
	id     int
	update bugzilla.BugUpdate
}

func (f *fakeBugUpdater) UpdateBug(id int, update bugzilla.BugUpdate) error {
	f.updates = append(f.updates, bugUpdateCall{id: id, update: update})
	return f.err
}

// fakeChangeStates resolves change references from a fixed map and
// fails on references it does not know.
type fakeChangeStates struct {
	err      error
	statuses map[string]string
}

func (f *fakeChangeStates) ChangeStatus(_ context.Context, ref string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	status, ok := f.statuses[ref]
	if !ok {
		return "", fmt.Errorf("no change matches %q", ref)
	}
	return status, nil
}

// fakeExternalWriter records tracker row writes.
type fakeExternalWriter struct {
	err     error
	added   []externalAddCall
	updated []bugzilla.ExternalUpdate
}

type externalAddCall struct {
	bugID int
	row   bugzilla.ExternalUpdate
}

func (f *fakeExternalWriter) AddExternal(bugID int, row bugzilla.ExternalUpdate) error {
	f.added = append(f.added, externalAddCall{bugID: bugID, row: row})
	return f.err
}

func (f *fakeExternalWriter) UpdateExternal(row bugzilla.ExternalUpdate) error {
	f.updated = append(f.updated, row)
	return f.err
}

// fakeReviewer records posted reviews.
type fakeReviewer struct {
	err     error
	reviews []gerrit.ReviewInput
}

func (f *fakeReviewer) Review(_ context.Context, input gerrit.ReviewInput) error {
	f.reviews = append(f.reviews, input)
	return f.err
}
