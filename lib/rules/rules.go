// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"context"

	"github.com/bugsync/bugsync/lib/bugzilla"
	"github.com/bugsync/bugsync/lib/gerrit"
)

// BugUpdater is the slice of the bugzilla client the status rules
// write through.
type BugUpdater interface {
	UpdateBug(id int, update bugzilla.BugUpdate) error
}

// ExternalWriter is the slice of the bugzilla client that manages
// external tracker rows.
type ExternalWriter interface {
	AddExternal(bugID int, row bugzilla.ExternalUpdate) error
	UpdateExternal(row bugzilla.ExternalUpdate) error
}

// ChangeStates resolves a gerrit change reference to its review
// status. The reference is whatever the tracker row stores, usually
// the change number.
type ChangeStates interface {
	ChangeStatus(ctx context.Context, ref string) (string, error)
}

// Reviewer is the slice of the gerrit client that posts reviews.
type Reviewer interface {
	Review(ctx context.Context, input gerrit.ReviewInput) error
}
