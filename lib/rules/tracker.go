// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/bugsync/bugsync/lib/bugzilla"
	"github.com/bugsync/bugsync/lib/config"
	"github.com/bugsync/bugsync/lib/hook"
)

// TrackerInput is the snapshot UpdateTracker decides over.
type TrackerInput struct {
	Bug *bugzilla.Bug

	// ExternalID is the change identifier as the tracker row stores
	// it, usually the change number.
	ExternalID string

	// Status, Branch and Description are the row fields this event
	// carries. Empty fields keep whatever the existing row holds.
	Status      string
	Branch      string
	Description string

	Tracker config.TrackerConfig
}

// UpdateTracker records the change's current review state on the bug's
// external-tracker row, adding the row when the change was never
// linked before. Write failures propagate, the tracker rejecting a row
// is not something a review score can express.
func UpdateTracker(logger *slog.Logger, externals ExternalWriter, input TrackerInput) (hook.Result, error) {
	bug := input.Bug
	if input.Tracker.RequireProduct && !slices.Contains(input.Tracker.Products, bug.Product) {
		return hook.Ignoref("bug %d is in product %s, tracker rows are only managed for %s",
			bug.ID, bug.Product, strings.Join(input.Tracker.Products, ", ")), nil
	}

	row := bugzilla.ExternalUpdate{
		ExternalID:  input.ExternalID,
		TypeID:      input.Tracker.TypeID,
		Status:      input.Status,
		Branch:      input.Branch,
		Description: input.Description,
	}

	existing, ok := bug.ExternalRow(input.Tracker.ExternalType, input.ExternalID)
	if !ok {
		logger.Debug("adding tracker row", "bug", bug.ID, "change", input.ExternalID)
		if err := externals.AddExternal(bug.ID, row); err != nil {
			return hook.Result{}, err
		}
		return hook.OKf(0, 0, "linked change %s to bug %d", input.ExternalID, bug.ID), nil
	}

	// Fields the event does not carry keep their current value.
	if row.TypeID == 0 {
		row.TypeID = existing.TypeID
	}
	if row.Status == "" {
		row.Status = existing.Status
	}
	if row.Branch == "" {
		row.Branch = existing.Branch
	}
	if row.Description == "" {
		row.Description = existing.Description
	}
	logger.Debug("updating tracker row", "bug", bug.ID, "change", input.ExternalID)
	if err := externals.UpdateExternal(row); err != nil {
		return hook.Result{}, err
	}
	return hook.OKf(0, 0, "updated change %s on bug %d (%s on %s)",
		input.ExternalID, bug.ID, row.Status, row.Branch), nil
}
