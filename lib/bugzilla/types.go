// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

package bugzilla

import "strings"

// Bug statuses the hooks move bugs between. Bugzilla statuses are
// server-configurable; these are the ones the review workflow uses.
const (
	StatusNew      = "NEW"
	StatusAssigned = "ASSIGNED"
	StatusPost     = "POST"
	StatusModified = "MODIFIED"
)

// Bug is the slice of a Bugzilla bug the hooks operate on.
type Bug struct {
	ID              int
	Summary         string
	Status          string
	Resolution      string
	Classification  string
	Product         string
	TargetMilestone string
	Flags           []Flag
	ExternalBugs    []ExternalBug
}

// Flag is a bug flag. Status is "+", "-" or "?".
type Flag struct {
	Name   string
	Status string
}

// ExternalBug is one row of a bug's external-tracker table.
type ExternalBug struct {
	// ExternalID identifies the tracked object on the external system.
	// For a review system this is the change number.
	ExternalID string

	// Status mirrors the external object's state (e.g. "MERGED").
	Status string

	// Description is free text, conventionally the change subject.
	Description string

	// Branch is the branch the change targets. Bugzilla stores it in
	// the row's priority column.
	Branch string

	// TypeID and TypeDescription identify which external system the
	// row points at.
	TypeID          int
	TypeDescription string
}

// ExternalRow returns the external-tracker row whose type description
// contains typeSubstring and whose external ID matches. Returns false
// when the bug has no such row.
func (b *Bug) ExternalRow(typeSubstring, externalID string) (*ExternalBug, bool) {
	for i := range b.ExternalBugs {
		row := &b.ExternalBugs[i]
		if strings.Contains(row.TypeDescription, typeSubstring) && row.ExternalID == externalID {
			return row, true
		}
	}
	return nil, false
}

// ExternalsOfType returns the external-tracker rows whose type
// description contains typeSubstring.
func (b *Bug) ExternalsOfType(typeSubstring string) []ExternalBug {
	var rows []ExternalBug
	for _, row := range b.ExternalBugs {
		if strings.Contains(row.TypeDescription, typeSubstring) {
			rows = append(rows, row)
		}
	}
	return rows
}

// BugUpdate describes a Bug.update call. Zero fields are omitted from
// the call, leaving the server value untouched.
type BugUpdate struct {
	// Status moves the bug to a new status.
	Status string

	// Comment adds a public comment.
	Comment string
}

// ExternalUpdate describes an external-tracker row upsert. Zero fields
// are omitted so an update preserves whatever the row already holds.
type ExternalUpdate struct {
	// ExternalID identifies the row. Required.
	ExternalID string

	// TypeID is the external-tracker type of the row. Required.
	TypeID int

	// Description, Status and Branch update the corresponding columns
	// when non-empty.
	Description string
	Status      string
	Branch      string
}
