// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

package gerrit

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Change statuses as reported by gerrit query.
const (
	StatusNew       = "NEW"
	StatusMerged    = "MERGED"
	StatusAbandoned = "ABANDONED"
)

// KindNoCodeChange marks a patch set whose tree is identical to its
// predecessor's (message-only edits). Rebases count as code changes.
const KindNoCodeChange = "NO_CODE_CHANGE"

// Number tolerates Gerrit emitting numeric fields as JSON strings or
// numbers; both occur, depending on server version and field.
type Number int

func (n *Number) UnmarshalJSON(data []byte) error {
	text := strings.Trim(string(data), `"`)
	if text == "" || text == "null" {
		*n = 0
		return nil
	}
	value, err := strconv.Atoi(text)
	if err != nil {
		return fmt.Errorf("gerrit: numeric field %q: %w", text, err)
	}
	*n = Number(value)
	return nil
}

// Account is a Gerrit account reference. Appears as change owner,
// patch set uploader, approval grantor, and comment reviewer.
type Account struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Approval is one review vote on a patch set.
type Approval struct {
	Type      string  `json:"type"` // label name, e.g. "Verified"
	Value     Number  `json:"value"`
	GrantedOn int64   `json:"grantedOn"`
	By        Account `json:"by"`
}

// Comment is a change message.
type Comment struct {
	Timestamp int64   `json:"timestamp"`
	Reviewer  Account `json:"reviewer"`
	Message   string  `json:"message"`
}

// PatchSet is one revision of a change.
type PatchSet struct {
	Number    Number     `json:"number"`
	Revision  string     `json:"revision"`
	Ref       string     `json:"ref"`
	Kind      string     `json:"kind"`
	CreatedOn int64      `json:"createdOn"`
	Uploader  Account    `json:"uploader"`
	Approvals []Approval `json:"approvals"`
}

// HasCodeChange reports whether this revision changed the tree
// relative to its predecessor. Anything but a message-only edit
// counts, rebases included.
func (ps *PatchSet) HasCodeChange() bool {
	return ps.Kind != KindNoCodeChange
}

// FlagValues collects the vote per reviewer for one label. When a
// reviewer voted more than once the later vote wins. A non-empty
// byUsers restricts the result to those reviewer names.
func (ps *PatchSet) FlagValues(flagName string, byUsers []string) map[string]int {
	values := make(map[string]int)
	for _, approval := range ps.Approvals {
		if approval.Type != flagName {
			continue
		}
		if len(byUsers) > 0 && !slices.Contains(byUsers, approval.By.Name) {
			continue
		}
		values[approval.By.Name] = int(approval.Value)
	}
	return values
}

// CIValue aggregates one label's votes into a single value: any
// positive vote wins over the negatives, and within one sign the
// strongest vote counts. Zero means nobody (or nobody in byUsers)
// voted.
func (ps *PatchSet) CIValue(flagName string, byUsers []string) int {
	best, worst := 0, 0
	for _, value := range ps.FlagValues(flagName, byUsers) {
		if value > best {
			best = value
		}
		if value < worst {
			worst = value
		}
	}
	if best > 0 {
		return best
	}
	return worst
}

// ReviewerNames returns the names that voted on one label, in vote
// order.
func (ps *PatchSet) ReviewerNames(flagName string) []string {
	var names []string
	for _, approval := range ps.Approvals {
		if approval.Type == flagName {
			names = append(names, approval.By.Name)
		}
	}
	return names
}

// Change is a Gerrit change as returned by gerrit query. PatchSets,
// CurrentPatchSet, Comments and CommitMessage are populated only when
// the corresponding query option asked for them.
type Change struct {
	Project         string     `json:"project"`
	Branch          string     `json:"branch"`
	Topic           string     `json:"topic"`
	ChangeID        string     `json:"id"`
	Number          Number     `json:"number"`
	Subject         string     `json:"subject"`
	Owner           Account    `json:"owner"`
	URL             string     `json:"url"`
	CommitMessage   string     `json:"commitMessage"`
	Status          string     `json:"status"`
	Open            bool       `json:"open"`
	Comments        []Comment  `json:"comments"`
	PatchSets       []PatchSet `json:"patchSets"`
	CurrentPatchSet *PatchSet  `json:"currentPatchSet"`
}

// Merged reports whether the change has landed.
func (c *Change) Merged() bool {
	return c.Status == StatusMerged
}

// PatchSet returns the revision with the given number.
func (c *Change) PatchSet(number int) (*PatchSet, bool) {
	for i := range c.PatchSets {
		if int(c.PatchSets[i].Number) == number {
			return &c.PatchSets[i], true
		}
	}
	return nil, false
}

// LatestPatchSet returns the highest-numbered revision.
func (c *Change) LatestPatchSet() (*PatchSet, bool) {
	if len(c.PatchSets) == 0 {
		return nil, false
	}
	latest := &c.PatchSets[0]
	for i := range c.PatchSets {
		if c.PatchSets[i].Number > latest.Number {
			latest = &c.PatchSets[i]
		}
	}
	return latest, true
}
