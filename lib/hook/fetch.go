// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

package hook

import (
	"fmt"

	"github.com/bugsync/bugsync/lib/bugzilla"
)

// FetchBug fetches one bug and classifies the failures hooks tolerate.
// A non-empty warning means the rule cannot run for this bug but the
// review should proceed: the bug is private or nonexistent, or the
// tracker's hostname did not resolve (review nodes with broken
// resolvers must not block merges). Anything else comes back as a hard
// error.
func FetchBug(client *bugzilla.Client, id int) (bug *bugzilla.Bug, warning string, err error) {
	bug, err = client.Bug(id)
	switch {
	case err == nil:
		return bug, "", nil
	case bugzilla.IsNotFound(err):
		return nil, fmt.Sprintf("bug %d is private or nonexistent", id), nil
	case bugzilla.IsResolutionError(err):
		return nil, fmt.Sprintf("cannot resolve the bug tracker host: %v", err), nil
	default:
		return nil, "", err
	}
}
