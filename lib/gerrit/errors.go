// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

package gerrit

import (
	"errors"
	"fmt"
)

// NotFoundError reports a query for a single change that matched
// nothing.
type NotFoundError struct {
	// Ref is the change number or Change-Id that was looked up.
	Ref string
}

func (err *NotFoundError) Error() string {
	return fmt.Sprintf("gerrit: change %s not found", err.Ref)
}

// IsNotFound reports whether err means the change does not exist.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
