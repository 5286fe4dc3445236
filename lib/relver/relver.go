// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

// Package relver orders release-branch and milestone version names.
//
// Branch names carry their version as a trailing dash-separated token
// ("ovirt-engine-3.6" → "3.6"); milestones the same ("ovirt-3.6.2" →
// "3.6.2"). Ordering follows the release-stream convention
//
//	(X+1).Y > X.(Y+1) > X.Y > X.Y.Z
//
// so a stream head ("3.6") is newer than any of its sub-stable tags
// ("3.6.2"), and "master" is newer than everything.
package relver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// NotComparableError reports a version comparison between names whose
// version tokens are not both numeric.
type NotComparableError struct {
	A, B string
}

func (e *NotComparableError) Error() string {
	return fmt.Sprintf("versions %q and %q are not comparable", e.A, e.B)
}

// Suffix returns the version token of a branch or milestone name: the
// part after the last "-", or the whole name when it contains none.
func Suffix(name string) string {
	if i := strings.LastIndex(name, "-"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// IsNewer reports whether branch (or milestone) a is newer than b.
// "master" is newer than any other name; equal names are never newer
// than each other. Returns *NotComparableError when either version
// token is not numeric.
func IsNewer(a, b string) (bool, error) {
	if a == b {
		return false, nil
	}
	if a == "master" {
		return true, nil
	}
	if b == "master" {
		return false, nil
	}
	newer, err := numericallyNewer(Suffix(a), Suffix(b))
	if err != nil {
		return false, &NotComparableError{A: a, B: b}
	}
	return newer, nil
}

// numericallyNewer compares dotted numeric version tokens recursively:
// higher leading component wins; with equal components, the shorter
// token is newer ("3.6" > "3.6.2").
func numericallyNewer(a, b string) (bool, error) {
	aHead, aRest, _ := strings.Cut(a, ".")
	bHead, bRest, _ := strings.Cut(b, ".")

	aN, err := strconv.Atoi(aHead)
	if err != nil {
		return false, &NotComparableError{A: a, B: b}
	}
	bN, err := strconv.Atoi(bHead)
	if err != nil {
		return false, &NotComparableError{A: a, B: b}
	}

	switch {
	case aN > bN:
		return true, nil
	case bN > aN:
		return false, nil
	case aRest != "" && bRest != "":
		return numericallyNewer(aRest, bRest)
	case bRest != "":
		// a is the stream head ("3.6" vs "3.6.2").
		return true, nil
	default:
		return false, nil
	}
}

// subStablePattern matches sub-stable branch names such as
// "ovirt-engine-3.6.2": anything before the first dot, a dash, and a
// three-component version. Such branches are excluded from backport
// bookkeeping, only stream heads count.
var subStablePattern = regexp.MustCompile(`^[^.]*-\d+\.\d+\..*`)

// NewerBranches returns the branches newer than mine, skipping
// sub-stable branches and names that cannot be ordered. The result
// preserves the input order; "master" is included when present.
func NewerBranches(branches []string, mine string) []string {
	var newer []string
	for _, branch := range branches {
		if subStablePattern.MatchString(branch) {
			continue
		}
		isNewer, err := IsNewer(branch, mine)
		if err != nil {
			continue
		}
		if isNewer {
			newer = append(newer, branch)
		}
	}
	return newer
}

// majorPattern extracts the "major version" token: the first two
// dot-separated integers anywhere in the name.
var majorPattern = regexp.MustCompile(`(\d+)\.(\d+)`)

// Major is a two-component major version. The zero value is unset and
// compares newer than any concrete version: an absent milestone or a
// branch without a version token ("master") outranks every release.
type Major struct {
	X, Y int

	set bool
}

// MajorOf extracts the major version from a branch or milestone name.
// Names without a two-component numeric token ("master", "---", "")
// yield the unset Major.
func MajorOf(name string) Major {
	groups := majorPattern.FindStringSubmatch(name)
	if groups == nil {
		return Major{}
	}
	x, _ := strconv.Atoi(groups[1])
	y, _ := strconv.Atoi(groups[2])
	return Major{X: x, Y: y, set: true}
}

// IsSet reports whether a concrete version token was found.
func (m Major) IsSet() bool {
	return m.set
}

// String returns "X.Y" for a set major and "" for the unset one.
func (m Major) String() string {
	if !m.set {
		return ""
	}
	return fmt.Sprintf("%d.%d", m.X, m.Y)
}

// Compare orders majors: -1 when m is older than other, 0 when equal,
// +1 when newer. The unset major is newer than any set one and equal
// to itself.
func (m Major) Compare(other Major) int {
	switch {
	case !m.set && !other.set:
		return 0
	case !m.set:
		return 1
	case !other.set:
		return -1
	case m.X != other.X:
		return sign(m.X - other.X)
	default:
		return sign(m.Y - other.Y)
	}
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
