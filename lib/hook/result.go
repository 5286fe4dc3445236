// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

package hook

import (
	"fmt"
	"io"
)

// Outcome classifies one rule evaluation.
type Outcome string

const (
	// Ignore means the rule does not apply to the event. Ignored
	// results carry no scores and stay out of score aggregation.
	Ignore Outcome = "IGNORE"

	// OK means the rule passed.
	OK Outcome = "OK"

	// Warn means the rule found something a reviewer should look at.
	// Warnings score the review down but never fail the hook itself:
	// the process still exits zero.
	Warn Outcome = "WARN"
)

// Result is one rule evaluation, usually for one referenced bug. A
// hook prints one message line per result and votes the minimum of the
// result scores.
type Result struct {
	Outcome    Outcome
	CodeReview int
	Verified   int

	// Message is the human explanation appended to the output line.
	Message string
}

// Ignoref builds an Ignore result with a formatted explanation.
func Ignoref(format string, args ...any) Result {
	return Result{Outcome: Ignore, Message: fmt.Sprintf(format, args...)}
}

// OKf builds an OK result carrying the given scores.
func OKf(codeReview, verified int, format string, args ...any) Result {
	return Result{
		Outcome:    OK,
		CodeReview: codeReview,
		Verified:   verified,
		Message:    fmt.Sprintf(format, args...),
	}
}

// Warnf builds a Warn result carrying the given scores.
func Warnf(codeReview, verified int, format string, args ...any) Result {
	return Result{
		Outcome:    Warn,
		CodeReview: codeReview,
		Verified:   verified,
		Message:    fmt.Sprintf(format, args...),
	}
}

// Line renders the result as a review message line. The title names
// the check, matching the style reviewers already know from the
// comment history:
//
//	* Set POST::OK, moved bug 123456 to POST
func (r Result) Line(title string) string {
	if r.Message == "" {
		return fmt.Sprintf("* %s::%s", title, r.Outcome)
	}
	return fmt.Sprintf("* %s::%s, %s", title, r.Outcome, r.Message)
}

// Combine aggregates scores across results. Each score is the minimum
// over the non-ignored results, so a single warning pulls the vote
// down no matter how many bugs passed. Ignored results do not vote: a
// hook that found nothing to check reports neutral scores rather than
// cancelling another result's positive one.
func Combine(results []Result) (codeReview, verified int) {
	voted := false
	for _, result := range results {
		if result.Outcome == Ignore {
			continue
		}
		if !voted {
			codeReview, verified = result.CodeReview, result.Verified
			voted = true
			continue
		}
		codeReview = min(codeReview, result.CodeReview)
		verified = min(verified, result.Verified)
	}
	return codeReview, verified
}

// Print writes the hook output contract: the combined code-review and
// verified scores on the first two lines, then one message line per
// result. The review system splices everything after the score lines
// into the change as a review comment.
func Print(w io.Writer, title string, results []Result) {
	codeReview, verified := Combine(results)
	fmt.Fprintf(w, "%d\n%d\n", codeReview, verified)
	for _, result := range results {
		fmt.Fprintln(w, result.Line(title))
	}
}
