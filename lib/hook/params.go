// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

package hook

import (
	"errors"
	"io"

	"github.com/spf13/pflag"
)

// Params holds the event attributes the review system passes on a
// hook's command line.
type Params struct {
	// Change is the Change-Id of the change the event belongs to.
	Change string

	// ChangeURL is the web URL of the change.
	ChangeURL string

	// Project is the repository the change targets.
	Project string

	// Branch is the branch the change targets.
	Branch string

	// Commit is the SHA of the patchset the event refers to.
	Commit string

	// PatchSet is the patchset number, when the event carries one.
	PatchSet int

	// Topic is the change topic, when set.
	Topic string

	// Author is the account that wrote a comment. Uploader and
	// Submitter are its patchset-created and change-merged
	// counterparts.
	Author    string
	Uploader  string
	Submitter string

	// Comment is the comment text of a comment event.
	Comment string

	// IsDraft reports whether the patchset is a draft. The review
	// system passes the value as a literal "true" or "false" word.
	IsDraft bool

	// CIValue is the vote on the continuous integration label carried
	// by a comment event. CIVoted distinguishes an explicit 0 vote
	// from an event that did not touch the label at all.
	CIValue int
	CIVoted bool

	// Verbose lowers the log level to debug.
	Verbose bool
}

// ChangeRef returns a query reference that pins the event's change to
// its project and branch. Cherry-picks share the Change-Id across
// branches, so the bare id can match a sibling on another branch.
func (p *Params) ChangeRef() string {
	return p.Change + " project:" + p.Project + " branch:" + p.Branch
}

// ParseParams parses a hook command line. The review system passes
// event attributes as long flags and adds new ones across releases, so
// unknown flags are skipped rather than rejected. When ciFlag is
// non-empty the named review label is registered as an integer flag:
// comment events pass label votes as --<Label> <value>.
func ParseParams(name string, args []string, ciFlag string) (*Params, error) {
	var params Params
	var isDraft string

	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.ParseErrorsWhitelist.UnknownFlags = true

	flagSet.StringVar(&params.Change, "change", "", "Change-Id of the change")
	flagSet.StringVar(&params.ChangeURL, "change-url", "", "web URL of the change")
	flagSet.StringVar(&params.Project, "project", "", "repository of the change")
	flagSet.StringVar(&params.Branch, "branch", "", "target branch of the change")
	flagSet.StringVar(&params.Commit, "commit", "", "SHA of the patchset")
	flagSet.IntVar(&params.PatchSet, "patchset", 0, "patchset number")
	flagSet.StringVar(&params.Topic, "topic", "", "change topic")
	flagSet.StringVar(&params.Author, "author", "", "account that wrote the comment")
	flagSet.StringVar(&params.Uploader, "uploader", "", "account that uploaded the patchset")
	flagSet.StringVar(&params.Submitter, "submitter", "", "account that submitted the change")
	flagSet.StringVar(&params.Comment, "comment", "", "comment text")
	flagSet.StringVar(&isDraft, "is-draft", "", "whether the patchset is a draft (true or false)")
	flagSet.BoolVarP(&params.Verbose, "verbose", "v", false, "enable debug logging")
	if ciFlag != "" {
		flagSet.IntVar(&params.CIValue, ciFlag, 0, "vote on the continuous integration label")
	}

	if err := flagSet.Parse(args); err != nil {
		return nil, err
	}
	params.IsDraft = isDraft == "true"
	if ciFlag != "" {
		params.CIVoted = flagSet.Changed(ciFlag)
	}

	var problems []error
	if params.Change == "" {
		problems = append(problems, errors.New("--change is required"))
	}
	if params.Project == "" {
		problems = append(problems, errors.New("--project is required"))
	}
	if params.Branch == "" {
		problems = append(problems, errors.New("--branch is required"))
	}
	if params.Commit == "" {
		problems = append(problems, errors.New("--commit is required"))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	return &params, nil
}
