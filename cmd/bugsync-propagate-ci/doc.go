// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

// Bugsync-propagate-ci runs on comment-added events carrying a vote on
// the continuous-integration label. When the commented revision is not
// the latest and every revision since changed nothing but the commit
// message, the vote is posted onto the latest revision, so trivial
// edits do not lose a CI verdict. Any real code change in between
// means the automation will vote again on its own, and the hook backs
// off.
//
// The label name is configured (hooks.ci_flag) and registered as a
// command-line flag, matching how the review system passes label votes
// to comment hooks.
//
// Output follows the review hook contract: a code-review score line, a
// verified score line, then the message line.
//
// Exit codes:
//
//	0  decision made
//	1  configuration or lookup failure
//	2  unusable command line
//
// BUGSYNC_CONFIG optionally names the configuration file.
package main
