// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

// Bugsync-check-bug-url runs on patchset-created events. It warns when
// a stable-branch patch carries no Bug-Url line in its commit message
// and verifies that every referenced bug actually resolves on the
// tracker. Mainline patches without references pass silently.
//
// Output follows the review hook contract: a code-review score line, a
// verified score line, then one message line per bug (or a single line
// when no bug is referenced).
//
// Exit codes:
//
//	0  decision made (including warnings)
//	1  configuration or lookup failure
//	2  unusable command line
//
// Requires GIT_DIR to point at the repository; BUGSYNC_CONFIG
// optionally names the configuration file.
package main
