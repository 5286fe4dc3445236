// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

// Bugsync-check-target-milestone runs on patchset-created events. It
// compares each referenced bug's target milestone against the patch
// branch by major version: equal versions pass, a patch on a newer
// branch passes only when a flag on the bug names the milestone's
// release (a clone is planned), and a patch on an older branch than
// the milestone always warns.
//
// Output follows the review hook contract: a code-review score line, a
// verified score line, then one message line per bug.
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
