// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

// Bugsync-set-modified runs on change-merged events. It moves every
// bug referenced by the merged commit from POST to MODIFIED, provided
// all of the bug's linked reviews on the same branch have merged and no
// release branch matching the bug's target milestone is still waiting
// to deliver the fix. A bug gated by an open sibling review or a
// better-matching branch produces a warning instead of an update.
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
