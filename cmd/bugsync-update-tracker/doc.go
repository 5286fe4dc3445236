// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

// Bugsync-update-tracker runs on patchset-created and change-merged
// events. It records the change's current review state (status, branch
// and subject) on the external-tracker row of every bug the commit
// message references, adding the row when the change was never linked
// before. The rows are what lets the POST to MODIFIED transition
// verify that all of a bug's reviews have merged.
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
