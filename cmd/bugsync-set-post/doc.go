// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

// Bugsync-set-post runs on patchset-created events. It extracts the
// Bug-Url references from the commit message and moves every referenced
// bug that is still NEW or ASSIGNED to POST, leaving a comment pointing
// at the change. Bugs outside the configured classifications and
// products, bugs that already advanced, and draft patch sets are
// ignored.
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
