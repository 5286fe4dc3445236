// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

// Bugsync-check-backport runs on patchset-created events for stable
// branches. It looks the change's Change-Id up across branches and
// warns unless the change has already merged on every release branch
// newer than the patch target, so a fix never lands in an old release
// while missing from a newer one. Mainline patches are exempt.
//
// Output follows the review hook contract: a code-review score line, a
// verified score line, then the message line.
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
