// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

// Bugsync-check-product runs on patchset-created events. On stable
// branches it verifies that each referenced bug in a configured
// classification is filed against the product matching the patch
// project; a mismatch scores the review down. Mainline patches and
// bugs in other classifications are ignored.
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
