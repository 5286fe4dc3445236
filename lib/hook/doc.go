// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

// Package hook carries the plumbing every hook binary shares: event
// argument parsing, the result/output contract, the stderr logger, and
// commit-to-bug resolution.
//
// A hook is a single-shot process started by the review system. Its
// stdout is the review contract (two score lines, then message lines);
// everything a human or log collector should see goes to stderr.
// Results combine per bug: a hook evaluates its rule once per
// referenced bug and prints one message line for each.
package hook
