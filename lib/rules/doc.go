// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

// Package rules implements the decision rule behind each hook binary,
// one function per hook. A rule receives everything it reasons about
// as plain values (the bug snapshot, the gerrit change, the branch
// list) and performs its writes through a narrow interface declared in
// this package, so rules stay testable with literal structs and fakes.
//
// Rules return a hook.Result describing the review outcome. Rules that
// write remote state also return an error: a failed lookup or review
// post aborts the hook, while a failed bug status update degrades to a
// warning so the review still lands.
package rules
