// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

// Package gerrit provides a typed client for the Gerrit SSH command
// interface.
//
// Gerrit exposes queries and review posting as commands over SSH
// (conventionally port 29418). Query results arrive as JSON lines:
// one object per change, followed by a stats row; query failures
// arrive as an error row rather than a non-zero exit.
//
// The hooks run against the same host that invoked them, so the
// client mirrors the connection behavior they have always had: host
// keys are not verified unless the caller installs a callback.
//
// [Change], [PatchSet] and [Approval] carry the helpers the hooks
// share: code-change detection, per-reviewer flag collection, and CI
// value aggregation where a positive vote beats any negative one.
package gerrit
