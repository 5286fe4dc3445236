// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the hook binaries.
//
// Configuration is loaded from a single file specified by either the
// BUGSYNC_CONFIG environment variable or, when that is unset, the hooks
// directory of the repository the review system invoked the hook for
// ($GIT_DIR/hooks/bugsync.yaml). There are no fallbacks beyond that
// pair, no ~/.config discovery, and no automatic file search. Hooks run
// non-interactively; their configuration must be deterministic and
// auditable.
//
// Each hook validates only the sections it uses. A missing required key
// is fatal at startup, before any network I/O.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No other
// environment variables override config values.
//
// Key exports:
//
//   - [Config] -- master struct with Bugzilla, Gerrit, Tracker, Hooks
//   - [Default] -- returns a Config with the standard defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other bugsync packages.
package config
