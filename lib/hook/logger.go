// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

package hook

import (
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewLogger builds the logger for hook binaries. Logs go to stderr
// exclusively: stdout belongs to the review output contract and a
// single stray log line there would corrupt the scores. When stderr is
// a terminal (a developer running the hook by hand) it uses human
// readable text output; when piped (the review system's hook runner)
// it uses JSON for log collection.
//
// Hooks pass verbose=true for --verbose, which lowers the level to
// debug and exposes the RPC call trace.
func NewLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	options := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}
