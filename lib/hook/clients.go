// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

package hook

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/bugsync/bugsync/lib/bugzilla"
	"github.com/bugsync/bugsync/lib/config"
	"github.com/bugsync/bugsync/lib/gerrit"
)

// BugzillaClient builds the tracker client for read-only hooks. The
// configuration is validated first so omissions surface before any
// network traffic.
func BugzillaClient(cfg *config.Config, logger *slog.Logger) (*bugzilla.Client, error) {
	if err := cfg.Bugzilla.Validate(); err != nil {
		return nil, err
	}
	return bugzilla.NewClient(bugzilla.Config{
		ServerURL: cfg.Bugzilla.RPCURL(),
		User:      cfg.Bugzilla.User,
		Password:  cfg.Bugzilla.Password,
		Logger:    logger,
	})
}

// AuthBugzillaClient builds the tracker client for hooks that write
// bug state. Credentials are required and the client is logged in
// before it is handed out.
func AuthBugzillaClient(cfg *config.Config, logger *slog.Logger) (*bugzilla.Client, error) {
	if err := cfg.Bugzilla.ValidateAuth(); err != nil {
		return nil, err
	}
	client, err := bugzilla.NewClient(bugzilla.Config{
		ServerURL: cfg.Bugzilla.RPCURL(),
		User:      cfg.Bugzilla.User,
		Password:  cfg.Bugzilla.Password,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}
	if err := client.Login(); err != nil {
		return nil, err
	}
	return client, nil
}

// GerritClient builds the review-system client from configuration,
// reading the SSH key file.
func GerritClient(cfg *config.Config, logger *slog.Logger) (*gerrit.Client, error) {
	if err := cfg.Gerrit.Validate(); err != nil {
		return nil, err
	}
	key, err := os.ReadFile(cfg.Gerrit.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("reading gerrit key: %w", err)
	}
	return gerrit.NewClient(gerrit.Config{
		Host:       cfg.Gerrit.Host,
		Port:       cfg.Gerrit.Port,
		User:       cfg.Gerrit.User,
		PrivateKey: key,
		Logger:     logger,
	})
}
