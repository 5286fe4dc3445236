// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the hook binaries.
//
// Configuration is loaded from a single file specified by:
//   - BUGSYNC_CONFIG environment variable, or
//   - $GIT_DIR/hooks/bugsync.yaml when BUGSYNC_CONFIG is unset
//
// There are no further fallbacks or automatic discovery. This ensures
// deterministic, auditable configuration with no hidden overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the master configuration for the hooks.
type Config struct {
	// Bugzilla configures the bug tracker connection.
	Bugzilla BugzillaConfig `yaml:"bugzilla"`

	// Gerrit configures the review system connection.
	Gerrit GerritConfig `yaml:"gerrit"`

	// Tracker configures which bugs the review system tracks and how
	// its external-tracker rows are identified on the Bugzilla side.
	Tracker TrackerConfig `yaml:"tracker"`

	// Hooks configures hook-wide behavior.
	Hooks HooksConfig `yaml:"hooks"`
}

// BugzillaConfig configures the bug tracker connection.
type BugzillaConfig struct {
	// Server is the base URL of the Bugzilla instance.
	// Example: https://bugzilla.redhat.com
	Server string `yaml:"server"`

	// Endpoint is the XML-RPC endpoint path on the server.
	// Default: /xmlrpc.cgi
	Endpoint string `yaml:"endpoint"`

	// User is the account used for authenticated calls. Read-only
	// hooks work anonymously on public bugs; hooks that write bug
	// state require credentials.
	User string `yaml:"user"`

	// Password is the password for User.
	Password string `yaml:"password"`
}

// GerritConfig configures the review system connection.
type GerritConfig struct {
	// Host is the Gerrit SSH hostname.
	// Example: gerrit.ovirt.org
	Host string `yaml:"host"`

	// Port is the Gerrit SSH port.
	// Default: 29418
	Port int `yaml:"port"`

	// User is the SSH account the hooks authenticate as.
	User string `yaml:"user"`

	// KeyFile is the path to the SSH private key for User.
	// Supports ${HOME} expansion.
	KeyFile string `yaml:"key_file"`
}

// TrackerConfig describes which bugs the review system manages and how
// the review system appears in Bugzilla's external-tracker table.
type TrackerConfig struct {
	// ExternalType selects the external-tracker rows that belong to
	// this review system: a row matches when its type description
	// contains this substring.
	// Default: gerrit
	ExternalType string `yaml:"external_type"`

	// TypeID is the numeric external-tracker type used when adding
	// rows to a bug.
	// Default: 82 (the oVirt gerrit tracker)
	TypeID int `yaml:"type_id"`

	// Classifications lists the Bugzilla classifications this review
	// system manages. Bugs outside these classifications are ignored
	// by every hook.
	// Default: [oVirt]
	Classifications []string `yaml:"classifications"`

	// Products lists products whose bugs are managed even when their
	// classification is not in Classifications. The product checks
	// compare against this list too.
	Products []string `yaml:"products"`

	// RequireProduct makes external-tracker updates verify the bug's
	// product against Products before writing.
	// Default: false
	RequireProduct bool `yaml:"require_product"`
}

// HooksConfig configures hook-wide behavior.
type HooksConfig struct {
	// MainBranch is the branch that tracks unreleased development.
	// Hooks that compare release versions treat it as newer than any
	// stable branch.
	// Default: master
	MainBranch string `yaml:"main_branch"`

	// CIFlag is the review label carrying continuous-integration
	// results.
	// Default: Continuous-Integration
	CIFlag string `yaml:"ci_flag"`

	// CIUsers optionally restricts whose CI votes count. Empty means
	// any reviewer's vote counts.
	CIUsers []string `yaml:"ci_users"`
}

// Default returns the default configuration.
// These defaults are used as a base before loading the config file.
// They exist primarily to ensure all fields have sensible zero-values,
// not as a fallback - the config file is required.
func Default() *Config {
	return &Config{
		Bugzilla: BugzillaConfig{
			Endpoint: "/xmlrpc.cgi",
		},
		Gerrit: GerritConfig{
			Port: 29418,
		},
		Tracker: TrackerConfig{
			ExternalType:    "gerrit",
			TypeID:          82,
			Classifications: []string{"oVirt"},
		},
		Hooks: HooksConfig{
			MainBranch: "master",
			CIFlag:     "Continuous-Integration",
		},
	}
}

// Load loads configuration from the path named by the BUGSYNC_CONFIG
// environment variable, falling back to bugsync.yaml in the hooks
// directory of the repository named by GIT_DIR.
//
// There are no further fallbacks - if neither variable is set, this
// fails. Hooks call Load before any network I/O so that configuration
// mistakes surface immediately.
func Load() (*Config, error) {
	if path := os.Getenv("BUGSYNC_CONFIG"); path != "" {
		return LoadFile(path)
	}
	if gitDir := os.Getenv("GIT_DIR"); gitDir != "" {
		return LoadFile(filepath.Join(gitDir, "hooks", "bugsync.yaml"))
	}
	return nil, fmt.Errorf("BUGSYNC_CONFIG environment variable not set and GIT_DIR unavailable; " +
		"set BUGSYNC_CONFIG to the path of your bugsync.yaml config file")
}

// LoadFile loads configuration from a specific file path.
//
// The config file is the single source of truth. Environment variables
// do not override config values - this ensures deterministic, auditable
// configuration. The only expansion performed is ${HOME} and similar
// path variables for portability.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	// Expand ${HOME} and similar variables in paths for portability.
	cfg.expandVariables()

	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, c)
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Gerrit.KeyFile = expandVars(c.Gerrit.KeyFile, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the Bugzilla section for read-only use.
func (b *BugzillaConfig) Validate() error {
	var errs []error

	if b.Server == "" {
		errs = append(errs, fmt.Errorf("bugzilla.server is required"))
	}
	if b.Endpoint == "" {
		errs = append(errs, fmt.Errorf("bugzilla.endpoint is required"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ValidateAuth checks the Bugzilla section for hooks that write bug
// state, which additionally require credentials.
func (b *BugzillaConfig) ValidateAuth() error {
	var errs []error

	if err := b.Validate(); err != nil {
		errs = append(errs, err)
	}
	if b.User == "" {
		errs = append(errs, fmt.Errorf("bugzilla.user is required"))
	}
	if b.Password == "" {
		errs = append(errs, fmt.Errorf("bugzilla.password is required"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// RPCURL returns the full XML-RPC endpoint URL.
func (b *BugzillaConfig) RPCURL() string {
	return strings.TrimRight(b.Server, "/") + b.Endpoint
}

// Validate checks the Gerrit section.
func (g *GerritConfig) Validate() error {
	var errs []error

	if g.Host == "" {
		errs = append(errs, fmt.Errorf("gerrit.host is required"))
	}
	if g.Port <= 0 {
		errs = append(errs, fmt.Errorf("gerrit.port must be positive"))
	}
	if g.User == "" {
		errs = append(errs, fmt.Errorf("gerrit.user is required"))
	}
	if g.KeyFile == "" {
		errs = append(errs, fmt.Errorf("gerrit.key_file is required"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Validate checks the Tracker section.
func (t *TrackerConfig) Validate() error {
	var errs []error

	if t.ExternalType == "" {
		errs = append(errs, fmt.Errorf("tracker.external_type is required"))
	}
	if t.TypeID <= 0 {
		errs = append(errs, fmt.Errorf("tracker.type_id must be positive"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// CoversClassification reports whether bugs in the given classification
// are managed by this review system.
func (t *TrackerConfig) CoversClassification(classification string) bool {
	return slices.Contains(t.Classifications, classification)
}

// AcceptsBug reports whether a bug falls under this review system's
// scope: its classification is one of the configured classifications,
// or its product is explicitly listed in Products.
func (t *TrackerConfig) AcceptsBug(classification, product string) bool {
	if t.CoversClassification(classification) {
		return true
	}
	return slices.Contains(t.Products, product)
}
