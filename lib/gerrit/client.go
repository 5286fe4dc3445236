// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

package gerrit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/crypto/ssh"
)

// defaultPort is the conventional Gerrit SSH port.
const defaultPort = 29418

// Config holds configuration for creating a Gerrit Client.
type Config struct {
	// Host is the Gerrit SSH hostname. Required.
	Host string

	// Port is the Gerrit SSH port. Defaults to 29418.
	Port int

	// User is the account to authenticate as. Required.
	User string

	// PrivateKey is the PEM-encoded SSH private key for User. Required.
	PrivateKey []byte

	// HostKeyCallback verifies the server's host key. Defaults to
	// accepting any key, which is how the hooks have always connected
	// (the server is the machine that invoked them). Install a
	// callback to pin the key.
	HostKeyCallback ssh.HostKeyCallback

	// Logger is used for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client runs gerrit commands over a single SSH connection, opened on
// first use.
type Client struct {
	host    string
	port    int
	user    string
	signer  ssh.Signer
	hostKey ssh.HostKeyCallback
	logger  *slog.Logger
	conn    *ssh.Client
}

// NewClient creates a Gerrit client from the given configuration.
// No network traffic happens here; the connection is opened by the
// first query or review.
func NewClient(config Config) (*Client, error) {
	if config.Host == "" {
		return nil, fmt.Errorf("gerrit: Host is required")
	}
	if config.User == "" {
		return nil, fmt.Errorf("gerrit: User is required")
	}
	if len(config.PrivateKey) == 0 {
		return nil, fmt.Errorf("gerrit: PrivateKey is required")
	}

	signer, err := ssh.ParsePrivateKey(config.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("gerrit: parsing private key: %w", err)
	}

	port := config.Port
	if port == 0 {
		port = defaultPort
	}

	hostKey := config.HostKeyCallback
	if hostKey == nil {
		hostKey = ssh.InsecureIgnoreHostKey()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		host:    config.Host,
		port:    port,
		user:    config.User,
		signer:  signer,
		hostKey: hostKey,
		logger:  logger,
	}, nil
}

// Close shuts the SSH connection down, if one was opened.
func (client *Client) Close() error {
	if client.conn == nil {
		return nil
	}
	err := client.conn.Close()
	client.conn = nil
	return err
}

// QueryOptions selects what a query returns beyond the bare change
// rows.
type QueryOptions struct {
	// Query is the Gerrit query, e.g. "change:I0123..".
	Query string

	// AllApprovals includes per-patch-set approvals. Implies PatchSets
	// on the server side, but set both for clarity.
	AllApprovals bool

	// PatchSets includes every revision of each change.
	PatchSets bool

	// CurrentPatchSet includes the latest revision of each change.
	CurrentPatchSet bool

	// CommitMessage includes the full commit message.
	CommitMessage bool

	// Comments includes change messages.
	Comments bool

	// Files includes the changed-file list of each patch set.
	Files bool

	// Dependencies includes depends-on and needed-by information.
	Dependencies bool

	// SubmitRecords includes the submit-rule evaluation.
	SubmitRecords bool

	// Start skips that many changes, for paging through large results.
	Start int
}

// Query runs a gerrit query and returns the matching changes. The
// stats row is dropped; an error row becomes an error.
func (client *Client) Query(ctx context.Context, options QueryOptions) ([]Change, error) {
	output, err := client.run(ctx, strings.Join(queryArgs(options), " "))
	if err != nil {
		return nil, err
	}
	return parseQueryOutput(output)
}

// QueryChange fetches the single change identified by ref: a change
// number, a Change-Id, or an id with narrowing terms appended (e.g.
// "I0123.. branch:master"). Returns *NotFoundError when the server
// knows no matching change.
func (client *Client) QueryChange(ctx context.Context, ref string, options QueryOptions) (*Change, error) {
	options.Query = "change:" + ref
	changes, err := client.Query(ctx, options)
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return nil, &NotFoundError{Ref: ref}
	}
	return &changes[0], nil
}

// ChangeStatus returns the review status of the change the reference
// resolves to. The reference is anything QueryChange accepts, usually
// a change number or a Change-Id.
func (client *Client) ChangeStatus(ctx context.Context, ref string) (string, error) {
	change, err := client.QueryChange(ctx, ref, QueryOptions{})
	if err != nil {
		return "", err
	}
	return change.Status, nil
}

// ReviewInput describes one gerrit review call. Scores are optional;
// a nil score leaves that label untouched, which is different from
// voting zero.
type ReviewInput struct {
	// Revision is the commit SHA (or "change,patchset" pair) to
	// review. Required.
	Revision string

	// Project the revision belongs to. Required.
	Project string

	// Message is the review message. Optional.
	Message string

	// CodeReview and Verified set the two standard labels.
	CodeReview *int
	Verified   *int

	// Labels sets additional labels by name, e.g. a CI flag.
	Labels map[string]int
}

// Review posts a review on a revision.
func (client *Client) Review(ctx context.Context, input ReviewInput) error {
	if input.Revision == "" {
		return fmt.Errorf("gerrit: review needs a revision")
	}
	if input.Project == "" {
		return fmt.Errorf("gerrit: review needs a project")
	}

	_, err := client.run(ctx, strings.Join(reviewArgs(input), " "))
	return err
}

// queryArgs assembles the gerrit query command line.
func queryArgs(options QueryOptions) []string {
	args := []string{
		"gerrit", "query",
		"--format=json",
		"--start=" + strconv.Itoa(options.Start),
	}
	if options.AllApprovals {
		args = append(args, "--all-approvals")
	}
	if options.PatchSets {
		args = append(args, "--patch-sets")
	}
	if options.CurrentPatchSet {
		args = append(args, "--current-patch-set")
	}
	if options.CommitMessage {
		args = append(args, "--commit-message")
	}
	if options.Comments {
		args = append(args, "--comments")
	}
	if options.Files {
		args = append(args, "--files")
	}
	if options.Dependencies {
		args = append(args, "--dependencies")
	}
	if options.SubmitRecords {
		args = append(args, "--submit-records")
	}
	return append(args, "--", quoteArg(options.Query))
}

// reviewArgs assembles the gerrit review command line.
func reviewArgs(input ReviewInput) []string {
	args := []string{
		"gerrit", "review", input.Revision,
		"--project=" + input.Project,
	}
	if input.Message != "" {
		args = append(args, "--message="+quoteArg(input.Message))
	}
	if input.CodeReview != nil {
		args = append(args, "--code-review="+strconv.Itoa(*input.CodeReview))
	}
	if input.Verified != nil {
		args = append(args, "--verified="+strconv.Itoa(*input.Verified))
	}

	labels := make([]string, 0, len(input.Labels))
	for name := range input.Labels {
		labels = append(labels, name)
	}
	sort.Strings(labels)
	for _, name := range labels {
		args = append(args, "--label", name+"="+strconv.Itoa(input.Labels[name]))
	}
	return args
}

// quoteArg double-quotes an argument for Gerrit's command parser,
// which understands quoted arguments with backslash escapes.
func quoteArg(arg string) string {
	escaped := strings.ReplaceAll(arg, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return `"` + escaped + `"`
}

// parseQueryOutput decodes gerrit query JSON lines.
func parseQueryOutput(output []byte) ([]Change, error) {
	var changes []Change
	for _, line := range bytes.Split(output, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		var row struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(line, &row); err != nil {
			return nil, fmt.Errorf("gerrit: decoding query output: %w", err)
		}
		switch row.Type {
		case "stats":
			continue
		case "error":
			return nil, fmt.Errorf("gerrit: query failed: %s", row.Message)
		}

		var change Change
		if err := json.Unmarshal(line, &change); err != nil {
			return nil, fmt.Errorf("gerrit: decoding change: %w", err)
		}
		changes = append(changes, change)
	}
	return changes, nil
}

// run executes one gerrit command over SSH and returns its stdout.
func (client *Client) run(ctx context.Context, command string) ([]byte, error) {
	if err := client.connect(ctx); err != nil {
		return nil, err
	}

	session, err := client.conn.NewSession()
	if err != nil {
		return nil, fmt.Errorf("gerrit: opening session: %w", err)
	}
	defer session.Close()

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr

	client.logger.Debug("gerrit command", "command", command)

	done := make(chan error, 1)
	go func() { done <- session.Run(command) }()

	select {
	case err = <-done:
	case <-ctx.Done():
		session.Close()
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, fmt.Errorf("gerrit: %s: %w (stderr: %s)", command, err, strings.TrimSpace(stderr.String()))
	}

	return stdout.Bytes(), nil
}

// connect opens the SSH connection if it is not up yet.
func (client *Client) connect(ctx context.Context) error {
	if client.conn != nil {
		return nil
	}

	address := net.JoinHostPort(client.host, strconv.Itoa(client.port))

	var dialer net.Dialer
	tcpConn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return fmt.Errorf("gerrit: dialing %s: %w", address, err)
	}

	sshConfig := &ssh.ClientConfig{
		User:            client.user,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(client.signer)},
		HostKeyCallback: client.hostKey,
	}

	sshConn, channels, requests, err := ssh.NewClientConn(tcpConn, address, sshConfig)
	if err != nil {
		tcpConn.Close()
		return fmt.Errorf("gerrit: ssh handshake with %s: %w", address, err)
	}

	client.conn = ssh.NewClient(sshConn, channels, requests)
	return nil
}
