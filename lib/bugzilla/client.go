// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

package bugzilla

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/kolo/xmlrpc"
)

// Config holds configuration for creating a Bugzilla Client.
type Config struct {
	// ServerURL is the full XML-RPC endpoint URL, e.g.
	// "https://bugzilla.example.org/xmlrpc.cgi".
	ServerURL string

	// User and Password authenticate write calls via [Client.Login].
	// Read-only use of public bugs works without them.
	User     string
	Password string

	// Transport is used for all HTTP requests. Defaults to
	// http.DefaultTransport.
	Transport http.RoundTripper

	// Logger is used for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client is a typed Bugzilla XML-RPC client.
type Client struct {
	rpc      *xmlrpc.Client
	user     string
	password string
	token    string
	logger   *slog.Logger
}

// NewClient creates a Bugzilla client from the given configuration.
// No network traffic happens here; authentication is deferred to
// [Client.Login].
func NewClient(config Config) (*Client, error) {
	if config.ServerURL == "" {
		return nil, fmt.Errorf("bugzilla: ServerURL is required")
	}
	if !strings.HasPrefix(config.ServerURL, "http://") && !strings.HasPrefix(config.ServerURL, "https://") {
		return nil, fmt.Errorf("bugzilla: ServerURL must be http or https (got %q)", config.ServerURL)
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	rpc, err := xmlrpc.NewClient(config.ServerURL, config.Transport)
	if err != nil {
		return nil, fmt.Errorf("bugzilla: creating client: %w", err)
	}

	return &Client{
		rpc:      rpc,
		user:     config.User,
		password: config.Password,
		logger:   logger,
	}, nil
}

// Login authenticates the configured user. Newer servers return a token
// that subsequent calls must carry; older ones rely on the session
// cookie the transport already keeps. Both are handled.
func (client *Client) Login() error {
	params := map[string]interface{}{
		"login":    client.user,
		"password": client.password,
	}

	var result map[string]interface{}
	if err := client.call("User.login", params, &result); err != nil {
		return err
	}

	if token, ok := result["token"].(string); ok {
		client.token = token
	}
	return nil
}

// Bug fetches one bug, including its flags and external-tracker rows.
// Returns *NotFoundError when the bug is private or nonexistent.
func (client *Client) Bug(id int) (*Bug, error) {
	params := map[string]interface{}{
		"ids":          []int{id},
		"extra_fields": []string{"flags", "external_bugs"},
	}

	var result map[string]interface{}
	if err := client.call("Bug.get", params, &result); err != nil {
		if fault, ok := asFault(err); ok && (fault.Code == faultInvalidBugID || fault.Code == faultAccessDenied) {
			return nil, &NotFoundError{ID: id, FaultCode: fault.Code}
		}
		return nil, err
	}

	bugs := listValue(result, "bugs")
	if len(bugs) == 0 {
		return nil, &NotFoundError{ID: id}
	}
	first, ok := bugs[0].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("bugzilla: Bug.get returned a malformed bug for %d", id)
	}

	return bugFromMap(first), nil
}

// UpdateBug applies the non-zero fields of update to the bug.
func (client *Client) UpdateBug(id int, update BugUpdate) error {
	params := map[string]interface{}{
		"ids": []int{id},
	}
	if update.Status != "" {
		params["status"] = update.Status
	}
	if update.Comment != "" {
		params["comment"] = map[string]interface{}{"body": update.Comment}
	}

	var result map[string]interface{}
	return client.call("Bug.update", params, &result)
}

// AddExternal links a new external-tracker row to the bug. Callers
// check the bug's existing rows first; adding a row the bug already
// has is a server-side fault.
func (client *Client) AddExternal(bugID int, row ExternalUpdate) error {
	params := map[string]interface{}{
		"bug_ids":       []int{bugID},
		"external_bugs": []interface{}{externalRowMap(row)},
	}

	var result map[string]interface{}
	return client.call("ExternalBugs.add_external_bug", params, &result)
}

// UpdateExternal updates the external-tracker row identified by the
// update's type and external ID. The server matches the row on every
// bug that links it; omitted fields keep their stored values.
func (client *Client) UpdateExternal(update ExternalUpdate) error {
	var result map[string]interface{}
	return client.call("ExternalBugs.update_external_bug", externalRowMap(update), &result)
}

// externalRowMap builds the wire form of an external-tracker row,
// omitting zero fields.
func externalRowMap(update ExternalUpdate) map[string]interface{} {
	row := map[string]interface{}{
		"ext_type_id":   update.TypeID,
		"ext_bz_bug_id": update.ExternalID,
	}
	if update.Description != "" {
		row["ext_description"] = update.Description
	}
	if update.Status != "" {
		row["ext_status"] = update.Status
	}
	if update.Branch != "" {
		row["ext_priority"] = update.Branch
	}
	return row
}

// call executes one XML-RPC method, injecting the login token when the
// client holds one.
func (client *Client) call(method string, params map[string]interface{}, result interface{}) error {
	if client.token != "" {
		params["Bugzilla_token"] = client.token
	}

	client.logger.Debug("bugzilla call", "method", method)

	if err := client.rpc.Call(method, params, result); err != nil {
		return fmt.Errorf("bugzilla: %s: %w", method, err)
	}
	return nil
}

// bugFromMap converts a decoded Bug.get entry into a Bug. Unknown
// response fields are ignored; absent ones leave zero values.
func bugFromMap(m map[string]interface{}) *Bug {
	bug := &Bug{
		ID:              intValue(m, "id"),
		Summary:         stringValue(m, "summary"),
		Status:          stringValue(m, "status"),
		Resolution:      stringValue(m, "resolution"),
		Classification:  stringValue(m, "classification"),
		Product:         stringValue(m, "product"),
		TargetMilestone: stringValue(m, "target_milestone"),
	}

	for _, raw := range listValue(m, "flags") {
		flag, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		bug.Flags = append(bug.Flags, Flag{
			Name:   stringValue(flag, "name"),
			Status: stringValue(flag, "status"),
		})
	}

	for _, raw := range listValue(m, "external_bugs") {
		rowMap, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		external := ExternalBug{
			ExternalID:  stringValue(rowMap, "ext_bz_bug_id"),
			Status:      stringValue(rowMap, "ext_status"),
			Description: stringValue(rowMap, "ext_description"),
			Branch:      stringValue(rowMap, "ext_priority"),
		}
		if typeInfo, ok := rowMap["type"].(map[string]interface{}); ok {
			external.TypeID = intValue(typeInfo, "id")
			external.TypeDescription = stringValue(typeInfo, "description")
		}
		bug.ExternalBugs = append(bug.ExternalBugs, external)
	}

	return bug
}

// stringValue returns m[key] as a string. Bugzilla is loose about
// whether identifiers arrive as strings or ints, so both are accepted.
func stringValue(m map[string]interface{}, key string) string {
	switch value := m[key].(type) {
	case string:
		return value
	case int64:
		return strconv.FormatInt(value, 10)
	case int:
		return strconv.Itoa(value)
	default:
		return ""
	}
}

func intValue(m map[string]interface{}, key string) int {
	switch value := m[key].(type) {
	case int64:
		return int(value)
	case int:
		return value
	case float64:
		return int(value)
	default:
		return 0
	}
}

func listValue(m map[string]interface{}, key string) []interface{} {
	list, _ := m[key].([]interface{})
	return list
}
