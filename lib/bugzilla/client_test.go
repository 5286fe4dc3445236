// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

package bugzilla

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"testing"
)

var methodNamePattern = regexp.MustCompile(`<methodName>([^<]+)</methodName>`)

// xmlrpcHandler routes XML-RPC calls to canned responses by method name
// and records every request body it sees.
type xmlrpcHandler struct {
	responses map[string]string
	methods   []string
	bodies    []string
}

func (h *xmlrpcHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	body, _ := io.ReadAll(request.Body)
	h.bodies = append(h.bodies, string(body))

	method := ""
	if match := methodNamePattern.FindStringSubmatch(string(body)); match != nil {
		method = match[1]
	}
	h.methods = append(h.methods, method)

	response, ok := h.responses[method]
	if !ok {
		response = emptyStructResponse
	}
	writer.Header().Set("Content-Type", "text/xml")
	writer.Write([]byte(response))
}

// lastBody returns the most recent request body.
func (h *xmlrpcHandler) lastBody() string {
	if len(h.bodies) == 0 {
		return ""
	}
	return h.bodies[len(h.bodies)-1]
}

const emptyStructResponse = `<?xml version="1.0"?>
<methodResponse><params><param><value><struct>
</struct></value></param></params></methodResponse>`

const loginResponse = `<?xml version="1.0"?>
<methodResponse><params><param><value><struct>
<member><name>id</name><value><int>42</int></value></member>
<member><name>token</name><value><string>42-token</string></value></member>
</struct></value></param></params></methodResponse>`

// bugResponse carries extra response fields (priority, flag ids) on
// purpose: the decoder must tolerate fields it does not know.
const bugResponse = `<?xml version="1.0"?>
<methodResponse><params><param><value><struct>
<member><name>faults</name><value><array><data></data></array></value></member>
<member><name>bugs</name><value><array><data>
<value><struct>
  <member><name>id</name><value><int>4321</int></value></member>
  <member><name>summary</name><value><string>engine: crash on snapshot save</string></value></member>
  <member><name>status</name><value><string>POST</string></value></member>
  <member><name>resolution</name><value><string></string></value></member>
  <member><name>classification</name><value><string>oVirt</string></value></member>
  <member><name>product</name><value><string>ovirt-engine</string></value></member>
  <member><name>target_milestone</name><value><string>ovirt-3.6.2</string></value></member>
  <member><name>priority</name><value><string>high</string></value></member>
  <member><name>flags</name><value><array><data>
    <value><struct>
      <member><name>id</name><value><int>7</int></value></member>
      <member><name>name</name><value><string>ovirt-3.6.z</string></value></member>
      <member><name>status</name><value><string>+</string></value></member>
    </struct></value>
  </data></array></value></member>
  <member><name>external_bugs</name><value><array><data>
    <value><struct>
      <member><name>ext_bz_bug_id</name><value><string>43211</string></value></member>
      <member><name>ext_status</name><value><string>NEW</string></value></member>
      <member><name>ext_description</name><value><string>engine: crash on snapshot save</string></value></member>
      <member><name>ext_priority</name><value><string>master</string></value></member>
      <member><name>type</name><value><struct>
        <member><name>id</name><value><int>82</int></value></member>
        <member><name>description</name><value><string>oVirt gerrit</string></value></member>
      </struct></value></member>
    </struct></value>
  </data></array></value></member>
</struct></value>
</data></array></value></member>
</struct></value></param></params></methodResponse>`

func faultResponse(code int, message string) string {
	return `<?xml version="1.0"?>
<methodResponse><fault><value><struct>
<member><name>faultCode</name><value><int>` + strconv.Itoa(code) + `</int></value></member>
<member><name>faultString</name><value><string>` + message + `</string></value></member>
</struct></value></fault></methodResponse>`
}

// newTestClient creates a Client backed by the given handler.
func newTestClient(t *testing.T, handler *xmlrpcHandler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		ServerURL: server.URL + "/xmlrpc.cgi",
		User:      "hooks@example.org",
		Password:  "hunter2",
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client, server
}

func TestNewClient_RejectsBadURL(t *testing.T) {
	_, err := NewClient(Config{ServerURL: "bugzilla.example.org/xmlrpc.cgi"})
	if err == nil {
		t.Fatal("expected error for URL without scheme")
	}

	_, err = NewClient(Config{})
	if err == nil {
		t.Fatal("expected error for empty URL")
	}
}

func TestClient_Bug(t *testing.T) {
	handler := &xmlrpcHandler{responses: map[string]string{"Bug.get": bugResponse}}
	client, _ := newTestClient(t, handler)

	bug, err := client.Bug(4321)
	if err != nil {
		t.Fatalf("Bug: %v", err)
	}

	if bug.ID != 4321 {
		t.Errorf("ID = %d, want 4321", bug.ID)
	}
	if bug.Status != StatusPost {
		t.Errorf("Status = %q, want %q", bug.Status, StatusPost)
	}
	if bug.Classification != "oVirt" || bug.Product != "ovirt-engine" {
		t.Errorf("classification/product = %q/%q", bug.Classification, bug.Product)
	}
	if bug.TargetMilestone != "ovirt-3.6.2" {
		t.Errorf("TargetMilestone = %q, want ovirt-3.6.2", bug.TargetMilestone)
	}

	if len(bug.Flags) != 1 || bug.Flags[0].Name != "ovirt-3.6.z" || bug.Flags[0].Status != "+" {
		t.Errorf("Flags = %+v, want one ovirt-3.6.z/+", bug.Flags)
	}

	row, ok := bug.ExternalRow("gerrit", "43211")
	if !ok {
		t.Fatalf("ExternalRow(gerrit, 43211) not found in %+v", bug.ExternalBugs)
	}
	if row.Branch != "master" || row.Status != "NEW" || row.TypeID != 82 {
		t.Errorf("external row = %+v", row)
	}

	if _, ok := bug.ExternalRow("gerrit", "99999"); ok {
		t.Error("expected no row for unknown external ID")
	}

	// The request must ask for the extra fields the hooks rely on.
	if body := handler.lastBody(); !strings.Contains(body, "external_bugs") || !strings.Contains(body, "flags") {
		t.Errorf("Bug.get request missing extra_fields: %s", body)
	}
}

func TestClient_BugNotFound(t *testing.T) {
	handler := &xmlrpcHandler{responses: map[string]string{
		"Bug.get": faultResponse(101, "Bug #4321 does not exist."),
	}}
	client, _ := newTestClient(t, handler)

	_, err := client.Bug(4321)
	if err == nil {
		t.Fatal("expected error for missing bug")
	}
	if !IsNotFound(err) {
		t.Errorf("expected IsNotFound, got: %v", err)
	}

	var notFound *NotFoundError
	if !errors.As(err, &notFound) || notFound.ID != 4321 {
		t.Errorf("expected NotFoundError with ID 4321, got: %v", err)
	}
	if !strings.Contains(err.Error(), "private or nonexistent") {
		t.Errorf("error text = %q", err.Error())
	}
}

func TestClient_BugAccessDenied(t *testing.T) {
	handler := &xmlrpcHandler{responses: map[string]string{
		"Bug.get": faultResponse(102, "You are not authorized to access bug #4321."),
	}}
	client, _ := newTestClient(t, handler)

	_, err := client.Bug(4321)
	if !IsNotFound(err) {
		t.Errorf("expected IsNotFound for restricted bug, got: %v", err)
	}
}

func TestClient_BugOtherFaultPropagates(t *testing.T) {
	handler := &xmlrpcHandler{responses: map[string]string{
		"Bug.get": faultResponse(32000, "database is on fire"),
	}}
	client, _ := newTestClient(t, handler)

	_, err := client.Bug(4321)
	if err == nil {
		t.Fatal("expected error")
	}
	if IsNotFound(err) {
		t.Errorf("unexpected IsNotFound for fault 32000: %v", err)
	}
}

func TestClient_UpdateBugCarriesToken(t *testing.T) {
	handler := &xmlrpcHandler{responses: map[string]string{"User.login": loginResponse}}
	client, _ := newTestClient(t, handler)

	if err := client.Login(); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := client.UpdateBug(4321, BugUpdate{Status: StatusPost, Comment: "moved by review hook"}); err != nil {
		t.Fatalf("UpdateBug: %v", err)
	}

	body := handler.lastBody()
	for _, want := range []string{"Bug.update", "status", "POST", "comment", "moved by review hook", "Bugzilla_token", "42-token"} {
		if !strings.Contains(body, want) {
			t.Errorf("Bug.update request missing %q: %s", want, body)
		}
	}
}

func TestClient_AddExternal(t *testing.T) {
	handler := &xmlrpcHandler{}
	client, _ := newTestClient(t, handler)

	err := client.AddExternal(4321, ExternalUpdate{
		ExternalID:  "43211",
		TypeID:      82,
		Description: "engine: crash on snapshot save",
		Status:      "NEW",
		Branch:      "master",
	})
	if err != nil {
		t.Fatalf("AddExternal: %v", err)
	}

	if len(handler.methods) != 1 || handler.methods[0] != "ExternalBugs.add_external_bug" {
		t.Fatalf("methods = %v, want a single add call", handler.methods)
	}

	body := handler.lastBody()
	for _, field := range []string{"bug_ids", "external_bugs", "ext_type_id", "ext_bz_bug_id", "ext_status", "ext_priority", "ext_description"} {
		if !strings.Contains(body, field) {
			t.Errorf("add_external_bug request missing %q: %s", field, body)
		}
	}
}

func TestClient_UpdateExternal(t *testing.T) {
	handler := &xmlrpcHandler{}
	client, _ := newTestClient(t, handler)

	err := client.UpdateExternal(ExternalUpdate{ExternalID: "43211", TypeID: 82, Status: "MERGED"})
	if err != nil {
		t.Fatalf("UpdateExternal: %v", err)
	}

	if len(handler.methods) != 1 || handler.methods[0] != "ExternalBugs.update_external_bug" {
		t.Fatalf("methods = %v, want a single update call", handler.methods)
	}

	body := handler.lastBody()
	// The row identifies itself; there is no bug_ids wrapper on update.
	if strings.Contains(body, "bug_ids") {
		t.Errorf("update request carries bug_ids: %s", body)
	}
	// Unset fields stay out of the request so the server preserves them.
	if strings.Contains(body, "ext_description") || strings.Contains(body, "ext_priority") {
		t.Errorf("update request carries fields that were not set: %s", body)
	}
	for _, field := range []string{"ext_type_id", "ext_bz_bug_id", "ext_status"} {
		if !strings.Contains(body, field) {
			t.Errorf("update request missing %q: %s", field, body)
		}
	}
}
