// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

// Package bugzilla provides a typed Go client for the Bugzilla XML-RPC
// API.
//
// The client authenticates via User.login (cookie plus token, depending
// on server age) and keeps every call shape the hooks need: fetching a
// bug with its flags and external-tracker rows, updating bug status,
// and upserting external-tracker rows.
//
// XML-RPC responses are decoded into generic maps and converted to the
// typed structs here; Bugzilla adds response fields freely between
// releases and the wire layer must not break when it does.
//
// The package also owns Bug-Url commit-message extraction ([ExtractBugIDs]),
// since the accepted URL shapes are a Bugzilla concern.
package bugzilla
