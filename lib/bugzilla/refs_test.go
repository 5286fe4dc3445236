// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

package bugzilla

import (
	"reflect"
	"testing"
)

const testServer = "https://bugzilla.example.org"

func TestExtractBugIDs(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    []int
	}{
		{
			name: "plain id form",
			message: "core: fix snapshot crash\n\n" +
				"Bug-Url: https://bugzilla.example.org/4321\n" +
				"Change-Id: I0123456789\n",
			want: []int{4321},
		},
		{
			name: "show_bug form over http",
			message: "core: fix snapshot crash\n\n" +
				"Bug-Url: http://bugzilla.example.org/show_bug.cgi?id=4321\n",
			want: []int{4321},
		},
		{
			name: "multiple bugs keep order and dedupe",
			message: "core: fix snapshot crash\n\n" +
				"Bug-Url: https://bugzilla.example.org/222\n" +
				"Bug-Url: https://bugzilla.example.org/111\n" +
				"Bug-Url: https://bugzilla.example.org/show_bug.cgi?id=222\n",
			want: []int{222, 111},
		},
		{
			name:    "trailing spaces tolerated",
			message: "Bug-Url: https://bugzilla.example.org/4321  \n",
			want:    []int{4321},
		},
		{
			name:    "foreign host rejected",
			message: "Bug-Url: https://bugzilla.elsewhere.org/4321\n",
			want:    nil,
		},
		{
			name:    "must start the line",
			message: "see Bug-Url: https://bugzilla.example.org/4321\n",
			want:    nil,
		},
		{
			name:    "bare id without url rejected",
			message: "Bug-Url: 4321\n",
			want:    nil,
		},
		{
			name:    "trailing garbage rejected",
			message: "Bug-Url: https://bugzilla.example.org/4321#c7\n",
			want:    nil,
		},
		{
			name:    "no references",
			message: "core: fix snapshot crash\n",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBugIDs(tt.message, testServer)
			if err != nil {
				t.Fatalf("ExtractBugIDs: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractBugIDs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractBugIDs_BadServerURL(t *testing.T) {
	if _, err := ExtractBugIDs("Bug-Url: https://x/1\n", "://not a url"); err == nil {
		t.Error("expected error for unusable server URL")
	}
}

func TestRevertedCommits(t *testing.T) {
	message := "Revert \"core: fix snapshot crash\"\n\n" +
		"This reverts commit 0123456789abcdef0123456789abcdef01234567.\n" +
		"This reverts commit abc1234.\n"

	got := RevertedCommits(message)
	want := []string{"0123456789abcdef0123456789abcdef01234567", "abc1234"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RevertedCommits() = %v, want %v", got, want)
	}

	if got := RevertedCommits("ordinary commit message"); got != nil {
		t.Errorf("RevertedCommits() = %v, want nil", got)
	}
}
