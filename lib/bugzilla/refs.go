// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

package bugzilla

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
)

// revertPattern matches the line git inserts into the messages of
// commits created by `git revert`.
var revertPattern = regexp.MustCompile(`This reverts commit ([0-9a-f]{7,40})`)

// ExtractBugIDs returns the bug IDs referenced by Bug-Url lines in a
// commit message, in first-appearance order and without duplicates.
//
// A line counts only when it carries a full bug URL on the configured
// server, with or without the show_bug.cgi prefix:
//
//	Bug-Url: https://bugzilla.example.org/1234
//	Bug-Url: http://bugzilla.example.org/show_bug.cgi?id=1234
//
// Both schemes are accepted regardless of the scheme serverURL uses;
// committers paste whichever their browser shows. URLs on other hosts
// never match.
func ExtractBugIDs(message, serverURL string) ([]int, error) {
	pattern, err := bugURLPattern(serverURL)
	if err != nil {
		return nil, err
	}

	var ids []int
	seen := make(map[int]bool)
	for _, match := range pattern.FindAllStringSubmatch(message, -1) {
		id, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

// RevertedCommits returns the commits a message declares it reverts, in
// appearance order. Empty for ordinary commits.
func RevertedCommits(message string) []string {
	var commits []string
	for _, match := range revertPattern.FindAllStringSubmatch(message, -1) {
		commits = append(commits, match[1])
	}
	return commits
}

// bugURLPattern builds the Bug-Url line pattern for one server.
func bugURLPattern(serverURL string) (*regexp.Regexp, error) {
	parsed, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("bugzilla: parsing server URL %q: %w", serverURL, err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("bugzilla: server URL %q has no host", serverURL)
	}

	host := regexp.QuoteMeta(parsed.Host)
	return regexp.Compile(`(?m)^Bug-Url:[ \t]+https?://` + host + `/(?:show_bug\.cgi\?id=)?(\d+)[ \t]*$`)
}
