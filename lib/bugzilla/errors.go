// Copyright 2026 The Bugsync Authors
// SPDX-License-Identifier: Apache-2.0

package bugzilla

import (
	"errors"
	"fmt"
	"net"
	"regexp"
	"strconv"

	"github.com/kolo/xmlrpc"
)

// Bugzilla fault codes the hooks care about. Anything else is treated
// as an unexpected server error.
const (
	faultInvalidBugID = 101
	faultAccessDenied = 102
)

// NotFoundError reports a bug the caller may not see: either the ID
// does not exist or the bug is restricted. Bugzilla deliberately does
// not distinguish the two for unprivileged accounts, so neither do we.
type NotFoundError struct {
	// ID is the bug that could not be fetched.
	ID int

	// FaultCode is the underlying Bugzilla fault, when there was one.
	FaultCode int
}

func (err *NotFoundError) Error() string {
	return fmt.Sprintf("bugzilla: bug %d is private or nonexistent", err.ID)
}

// IsNotFound reports whether err means the bug is private or nonexistent.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// IsResolutionError reports whether err was caused by DNS resolution
// failing, the one transport failure the hooks downgrade to a warning:
// review nodes with broken resolvers must not block reviews.
func IsResolutionError(err error) bool {
	var dnsError *net.DNSError
	return errors.As(err, &dnsError)
}

// faultPattern matches the rendered form of an XML-RPC fault. The rpc
// layer under the XML-RPC client flattens server faults into plain
// strings on some paths, so the code must be recoverable from the text.
var faultPattern = regexp.MustCompile(`Fault\((-?\d+)\): (.*)`)

// asFault extracts an XML-RPC fault from err, typed when the chain
// still carries one, re-parsed from the message when it does not.
func asFault(err error) (xmlrpc.FaultError, bool) {
	var fault xmlrpc.FaultError
	if errors.As(err, &fault) {
		return fault, true
	}
	if err == nil {
		return xmlrpc.FaultError{}, false
	}

	match := faultPattern.FindStringSubmatch(err.Error())
	if match == nil {
		return xmlrpc.FaultError{}, false
	}
	code, convErr := strconv.Atoi(match[1])
	if convErr != nil {
		return xmlrpc.FaultError{}, false
	}
	return xmlrpc.FaultError{Code: code, String: match[2]}, true
}
