// Copyright (c) 2025 Sqlconsole
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors turns HTTP/network errors into short user-facing messages.
package httperrors

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
	"syscall"
	"unicode/utf8"

	"sqlconsole/cli/internal/logging"
)

// Fault is the category of a network error.
type Fault int

const (
	FaultGeneric Fault = iota
	FaultTimeout
	FaultDNS
	FaultRefused
	FaultTLS
)

func (f Fault) String() string {
	switch f {
	case FaultTimeout:
		return "timeout"
	case FaultDNS:
		return "dns"
	case FaultRefused:
		return "connection_refused"
	case FaultTLS:
		return "tls"
	default:
		return "generic"
	}
}

// Classify detects common error types (timeout, DNS, connection refused, TLS).
func Classify(err error) Fault {
	switch {
	case err == nil:
		return FaultGeneric
	case isTimeoutError(err):
		return FaultTimeout
	case isDNSError(err):
		return FaultDNS
	case isConnectionRefusedError(err):
		return FaultRefused
	case isSSLError(err):
		return FaultTLS
	default:
		return FaultGeneric
	}
}

// Describe converts err into a one-line message naming host when known.
// Credentials in the underlying error text are masked.
func Describe(err error, host string) string {
	if err == nil {
		return ""
	}
	if host == "" {
		host = "server"
	}

	switch Classify(err) {
	case FaultTimeout:
		return "Connection timeout: " + host + " took too long to respond"
	case FaultDNS:
		return "Cannot resolve server address " + host
	case FaultRefused:
		return "Connection refused by " + host
	case FaultTLS:
		return "Secure connection to " + host + " failed"
	}

	details := truncate(logging.Mask(unwrapURLError(err).Error()), maxDetails)
	return "Cannot connect to " + host + ": " + details
}

// maxDetails bounds the error text appended to a generic connect failure.
const maxDetails = 200

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// isTimeoutError checks if the error is a timeout error.
func isTimeoutError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded")
}

// isDNSError checks if the error is a DNS resolution error.
func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// isConnectionRefusedError checks if the error is a connection refused error.
func isConnectionRefusedError(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

// isSSLError checks if the error is an SSL/TLS error.
func isSSLError(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") ||
		strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "handshake")
}

// unwrapURLError drops the "Get \"<url>\":" prefix net/http adds, since the
// URL can carry the whole query text.
func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}

// ExtractHostFromURL extracts the hostname from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}
