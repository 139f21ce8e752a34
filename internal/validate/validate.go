// Copyright (c) 2025 Sqlconsole
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package validate accepts or rejects raw query text before anything is sent
// to the remote endpoint. Only the leading keyword is inspected; statements are
// never parsed.
package validate

import "strings"

// Classification is the statement type derived from the leading keyword.
type Classification int

const (
	Rejected Classification = iota
	Select
	Insert
)

func (c Classification) String() string {
	switch c {
	case Select:
		return "select"
	case Insert:
		return "insert"
	default:
		return "rejected"
	}
}

// IsNonEmpty reports whether text contains anything besides whitespace.
func IsNonEmpty(text string) bool {
	return len(strings.TrimSpace(text)) > 0
}

// Classify compares the upper-cased, trimmed text against the SELECT and
// INSERT keywords. It is total: empty or unknown input yields Rejected.
func Classify(text string) Classification {
	upper := strings.ToUpper(strings.TrimSpace(text))
	switch {
	case strings.HasPrefix(upper, "SELECT"):
		return Select
	case strings.HasPrefix(upper, "INSERT"):
		return Insert
	default:
		return Rejected
	}
}

// IsAllowed reports whether text is a statement type the client may send.
func IsAllowed(text string) bool {
	return Classify(text) != Rejected
}

// Validator exposes the package functions as methods so they can be injected.
type Validator struct{}

func (Validator) IsNonEmpty(text string) bool         { return IsNonEmpty(text) }
func (Validator) Classify(text string) Classification { return Classify(text) }
func (Validator) IsAllowed(text string) bool          { return IsAllowed(text) }
