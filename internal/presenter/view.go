// Copyright (c) 2025 Sqlconsole
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package presenter maps operation outcomes to renderable views. Views are
// plain values; painting them is up to a render sink.
package presenter

// Kind selects how a view is painted.
type Kind int

const (
	KindLoading Kind = iota
	KindTable
	KindDump
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindLoading:
		return "loading"
	case KindTable:
		return "table"
	case KindDump:
		return "dump"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// View is a complete, display-safe description of what the render target
// shows. Every string in it has already been escaped.
type View struct {
	Kind Kind
	// Title heads the view ("Results", "Error", ...).
	Title string
	// Banner is the one-line success or error summary.
	Banner string
	// Label is the operation label of a success ("Query" or "Insert").
	Label string

	// Header and Rows are set for KindTable.
	Header []string
	Rows   [][]string

	// Dump is set for KindDump.
	Dump string

	// Message is set for KindError and KindLoading.
	Message string
}

// Rejection is a pre-flight validation failure.
type Rejection int

const (
	RejectNone Rejection = iota
	RejectEmpty
	RejectDisallowed
)

func (r Rejection) String() string {
	switch r {
	case RejectEmpty:
		return "empty"
	case RejectDisallowed:
		return "disallowed"
	default:
		return "none"
	}
}
