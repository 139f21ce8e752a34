// Copyright (c) 2025 Sqlconsole
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package outcome defines the normalized result of one remote operation.
package outcome

// Operation is the remote operation that produced an outcome.
type Operation int

const (
	// Read is a GET of a SELECT statement.
	Read Operation = iota
	// Write is a POST of an INSERT statement.
	Write
)

func (o Operation) String() string {
	if o == Write {
		return "write"
	}
	return "read"
}

// Result is a successful response body as received.
type Result struct {
	Status int
	Body   []byte
}

// Outcome is either a success carrying a Result or a failure carrying a
// message. Label names the operation for display only.
type Outcome struct {
	Operation Operation
	Label     string
	Result    *Result
	Message   string
}

// Success returns a successful outcome.
func Success(op Operation, label string, result *Result) Outcome {
	return Outcome{Operation: op, Label: label, Result: result}
}

// Failure returns a failed outcome.
func Failure(op Operation, label string, message string) Outcome {
	return Outcome{Operation: op, Label: label, Message: message}
}

// OK reports whether the outcome is a success.
func (o Outcome) OK() bool {
	return o.Result != nil
}
