// Package payload inspects JSON response bodies without losing object key
// order. encoding/json maps forget the order keys were sent in, and table
// headers must follow the first row's order, so objects are walked token by
// token here.
package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrNotObject  = errors.New("payload is not a JSON object")
	ErrNoRows     = errors.New("payload has no rows field")
	ErrEmptyRows  = errors.New("payload rows are empty")
	ErrNotUniform = errors.New("payload rows do not share the same keys")
)

// Row is a JSON object with its keys in first-seen order.
type Row struct {
	Keys   []string
	Values map[string]json.RawMessage
}

// Table is the string form of a tabular payload.
type Table struct {
	Header []string
	Rows   [][]string
}

// Object decodes raw as a JSON object, keeping key order. A repeated key keeps
// its first position and its last value.
func Object(raw []byte) (*Row, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("dec.Token: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, ErrNotObject
	}

	row := &Row{Values: make(map[string]json.RawMessage)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("dec.Token: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}

		var val json.RawMessage
		if err := dec.Decode(&val); err != nil {
			return nil, fmt.Errorf("dec.Decode: %w", err)
		}

		if _, seen := row.Values[key]; !seen {
			row.Keys = append(row.Keys, key)
		}
		row.Values[key] = val
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("dec.Token: %w", err)
	}

	return row, nil
}

// Rows returns the ordered row objects of body's top-level rows field.
func Rows(body []byte) ([]*Row, error) {
	top, err := Object(body)
	if err != nil {
		return nil, err
	}

	raw, ok := top.Values["rows"]
	if !ok {
		return nil, ErrNoRows
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("rows is not an array: %w", err)
	}

	rows := make([]*Row, 0, len(elems))
	for i, elem := range elems {
		row, err := Object(elem)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Tabulate converts body into a table when it has a non-empty rows field whose
// objects all carry the same keys. The header follows the first row.
func Tabulate(body []byte) (*Table, error) {
	rows, err := Rows(body)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyRows
	}

	header := rows[0].Keys
	t := &Table{
		Header: header,
		Rows:   make([][]string, 0, len(rows)),
	}

	for _, row := range rows {
		if len(row.Keys) != len(header) {
			return nil, ErrNotUniform
		}

		cells := make([]string, len(header))
		for i, key := range header {
			val, ok := row.Values[key]
			if !ok {
				return nil, ErrNotUniform
			}
			cells[i] = Cell(val)
		}
		t.Rows = append(t.Rows, cells)
	}

	return t, nil
}

// Cell returns the display form of a JSON value: strings unquoted, numbers as
// sent, null as "null", and nested values as compact JSON.
func Cell(raw json.RawMessage) string {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return string(raw)
	}

	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return string(raw)
		}
		return buf.String()
	}
}

// Indent pretty-prints body with two-space indentation, keeping key order.
func Indent(body []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(body), "", "  "); err != nil {
		return "", fmt.Errorf("json.Indent: %w", err)
	}
	return buf.String(), nil
}

// ErrorField returns the message of body's top-level error field. Non-string
// values are returned as compact JSON; absent, null, false, or empty values
// yield "".
func ErrorField(body []byte) string {
	top, err := Object(body)
	if err != nil {
		return ""
	}

	raw, ok := top.Values["error"]
	if !ok {
		return ""
	}

	switch strings.TrimSpace(string(raw)) {
	case "null", "false", `""`:
		return ""
	}
	return Cell(raw)
}
