package payload

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTabulate(t *testing.T) {
	r := require.New(t)

	table, err := Tabulate([]byte(`{"rows":[{"id":1,"name":"Sara"}]}`))
	r.NoError(err)
	r.Equal([]string{"id", "name"}, table.Header)
	r.Equal([][]string{{"1", "Sara"}}, table.Rows)
}

func TestTabulateKeepsFirstRowOrder(t *testing.T) {
	r := require.New(t)

	body := `{"count":2,"rows":[
		{"zeta":"z","alpha":1.50,"mid":null},
		{"mid":true,"alpha":2,"zeta":{"b":1,"a":[1, 2]}}
	]}`

	table, err := Tabulate([]byte(body))
	r.NoError(err)
	r.Equal([]string{"zeta", "alpha", "mid"}, table.Header)
	r.Equal([][]string{
		{"z", "1.50", "null"},
		{`{"b":1,"a":[1,2]}`, "2", "true"},
	}, table.Rows)
}

func TestTabulateRejectsNonTabular(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
	}{
		{name: "empty rows", body: `{"rows":[]}`, err: ErrEmptyRows},
		{name: "no rows field", body: `{"affectedRows":4}`, err: ErrNoRows},
		{name: "top level array", body: `[{"id":1}]`, err: ErrNotObject},
		{name: "missing key", body: `{"rows":[{"id":1,"name":"a"},{"id":2}]}`, err: ErrNotUniform},
		{name: "different key", body: `{"rows":[{"id":1},{"uid":2}]}`, err: ErrNotUniform},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tabulate([]byte(tt.body))
			require.ErrorIs(t, err, tt.err)
		})
	}

	t.Run("rows not an array", func(t *testing.T) {
		_, err := Tabulate([]byte(`{"rows":"nope"}`))
		require.Error(t, err)
	})

	t.Run("row not an object", func(t *testing.T) {
		_, err := Tabulate([]byte(`{"rows":[1,2]}`))
		require.ErrorIs(t, err, ErrNotObject)
	})
}

func TestObjectDuplicateKeys(t *testing.T) {
	r := require.New(t)

	row, err := Object([]byte(`{"a":1,"b":2,"a":3}`))
	r.NoError(err)
	r.Equal([]string{"a", "b"}, row.Keys)
	r.Equal("3", Cell(row.Values["a"]))
}

func TestIndentKeepsOrder(t *testing.T) {
	r := require.New(t)

	out, err := Indent([]byte(`{"z":1,"a":{"y":[1,2]}}`))
	r.NoError(err)
	r.Equal("{\n  \"z\": 1,\n  \"a\": {\n    \"y\": [\n      1,\n      2\n    ]\n  }\n}", out)

	_, err = Indent([]byte(`not json`))
	r.Error(err)
}

func TestErrorField(t *testing.T) {
	tests := []struct {
		body     string
		expected string
	}{
		{body: `{"error":"syntax error"}`, expected: "syntax error"},
		{body: `{"error":{"code":42}}`, expected: `{"code":42}`},
		{body: `{"error":null}`, expected: ""},
		{body: `{"error":""}`, expected: ""},
		{body: `{"message":"x"}`, expected: ""},
		{body: `<html>`, expected: ""},
	}

	for _, tt := range tests {
		require.Equal(t, tt.expected, ErrorField([]byte(tt.body)), tt.body)
	}
}
