package presenter

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"sqlconsole/cli/internal/messages"
	"sqlconsole/cli/internal/outcome"
)

func newPresenter() *Presenter {
	return New(messages.Default(), zerolog.Nop())
}

func success(op outcome.Operation, label, body string) outcome.Outcome {
	return outcome.Success(op, label, &outcome.Result{Status: 200, Body: []byte(body)})
}

func TestOutcome_Table(t *testing.T) {
	r := require.New(t)

	view := newPresenter().Outcome(success(outcome.Read, "Query", `{"rows":[{"id":1,"name":"Sara"}]}`))

	r.Equal(KindTable, view.Kind)
	r.Equal([]string{"id", "name"}, view.Header)
	r.Equal([][]string{{"1", "Sara"}}, view.Rows)
	r.Equal("Results", view.Title)
	r.Equal("Success! Query executed successfully.", view.Banner)
	r.Equal("Query", view.Label)
}

func TestOutcome_EmptyRowsIsDump(t *testing.T) {
	r := require.New(t)

	view := newPresenter().Outcome(success(outcome.Read, "Query", `{"rows":[]}`))

	r.Equal(KindDump, view.Kind)
	r.Equal("{\n  \"rows\": []\n}", view.Dump)
	r.Empty(view.Header)
}

func TestOutcome_ShapeNotClassificationDecides(t *testing.T) {
	r := require.New(t)

	p := newPresenter()

	insertWithRows := p.Outcome(success(outcome.Write, "Insert", `{"rows":[{"ok":true}]}`))
	r.Equal(KindTable, insertWithRows.Kind)
	r.Equal("Insert Results", insertWithRows.Title)

	selectOpaque := p.Outcome(success(outcome.Read, "Query", `{"affectedRows":4,"insertId":7}`))
	r.Equal(KindDump, selectOpaque.Kind)
	r.Equal("{\n  \"affectedRows\": 4,\n  \"insertId\": 7\n}", selectOpaque.Dump)
}

func TestOutcome_NonUniformRowsDegradeToDump(t *testing.T) {
	r := require.New(t)

	view := newPresenter().Outcome(success(outcome.Read, "Query", `{"rows":[{"id":1},{"name":"x"}]}`))
	r.Equal(KindDump, view.Kind)
	r.Contains(view.Dump, `"name": "x"`)
}

func TestOutcome_UndecodableSuccessBody(t *testing.T) {
	r := require.New(t)

	view := newPresenter().Outcome(success(outcome.Read, "Query", `{"rows":`))
	r.Equal(KindError, view.Kind)
	r.NotEmpty(view.Message)
}

func TestOutcome_Failure(t *testing.T) {
	r := require.New(t)

	view := newPresenter().Outcome(outcome.Failure(outcome.Read, "Query", "syntax error"))

	r.Equal(KindError, view.Kind)
	r.Equal("Error", view.Title)
	r.Equal("Error:", view.Banner)
	r.Equal("syntax error", view.Message)
}

func TestOutcome_EscapesMarkup(t *testing.T) {
	r := require.New(t)

	p := newPresenter()

	table := p.Outcome(success(outcome.Read, "Query", `{"rows":[{"note":"\u001b[31mred\u001b[0m\nnext"}]}`))
	r.Equal(KindTable, table.Kind)
	r.Equal([][]string{{`\x1b[31mred\x1b[0m\x0anext`}}, table.Rows)

	failure := p.Outcome(outcome.Failure(outcome.Write, "Insert", "bad \x1b]0;title\x07 input"))
	r.Equal(`bad \x1b]0;title\x07 input`, failure.Message)

	dump := p.Outcome(success(outcome.Write, "Insert", `{"note":"a\u001bb"}`))
	r.Equal(KindDump, dump.Kind)
	r.Equal("{\n  \"note\": \"a\\u001bb\"\n}", dump.Dump)
}

func TestRejection(t *testing.T) {
	r := require.New(t)

	p := newPresenter()

	empty := p.Rejection(RejectEmpty)
	r.Equal(KindError, empty.Kind)
	r.Equal("Please enter a SQL query", empty.Message)

	disallowed := p.Rejection(RejectDisallowed)
	r.Equal(KindError, disallowed.Kind)
	r.Equal("Only SELECT or INSERT queries are allowed", disallowed.Message)
}

func TestLoading(t *testing.T) {
	r := require.New(t)

	view := newPresenter().Loading()
	r.Equal(KindLoading, view.Kind)
	r.Equal("Executing Query...", view.Title)
	r.Equal("Please wait while your query is being processed.", view.Message)
	r.Empty(view.Rows)
	r.Empty(view.Dump)
}

func TestEscape(t *testing.T) {
	tests := []struct {
		in         string
		keepLayout bool
		expected   string
	}{
		{in: "plain text", expected: "plain text"},
		{in: "naïve ☃", expected: "naïve ☃"},
		{in: "a\tb\nc", expected: `a\x09b\x0ac`},
		{in: "a\tb\nc", keepLayout: true, expected: "a\tb\nc"},
		{in: "\x1b[2J", keepLayout: true, expected: `\x1b[2J`},
		{in: "c1\u009bx", expected: `c1\u009bx`},
		{in: "sep\u2028x", expected: `sep\u2028x`},
		{in: "bad\xffbyte", expected: `bad\xffbyte`},
	}

	for _, tt := range tests {
		require.Equal(t, tt.expected, Escape(tt.in, tt.keepLayout), "%q", tt.in)
	}
}
