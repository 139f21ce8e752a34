package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"sqlconsole/cli/internal/presenter"
)

func plain(buf *bytes.Buffer) string {
	return pterm.RemoveColorFromString(buf.String())
}

func TestTerminalTable(t *testing.T) {
	r := require.New(t)
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.Render(presenter.View{
		Kind:   presenter.KindTable,
		Title:  "Results",
		Banner: "Success! Query executed successfully.",
		Label:  "Query",
		Header: []string{"id", "name"},
		Rows:   [][]string{{"1", "Sara"}, {"2", "John"}},
	})

	out := plain(&buf)
	r.Contains(out, "Results")
	r.Contains(out, "Success! Query executed successfully.")

	lines := strings.Split(out, "\n")
	var header, sara string
	for _, l := range lines {
		if strings.Contains(l, "id") && strings.Contains(l, "name") {
			header = l
		}
		if strings.Contains(l, "Sara") {
			sara = l
		}
	}
	r.NotEmpty(header)
	r.NotEmpty(sara)
	r.Contains(sara, "1")
	r.Less(strings.Index(out, "Sara"), strings.Index(out, "John"))
}

func TestTerminalDumpAndError(t *testing.T) {
	r := require.New(t)
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.Render(presenter.View{
		Kind:   presenter.KindDump,
		Title:  "Insert Results",
		Banner: "Success! Insert executed successfully.",
		Dump:   "{\n  \"affected\": 4\n}",
	})
	term.Render(presenter.View{
		Kind:    presenter.KindError,
		Title:   "Error",
		Banner:  "Error:",
		Message: "syntax error",
	})

	out := plain(&buf)
	r.Contains(out, "Insert Results")
	r.Contains(out, `"affected": 4`)
	r.Contains(out, "Error: syntax error")
	r.Less(strings.Index(out, "Insert Results"), strings.Index(out, "syntax error"))
}

func TestTerminalLoadingWithoutSpinner(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.Render(presenter.View{Kind: presenter.KindLoading, Title: "Executing Query...", Message: "Please wait"})
	term.Close()

	out := plain(&buf)
	require.Contains(t, out, "Executing Query...")
	require.Contains(t, out, "Please wait")
}

func TestTerminalConcurrentRender(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			term.Render(presenter.View{Kind: presenter.KindError, Title: "Error", Banner: "Error:", Message: "boom"})
		}()
	}
	wg.Wait()

	require.Equal(t, 8, strings.Count(plain(&buf), "Error: boom"))
}

func TestJSONSink(t *testing.T) {
	r := require.New(t)
	var buf bytes.Buffer
	sink := NewJSON(&buf, zerolog.Nop())

	sink.Render(presenter.View{Kind: presenter.KindLoading, Title: "Executing Query..."})
	sink.Render(presenter.View{
		Kind:   presenter.KindTable,
		Title:  "Results",
		Banner: "Success! Query executed successfully.",
		Label:  "Query",
		Header: []string{"id"},
		Rows:   [][]string{{"1"}},
	})
	sink.Render(presenter.View{Kind: presenter.KindError, Title: "Error", Banner: "Error:", Message: "a <b> & c"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	r.Len(lines, 2)

	var table map[string]any
	r.NoError(json.Unmarshal([]byte(lines[0]), &table))
	r.Equal("table", table["kind"])
	r.Equal([]any{"id"}, table["header"])
	r.Equal([]any{[]any{"1"}}, table["rows"])

	r.Contains(lines[1], `"message":"a <b> & c"`)
	r.Contains(lines[1], `"kind":"error"`)
}
