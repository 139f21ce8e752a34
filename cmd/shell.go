package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"sqlconsole/cli/internal/dispatch"
	"sqlconsole/cli/internal/messages"
)

const shellHelp = `Enter a SELECT or INSERT statement on one line to run it.
  \sample  insert the sample rows
  \help    show this help
  \q       quit (waits for running statements)

\sample sends:
  %s
`

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive SQL console",
	Long: `Start an interactive console. Each line is submitted as a statement.
Statements run in the background; a new statement is refused while the
previous one is still executing, and so is \sample while an insert runs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		sink := a.sink(out, false)
		d := a.dispatcher(sink)

		fmt.Fprintln(out, pterm.NewStyle(pterm.FgLightCyan, pterm.Bold).Sprint(a.catalog.Get(messages.AppTitle)))
		fmt.Fprintln(out, pterm.NewStyle(pterm.FgGray).Sprint(a.client.Base()))
		fmt.Fprintln(out)

		err = runShell(cmd.InOrStdin(), out, d, a.catalog)
		d.Wait()
		closeSink(sink)
		return err
	},
}

func runShell(in io.Reader, out io.Writer, d *dispatch.Dispatcher, catalog *messages.Catalog) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	prompt := func() {
		fmt.Fprint(out, catalog.Get(messages.PromptQuery)+" ")
	}

	prompt()
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		var err error
		var busy messages.Key
		switch line {
		case "":
		case `\q`, `\quit`, "exit":
			return nil
		case `\help`, `\?`:
			fmt.Fprintf(out, shellHelp, d.SampleQuery())
		case `\sample`:
			busy = messages.BtnInserting
			_, err = d.InsertSample()
		default:
			busy = messages.BtnExecuting
			_, err = d.SubmitQuery(line)
		}

		if errors.Is(err, dispatch.ErrControlDisabled) {
			fmt.Fprintln(out, pterm.NewStyle(pterm.FgYellow).Sprint(catalog.Get(busy)+" (ignored)"))
		}
		prompt()
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	fmt.Fprintln(out)
	return nil
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
