package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query [SQL...]",
	Short: "Run one SELECT or INSERT statement",
	Long: `Run one SELECT or INSERT statement against the endpoint and show the
result. Arguments are joined with spaces; pass "-" to read the statement from
standard input. SELECT is sent as a GET, INSERT as a POST.`,
	Example: `  sqlconsole query "SELECT * FROM patient"
  echo "SELECT 1" | sqlconsole query -`,
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := readQuery(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		sink := a.sink(cmd.OutOrStdout(), true)
		c, err := a.dispatcher(sink).SubmitQuery(q)
		if err != nil {
			return err
		}
		return await(c, sink)
	},
}

func readQuery(in io.Reader, args []string) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		b, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	return strings.Join(args, " "), nil
}

func init() {
	rootCmd.AddCommand(queryCmd)
}
