package cmd

import (
	"github.com/spf13/cobra"
)

var insertSampleCmd = &cobra.Command{
	Use:   "insert-sample",
	Short: "Insert the sample patient rows",
	Long: `Send the fixed sample INSERT statement. The statement can be replaced
with the sample_query config key.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		sink := a.sink(cmd.OutOrStdout(), true)
		c, err := a.dispatcher(sink).InsertSample()
		if err != nil {
			return err
		}
		return await(c, sink)
	},
}

func init() {
	rootCmd.AddCommand(insertSampleCmd)
}
