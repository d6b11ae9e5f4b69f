package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Evaluate backup folders and show per-ticket retention verdicts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := ctx.runEvaluation(cmd, !jsonOut)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, recordsToJSON(records))
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No ticket-tagged backup folders resolved.")
				return nil
			}
			renderRecords(out, "", records)
			fmt.Fprintf(out, "%d ticket(s) resolved, %d ready for deletion\n",
				len(records), len(filterReady(records)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit records as JSON")
	return cmd
}
