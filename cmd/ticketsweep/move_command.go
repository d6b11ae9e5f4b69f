package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ticketsweep/internal/mover"
	"ticketsweep/internal/ticket"
)

func newMoveCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move TICKET...",
		Short: "Move the named tickets' folders to deletion staging without evaluation",
		Long: "move relocates every backup folder tagged with the given ticket ids into\n" +
			"the deletion staging directory. No remote lookup or retention check is\n" +
			"performed; use it for tickets an operator has already vetted.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			ids := make([]ticket.ID, 0, len(args))
			for _, arg := range args {
				id, err := ticket.Parse(arg)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}

			m := mover.New(cfg.BackupsLocation, cfg.DeletionLocation, logger)
			summary, err := m.MoveToDeletion(cmd.Context(), ids)
			if err != nil {
				return err
			}

			printMoveSummary(cmd, summary)
			if len(summary.Failed) > 0 {
				return fmt.Errorf("%d folder(s) failed to move", len(summary.Failed))
			}
			return nil
		},
	}
	return cmd
}
