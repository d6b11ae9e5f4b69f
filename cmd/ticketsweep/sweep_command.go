package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ticketsweep/internal/logging"
	"ticketsweep/internal/mover"
	"ticketsweep/internal/notifications"
	"ticketsweep/internal/ticket"
)

func newSweepCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Move backups that are ready for deletion into the staging directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()
			notifier := notifications.NewService(cfg)

			records, err := ctx.runEvaluation(cmd, true)
			if err != nil {
				if notifyErr := notifier.NotifyError(cmd.Context(), err, "sweep evaluation failed"); notifyErr != nil {
					logger.Warn("notification failed", logging.Error(notifyErr))
				}
				return err
			}

			out := cmd.OutOrStdout()
			ready := filterReady(records)
			if len(ready) == 0 {
				fmt.Fprintln(out, "No tickets are ready for deletion.")
				return nil
			}

			renderRecords(out, "Ready for Deletion", ready)
			if dryRun {
				fmt.Fprintf(out, "Dry run: %d folder group(s) would be moved to %s\n",
					len(ready), cfg.DeletionLocation)
				return nil
			}

			if !assumeYes && !confirmSweep(cmd, len(ready), cfg.DeletionLocation) {
				fmt.Fprintln(out, "Sweep cancelled.")
				return nil
			}

			ids := make([]ticket.ID, 0, len(ready))
			for _, record := range ready {
				ids = append(ids, record.ID)
			}

			m := mover.New(cfg.BackupsLocation, cfg.DeletionLocation, logger)
			summary, err := m.MoveToDeletion(cmd.Context(), ids)
			if err != nil {
				if notifyErr := notifier.NotifyError(cmd.Context(), err, "sweep failed"); notifyErr != nil {
					logger.Warn("notification failed", logging.Error(notifyErr))
				}
				return err
			}

			printMoveSummary(cmd, summary)
			if err := notifier.NotifySweepCompleted(cmd.Context(),
				len(summary.Moved), len(summary.Skipped), len(summary.Failed)); err != nil {
				logger.Warn("notification failed", logging.Error(err))
			}
			if len(summary.Failed) > 0 {
				return fmt.Errorf("%d folder(s) failed to move", len(summary.Failed))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be moved without moving anything")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func confirmSweep(cmd *cobra.Command, count int, dest string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "Move %d folder group(s) to %s? [y/N]: ", count, dest)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func printMoveSummary(cmd *cobra.Command, summary mover.Summary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Moved %d folder(s) to deletion staging.\n", len(summary.Moved))
	for _, folder := range summary.Moved {
		fmt.Fprintf(out, "  moved   %s\n", folder)
	}
	for _, id := range summary.Skipped {
		fmt.Fprintf(out, "  skipped %s (no matching folder)\n", id)
	}
	for _, failure := range summary.Failed {
		name := failure.Folder
		if name == "" {
			name = failure.Ticket.String()
		}
		fmt.Fprintf(out, "  failed  %s: %v\n", name, failure.Err)
	}
}
