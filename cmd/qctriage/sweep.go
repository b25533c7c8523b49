package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ekolabs/qc-triage/internal/cli"
)

func sweepCmd() *cobra.Command {
	var retentionDays int

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Delete stored flags older than the retention window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.SweepFlagged(ctx, time.Duration(retentionDays)*24*time.Hour)
			if err != nil {
				return fmt.Errorf("failed to sweep flags: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Removed %d expired flags", removed)))
			return nil
		},
	}

	cmd.Flags().IntVar(&retentionDays, "retention-days", 30, "how many days of flags to keep")

	return cmd
}
