package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ekolabs/qc-triage/internal/cli"
	"github.com/ekolabs/qc-triage/internal/common"
	"github.com/ekolabs/qc-triage/internal/config"
	"github.com/ekolabs/qc-triage/internal/engine"
	"github.com/ekolabs/qc-triage/internal/flagger"
	"github.com/ekolabs/qc-triage/internal/ingest"
	"github.com/ekolabs/qc-triage/internal/model"
	"github.com/ekolabs/qc-triage/internal/notify"
	"github.com/ekolabs/qc-triage/internal/report"
	"github.com/ekolabs/qc-triage/internal/rules"
)

func flagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flag",
		Short: "Flag experiences for QC re-review",
		Long:  `Select open tickets with flaggable issues, store them under today's date, and optionally notify Slack.`,
	}

	cmd.AddCommand(flagRunCmd())
	cmd.AddCommand(flagShowCmd())
	cmd.AddCommand(flagDatesCmd())

	return cmd
}

func flagRunCmd() *cobra.Command {
	var (
		ticketsPath  string
		mappingsPath string
		maxPerIssue  int
		date         string
		dryRun       bool
		notifySlack  bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Select and store today's flags from a ticket export",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if date == "" {
				date = time.Now().Format("2006-01-02")
			}

			tickets, err := ingest.ReadTicketsFile(ticketsPath)
			if err != nil {
				return common.NewUserError("could not read ticket export", err)
			}
			if len(tickets) == 0 {
				return common.NewUserError("the ticket export has no rows", common.ErrNoTickets)
			}

			var mappings []model.ExperienceMapping
			if mappingsPath != "" {
				if mappings, err = ingest.ReadMappingsFile(mappingsPath); err != nil {
					return common.NewUserError("could not read experience mapping", err)
				}
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			issueConfig, err := store.LoadIssueConfig(ctx)
			if err != nil {
				return fmt.Errorf("failed to load issue config: %w", err)
			}

			processor := engine.NewProcessor(rules.NewClassifier(issueConfig))
			categorized := processor.Process(tickets, mappings)
			flagged := flagger.Select(categorized, maxPerIssue)

			formatter := report.NewFormatter()
			fmt.Println(formatter.FormatFlagged(date, flagged))

			if dryRun {
				fmt.Println(cli.SubtleStyle.Render("Dry run, nothing stored."))
				return nil
			}

			if err := store.SaveFlagged(ctx, date, flagged); err != nil {
				return fmt.Errorf("failed to store flags: %w", err)
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Stored %d flags under %s", flagger.Total(flagged), date)))

			if notifySlack {
				webhook := config.SlackWebhookURL()
				if webhook == "" {
					return common.NewUserError("set slack.webhook_url in the config to notify", common.ErrMissingConfig)
				}
				notifier := notify.NewSlackNotifier(webhook)
				if err := notifier.PostFlagged(ctx, date, flagged); err != nil {
					return fmt.Errorf("failed to notify slack: %w", err)
				}
				fmt.Println(cli.FormatSuccess("Posted flags to Slack"))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&ticketsPath, "tickets", "", "ticket export CSV (required)")
	cmd.Flags().StringVar(&mappingsPath, "mappings", "", "experience mapping CSV")
	cmd.Flags().IntVar(&maxPerIssue, "max-per-issue", flagger.DefaultMaxPerIssue, "flags to keep per issue")
	cmd.Flags().StringVar(&date, "date", "", "flag date, YYYY-MM-DD (default: today)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show the selection without storing it")
	cmd.Flags().BoolVar(&notifySlack, "notify", false, "post the selection to the configured Slack webhook")
	_ = cmd.MarkFlagRequired("tickets")

	return cmd
}

func flagShowCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the flags stored under a date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if date == "" {
				date = time.Now().Format("2006-01-02")
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			flagged, err := store.FlaggedByDate(ctx, date)
			if err != nil {
				return fmt.Errorf("failed to load flags: %w", err)
			}

			fmt.Println(report.NewFormatter().FormatFlagged(date, flagged))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "flag date, YYYY-MM-DD (default: today)")

	return cmd
}

func flagDatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dates",
		Short: "List dates with stored flags, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			dates, err := store.FlaggedDates(ctx)
			if err != nil {
				return fmt.Errorf("failed to load flag dates: %w", err)
			}

			if len(dates) == 0 {
				fmt.Println(cli.InfoStyle.Render("No flags stored yet. Use 'qctriage flag run' to create some."))
				return nil
			}
			for _, d := range dates {
				fmt.Println(d)
			}
			return nil
		},
	}
}
