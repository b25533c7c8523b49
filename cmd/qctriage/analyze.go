package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ekolabs/qc-triage/internal/analysis"
	"github.com/ekolabs/qc-triage/internal/cli"
	"github.com/ekolabs/qc-triage/internal/common"
	"github.com/ekolabs/qc-triage/internal/engine"
	"github.com/ekolabs/qc-triage/internal/ingest"
	"github.com/ekolabs/qc-triage/internal/model"
	"github.com/ekolabs/qc-triage/internal/report"
	"github.com/ekolabs/qc-triage/internal/rules"
)

func analyzeCmd() *cobra.Command {
	var (
		ticketsPath      string
		mappingsPath     string
		pastTicketsPath  string
		pastMappingsPath string
		analysisType     string
		customIssues     []string
		exportPath       string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Categorize a ticket export and print the issue breakdown",
		Long: `Read a ticket export and its experience mapping, categorize every ticket,
and print the per-issue breakdown for the chosen analysis type. Supplying a
prior export pair adds a week-over-week comparison.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			preset, ok := model.PresetFor(model.AnalysisType(analysisType))
			if !ok {
				return common.NewUserError(
					fmt.Sprintf("unknown analysis type %q (overall, dimensions, factory, label, custom)", analysisType), nil)
			}
			if preset.Type == model.AnalysisCustom && len(customIssues) == 0 {
				return common.NewUserError("use --issues to pick issues for a custom analysis", common.ErrEmptyCustomIssues)
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
			bar := progressbar.NewOptions(len(tickets),
				progressbar.OptionSetDescription("Categorizing"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionClearOnFinish(),
			)
			processor.OnProgress = func(done, _ int) {
				_ = bar.Set(done)
			}

			categorized := processor.Process(tickets, mappings)
			_ = bar.Finish()

			aggregator := analysis.NewAggregator(issueConfig)
			opts := analysis.Options{
				Preset:       preset,
				CustomIssues: customIssues,
			}

			if pastTicketsPath != "" {
				prior, priorErr := summarizePrior(aggregator, processor, pastTicketsPath, pastMappingsPath)
				if priorErr != nil {
					return priorErr
				}
				opts.Prior = prior
			}

			result := aggregator.Aggregate(categorized, mappings, opts)

			fmt.Println(cli.FormatTitle(preset.Name))
			formatter := report.NewFormatter()
			fmt.Println(formatter.FormatSummary(result, preset))
			fmt.Println(formatter.FormatIssues(result))
			if section := formatter.FormatComparison(result); section != "" {
				fmt.Println()
				fmt.Println(section)
			}
			if section := formatter.FormatTopProducts(result); section != "" {
				fmt.Println()
				fmt.Println(section)
			}

			if exportPath != "" {
				if err := exportCSV(exportPath, result); err != nil {
					return err
				}
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported breakdown to %s", exportPath)))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&ticketsPath, "tickets", "", "ticket export CSV (required)")
	cmd.Flags().StringVar(&mappingsPath, "mappings", "", "experience mapping CSV")
	cmd.Flags().StringVar(&pastTicketsPath, "past-tickets", "", "prior-period ticket export CSV")
	cmd.Flags().StringVar(&pastMappingsPath, "past-mappings", "", "prior-period experience mapping CSV")
	cmd.Flags().StringVar(&analysisType, "type", "overall", "analysis type (overall, dimensions, factory, label, custom)")
	cmd.Flags().StringSliceVar(&customIssues, "issues", nil, "issues for a custom analysis")
	cmd.Flags().StringVar(&exportPath, "export", "", "write the per-issue breakdown to a CSV file")
	_ = cmd.MarkFlagRequired("tickets")

	return cmd
}

// summarizePrior categorizes the prior export pair and condenses it into the
// rollup the comparison needs.
func summarizePrior(aggregator *analysis.Aggregator, processor *engine.Processor, ticketsPath, mappingsPath string) (*model.PriorPeriod, error) {
	tickets, err := ingest.ReadTicketsFile(ticketsPath)
	if err != nil {
		return nil, common.NewUserError("could not read prior ticket export", err)
	}

	var mappings []model.ExperienceMapping
	if mappingsPath != "" {
		if mappings, err = ingest.ReadMappingsFile(mappingsPath); err != nil {
			return nil, common.NewUserError("could not read prior experience mapping", err)
		}
	}

	progress := processor.OnProgress
	processor.OnProgress = nil
	categorized := processor.Process(tickets, mappings)
	processor.OnProgress = progress

	return aggregator.Summarize(categorized, mappings), nil
}

func exportCSV(path string, result *model.AnalysisResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := report.WriteCSV(f, result); err != nil {
		return fmt.Errorf("failed to export breakdown: %w", err)
	}
	return nil
}
