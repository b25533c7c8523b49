package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ekolabs/qc-triage/internal/cli"
	"github.com/ekolabs/qc-triage/internal/common"
	"github.com/ekolabs/qc-triage/internal/model"
	"github.com/ekolabs/qc-triage/internal/storage"
)

func issuesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issues",
		Short: "Manage issue labels",
		Long:  `List, add, update, and remove the issue labels used for ticket categorization.`,
	}

	cmd.AddCommand(listIssuesCmd())
	cmd.AddCommand(addIssueCmd())
	cmd.AddCommand(setIssueCmd())
	cmd.AddCommand(removeIssueCmd())

	return cmd
}

func listIssuesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the configured issue labels",
		Long:  `Display the full label set the classifier uses, fixed labels and custom additions alike.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			issueConfig, err := store.LoadIssueConfig(ctx)
			if err != nil {
				return fmt.Errorf("failed to load issue config: %w", err)
			}

			custom := make(map[string]bool)
			rows, err := store.ListIssueConfigs(ctx)
			if err != nil {
				return fmt.Errorf("failed to list issue config: %w", err)
			}
			for _, row := range rows {
				if row.IsCustom {
					custom[row.Name] = true
				}
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				headerStyle.Render("Issue"),
				headerStyle.Render("Dev/Factory"),
				headerStyle.Render("Category"),
				headerStyle.Render("Source"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 40),
				strings.Repeat("-", 11),
				strings.Repeat("-", 9),
				strings.Repeat("-", 6))

			for _, label := range issueConfig.Labels() {
				md := issueConfig.Metadata(label)
				source := "fixed"
				if custom[label] {
					source = "custom"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					label, string(md.DevFactory), string(md.Category), source)
			}

			return nil
		},
	}
}

func addIssueCmd() *cobra.Command {
	var (
		devFactory string
		category   string
		comment    string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a custom issue label",
		Long:  `Add a new label to the classifier's set. Ticket names matching it exactly will categorize to it.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := strings.TrimSpace(args[0])
			if name == "" {
				return common.NewUserError("the issue name cannot be empty", common.ErrInvalidConfig)
			}

			md, err := parseIssueMetadata(devFactory, category)
			if err != nil {
				return err
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
			if existing, ok := issueConfig.Canonical(name); ok {
				return common.NewUserError(fmt.Sprintf("issue %q already exists", existing), common.ErrDuplicateEntry)
			}

			row := storage.IssueConfigRow{
				Name:       name,
				DevFactory: md.DevFactory,
				Category:   md.Category,
				Comment:    comment,
				IsCustom:   true,
			}
			if err := store.SaveIssueConfig(ctx, row); err != nil {
				return fmt.Errorf("failed to save issue: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added issue %q", name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&devFactory, "dev-factory", "", "root cause bucket (DEV or FACTORY)")
	cmd.Flags().StringVar(&category, "category", "", "defect category tag")
	cmd.Flags().StringVar(&comment, "comment", "", "free-text note shown in exports")

	return cmd
}

func setIssueCmd() *cobra.Command {
	var (
		devFactory string
		category   string
		comment    string
	)

	cmd := &cobra.Command{
		Use:   "set <name>",
		Short: "Override the metadata of an issue label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			parsed, err := parseIssueMetadata(devFactory, category)
			if err != nil {
				return err
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
			name, ok := issueConfig.Canonical(args[0])
			if !ok {
				return common.NewUserError(fmt.Sprintf("issue %q not found", args[0]), common.ErrNotFound)
			}

			// Unset flags keep the current values.
			md := issueConfig.Metadata(name)
			if cmd.Flags().Changed("dev-factory") {
				md.DevFactory = parsed.DevFactory
			}
			if cmd.Flags().Changed("category") {
				md.Category = parsed.Category
			}
			if cmd.Flags().Changed("comment") {
				md.Comment = comment
			}

			isCustom := false
			rows, err := store.ListIssueConfigs(ctx)
			if err != nil {
				return fmt.Errorf("failed to list issue config: %w", err)
			}
			for _, row := range rows {
				if row.Name == name {
					isCustom = row.IsCustom
					break
				}
			}

			row := storage.IssueConfigRow{
				Name:       name,
				DevFactory: md.DevFactory,
				Category:   md.Category,
				Comment:    md.Comment,
				IsCustom:   isCustom,
			}
			if err := store.SaveIssueConfig(ctx, row); err != nil {
				return fmt.Errorf("failed to save issue: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated issue %q", name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&devFactory, "dev-factory", "", "root cause bucket (DEV or FACTORY)")
	cmd.Flags().StringVar(&category, "category", "", "defect category tag")
	cmd.Flags().StringVar(&comment, "comment", "", "free-text note shown in exports")

	return cmd
}

func removeIssueCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a custom issue label or metadata override",
		Long:  `Remove a persisted entry. Fixed labels revert to their built-in metadata; custom labels disappear from the set.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := strings.TrimSpace(args[0])

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if !force {
				fmt.Printf("Are you sure you want to remove %q? (y/N): ", name)
				var response string
				fmt.Scanln(&response)
				if strings.ToLower(response) != "y" {
					fmt.Println("Removal cancelled.")
					return nil
				}
			}

			if err := store.DeleteIssueConfig(ctx, name); err != nil {
				return fmt.Errorf("failed to remove issue: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Removed %q", name)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}

// parseIssueMetadata validates the flag values against the known tag sets.
func parseIssueMetadata(devFactory, category string) (model.IssueMetadata, error) {
	md := model.IssueMetadata{}

	switch strings.ToUpper(strings.TrimSpace(devFactory)) {
	case "":
		md.DevFactory = model.DevFactoryNone
	case string(model.DevFactoryDev):
		md.DevFactory = model.DevFactoryDev
	case string(model.DevFactoryFactory):
		md.DevFactory = model.DevFactoryFactory
	default:
		return md, common.NewUserError(
			fmt.Sprintf("invalid --dev-factory %q (DEV or FACTORY)", devFactory), common.ErrInvalidConfig)
	}

	cat := model.CategoryTag(strings.ToUpper(strings.TrimSpace(category)))
	if cat != model.CategoryNone {
		valid := false
		for _, t := range model.CategoryTags() {
			if cat == t {
				valid = true
				break
			}
		}
		if !valid {
			return md, common.NewUserError(
				fmt.Sprintf("invalid --category %q", category), common.ErrInvalidConfig)
		}
	}
	md.Category = cat

	return md, nil
}
