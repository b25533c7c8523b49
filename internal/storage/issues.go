package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ekolabs/qc-triage/internal/model"
)

// IssueConfigRow is one persisted issue-config entry. Rows for the fixed
// labels act as metadata overrides; rows with IsCustom extend the label set.
type IssueConfigRow struct {
	UpdatedAt  time.Time
	Name       string
	DevFactory model.DevFactory
	Category   model.CategoryTag
	Comment    string
	IsCustom   bool
}

// SaveIssueConfig inserts or updates an issue-config entry.
func (s *SQLiteStorage) SaveIssueConfig(ctx context.Context, row IssueConfigRow) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(row.Name, "name"); err != nil {
		return err
	}

	query := `
		INSERT INTO issue_config (name, dev_factory, category, comment, is_custom, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			dev_factory = excluded.dev_factory,
			category = excluded.category,
			comment = excluded.comment,
			is_custom = excluded.is_custom,
			updated_at = CURRENT_TIMESTAMP`

	if _, err := s.db.ExecContext(ctx, query,
		row.Name, string(row.DevFactory), string(row.Category), row.Comment, row.IsCustom); err != nil {
		return fmt.Errorf("failed to save issue config: %w", err)
	}

	slog.Debug("saved issue config", "name", row.Name, "custom", row.IsCustom)
	return nil
}

// DeleteIssueConfig removes an issue-config entry by name.
func (s *SQLiteStorage) DeleteIssueConfig(ctx context.Context, name string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(name, "name"); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM issue_config WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to delete issue config: %w", err)
	}
	return nil
}

// ListIssueConfigs returns all persisted issue-config entries in name order.
func (s *SQLiteStorage) ListIssueConfigs(ctx context.Context) ([]IssueConfigRow, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT name, dev_factory, category, comment, is_custom, updated_at
		FROM issue_config
		ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query issue config: %w", err)
	}
	defer rows.Close()

	var configs []IssueConfigRow
	for rows.Next() {
		var row IssueConfigRow
		var devFactory, category string
		if err := rows.Scan(&row.Name, &devFactory, &category, &row.Comment, &row.IsCustom, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan issue config: %w", err)
		}
		row.DevFactory = model.DevFactory(devFactory)
		row.Category = model.CategoryTag(category)
		configs = append(configs, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating issue config: %w", err)
	}

	return configs, nil
}

// LoadIssueConfig merges the fixed label set with the persisted entries into
// the immutable snapshot the classifier and aggregator consume. Custom
// labels are appended after the fixed set in name order; persisted metadata
// overrides the static table by exact name.
func (s *SQLiteStorage) LoadIssueConfig(ctx context.Context) (*model.IssueConfig, error) {
	rows, err := s.ListIssueConfigs(ctx)
	if err != nil {
		return nil, err
	}

	labels := model.AllIssues()
	overrides := make(map[string]model.IssueMetadata, len(rows))
	for _, row := range rows {
		if row.IsCustom {
			labels = append(labels, row.Name)
		}
		overrides[row.Name] = model.IssueMetadata{
			DevFactory: row.DevFactory,
			Category:   row.Category,
			Comment:    row.Comment,
		}
	}

	return model.NewIssueConfig(labels, overrides), nil
}
