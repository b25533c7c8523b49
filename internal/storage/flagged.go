package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ekolabs/qc-triage/internal/model"
)

// DefaultRetention is how long flagged experiences are kept before the
// sweep removes them.
const DefaultRetention = 30 * 24 * time.Hour

// SaveFlagged replaces the flagged-experience set stored under a calendar
// date (YYYY-MM-DD). Re-running the flag workflow for the same day
// overwrites rather than appends.
func (s *SQLiteStorage) SaveFlagged(ctx context.Context, date string, flagged map[string][]model.FlaggedExperience) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateDate(date); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM flagged_experiences WHERE flag_date = ?`, date); err != nil {
		return fmt.Errorf("failed to clear flagged experiences: %w", err)
	}

	insert := `
		INSERT INTO flagged_experiences
			(flag_date, issue, instance_id, experience_name, ticket_name, ticket_status, ticket_description, backstage_link)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	total := 0
	for _, issue := range model.FlaggableIssues() {
		for _, exp := range flagged[issue] {
			if _, err := tx.ExecContext(ctx, insert,
				date, exp.Issue, exp.InstanceID, exp.ExperienceName,
				exp.TicketName, exp.TicketStatus, exp.TicketDescription, exp.BackstageLink); err != nil {
				return fmt.Errorf("failed to insert flagged experience: %w", err)
			}
			total++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit flagged experiences: %w", err)
	}

	slog.Info("saved flagged experiences", "date", date, "count", total)
	return nil
}

// FlaggedByDate returns the flagged experiences stored under a date,
// grouped by issue.
func (s *SQLiteStorage) FlaggedByDate(ctx context.Context, date string) (map[string][]model.FlaggedExperience, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}

	query := `
		SELECT issue, instance_id, experience_name, ticket_name, ticket_status, ticket_description, backstage_link
		FROM flagged_experiences
		WHERE flag_date = ?
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query flagged experiences: %w", err)
	}
	defer rows.Close()

	flagged := make(map[string][]model.FlaggedExperience)
	for rows.Next() {
		var exp model.FlaggedExperience
		if err := rows.Scan(&exp.Issue, &exp.InstanceID, &exp.ExperienceName,
			&exp.TicketName, &exp.TicketStatus, &exp.TicketDescription, &exp.BackstageLink); err != nil {
			return nil, fmt.Errorf("failed to scan flagged experience: %w", err)
		}
		flagged[exp.Issue] = append(flagged[exp.Issue], exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating flagged experiences: %w", err)
	}

	return flagged, nil
}

// FlaggedDates returns the distinct dates with stored flags, newest first.
func (s *SQLiteStorage) FlaggedDates(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT flag_date FROM flagged_experiences ORDER BY flag_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query flagged dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan flagged date: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating flagged dates: %w", err)
	}

	return dates, nil
}

// SweepFlagged deletes flagged experiences older than the retention window
// and returns how many rows went away.
func (s *SQLiteStorage) SweepFlagged(ctx context.Context, retention time.Duration) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if retention <= 0 {
		retention = DefaultRetention
	}

	cutoff := time.Now().Add(-retention).Format("2006-01-02")
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM flagged_experiences WHERE flag_date < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep flagged experiences: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count swept rows: %w", err)
	}

	slog.Info("swept flagged experiences", "cutoff", cutoff, "removed", removed)
	return removed, nil
}
