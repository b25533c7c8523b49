// Package report renders AnalysisResults for the terminal and for CSV
// export. It only reads the result struct; it never recomputes numbers.
package report

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ekolabs/qc-triage/internal/cli"
)

// Styles contains the styling definitions for report formatting.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Subtle   lipgloss.Style
	Normal   lipgloss.Style

	Box      lipgloss.Style
	Stat     lipgloss.Style
	BarFill  lipgloss.Style
	BarEmpty lipgloss.Style
	Up       lipgloss.Style
	Down     lipgloss.Style
}

// NewStyles creates a Styles instance with default styling.
func NewStyles() *Styles {
	s := &Styles{
		Title:    cli.TitleStyle,
		Subtitle: cli.SubtitleStyle,
		Success:  cli.SuccessStyle,
		Warning:  cli.WarningStyle,
		Error:    cli.ErrorStyle,
		Subtle:   cli.SubtleStyle,
		Normal:   lipgloss.NewStyle(),
	}

	s.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cli.SubtleColor).
		Padding(0, 1)

	s.Stat = lipgloss.NewStyle().
		Bold(true).
		Foreground(cli.PrimaryColor)

	s.BarFill = lipgloss.NewStyle().Foreground(cli.PrimaryColor)
	s.BarEmpty = lipgloss.NewStyle().Foreground(cli.SubtleColor)

	// More tickets in an issue is a regression, so up is the bad direction.
	s.Up = lipgloss.NewStyle().Foreground(cli.ErrorColor)
	s.Down = lipgloss.NewStyle().Foreground(cli.SuccessColor)

	return s
}
