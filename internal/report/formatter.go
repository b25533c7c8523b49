package report

import (
	"fmt"
	"strings"

	"github.com/ekolabs/qc-triage/internal/flagger"
	"github.com/ekolabs/qc-triage/internal/model"
)

// barWidth is the character width of the percentage bars.
const barWidth = 30

// Formatter renders analysis results for terminal display.
type Formatter struct {
	styles *Styles
}

// NewFormatter creates a formatter with default styles.
func NewFormatter() *Formatter {
	return &Formatter{styles: NewStyles()}
}

// FormatSummary renders the headline numbers of a result.
func (f *Formatter) FormatSummary(result *model.AnalysisResult, preset model.AnalysisPreset) string {
	if result == nil {
		return f.styles.Error.Render("No analysis result available")
	}

	var lines []string
	lines = append(lines,
		fmt.Sprintf("Total tickets:       %s", f.styles.Stat.Render(fmt.Sprintf("%d", result.TotalTickets))),
		fmt.Sprintf("Products reviewed:   %s", f.styles.Stat.Render(fmt.Sprintf("%d", result.TotalProductsReviewed))),
		fmt.Sprintf("Approved (0 issues): %s", f.styles.Stat.Render(fmt.Sprintf("%d", result.ApprovedExperiences))),
		fmt.Sprintf("Products w/ tickets: %s", f.styles.Stat.Render(fmt.Sprintf("%d", result.ProductsWithTickets))),
		fmt.Sprintf("Tickets/experience:  %s", f.styles.Stat.Render(fmt.Sprintf("%.2f", result.TicketsPerExperience))),
		fmt.Sprintf("Categorization rate: %s", f.styles.Stat.Render(fmt.Sprintf("%.2f%%", result.SuccessRate))),
	)
	if result.StuckCount > 0 {
		lines = append(lines, f.styles.Warning.Render(fmt.Sprintf("Stuck tickets:       %d", result.StuckCount)))
	}
	if preset.IncludeDevFactory {
		lines = append(lines, fmt.Sprintf("Dev vs Factory:      %s / %s",
			f.styles.Stat.Render(fmt.Sprintf("%d", result.DevCount)),
			f.styles.Stat.Render(fmt.Sprintf("%d", result.FactoryCount))))
	}

	if cmp := result.Comparison; cmp != nil {
		lines = append(lines, "", f.styles.Subtle.Render(fmt.Sprintf(
			"Prior period: %d tickets, %d reviewed, %d approved (%+d tickets, %+.1f%%)",
			cmp.PriorTotalTickets, cmp.PriorProductsReviewed, cmp.PriorApprovedExperiences,
			cmp.TicketChange, cmp.TicketChangePercent)))
	}

	return f.styles.Box.Render(strings.Join(lines, "\n"))
}

// FormatIssues renders the per-issue table with percentage bars, skipping
// empty buckets.
func (f *Formatter) FormatIssues(result *model.AnalysisResult) string {
	if result == nil || len(result.IssueResults) == 0 {
		return f.styles.Subtle.Render("No issues to display")
	}

	nameWidth := 0
	for _, ir := range result.IssueResults {
		if ir.Count > 0 && len(ir.Issue) > nameWidth {
			nameWidth = len(ir.Issue)
		}
	}

	var lines []string
	lines = append(lines, f.styles.Title.Render("Issues by ticket count"))
	for _, ir := range result.IssueResults {
		if ir.Count == 0 {
			continue
		}
		tag := ""
		if ir.Metadata.DevFactory != model.DevFactoryNone {
			tag = f.styles.Subtle.Render(" [" + string(ir.Metadata.DevFactory) + "]")
		}
		lines = append(lines, fmt.Sprintf("%-*s %s %s%s",
			nameWidth, ir.Issue,
			f.renderBar(ir.Percentage),
			fmt.Sprintf("%3d (%.1f%%)", ir.Count, ir.Percentage),
			tag))
	}

	return strings.Join(lines, "\n")
}

// FormatComparison renders the week-over-week section.
func (f *Formatter) FormatComparison(result *model.AnalysisResult) string {
	if result == nil || result.Comparison == nil {
		return ""
	}

	var lines []string
	lines = append(lines, f.styles.Title.Render("Change vs prior period (percentage points)"))
	for _, ic := range result.Comparison.IssueComparisons {
		if ic.Current == 0 && ic.Prior == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s: %d → %d (%+.1f pp)",
			f.renderTrend(ic.Trend), ic.Issue, ic.Prior, ic.Current, ic.ChangePercent))
	}

	return strings.Join(lines, "\n")
}

// FormatTopProducts renders the top-product rollup.
func (f *Formatter) FormatTopProducts(result *model.AnalysisResult) string {
	if result == nil || len(result.TopProducts) == 0 {
		return ""
	}

	var lines []string
	lines = append(lines, f.styles.Title.Render("Top product types"))
	for _, p := range result.TopProducts {
		lines = append(lines, fmt.Sprintf("%s: %d tickets (%.1f%%) — most common: %s",
			p.ProductType, p.Count, p.Percentage, p.MostCommonIssue))
	}

	return strings.Join(lines, "\n")
}

// FormatFlagged renders a flagging selection for review.
func (f *Formatter) FormatFlagged(date string, flagged map[string][]model.FlaggedExperience) string {
	groups := flagger.Ordered(flagged)
	if len(groups) == 0 {
		return f.styles.Subtle.Render("Nothing to flag")
	}

	var lines []string
	lines = append(lines, f.styles.Title.Render(fmt.Sprintf("Flagged for QC review (%s)", date)))
	for _, g := range groups {
		lines = append(lines, f.styles.Warning.Render(g.Issue))
		for _, exp := range g.Experiences {
			lines = append(lines, fmt.Sprintf("  %s — %s [%s]",
				exp.InstanceID, exp.TicketName, exp.TicketStatus))
		}
	}
	lines = append(lines, f.styles.Subtle.Render(fmt.Sprintf("%d flagged total", flagger.Total(flagged))))

	return strings.Join(lines, "\n")
}

// renderBar turns a 0-100 percentage into a fixed-width bar.
func (f *Formatter) renderBar(percentage float64) string {
	filled := int(percentage/100*barWidth + 0.5)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	return f.styles.BarFill.Render(strings.Repeat("█", filled)) +
		f.styles.BarEmpty.Render(strings.Repeat("░", barWidth-filled))
}

func (f *Formatter) renderTrend(trend model.Trend) string {
	switch trend {
	case model.TrendUp:
		return f.styles.Up.Render("↑")
	case model.TrendDown:
		return f.styles.Down.Render("↓")
	default:
		return f.styles.Subtle.Render("→")
	}
}
