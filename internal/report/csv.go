package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ekolabs/qc-triage/internal/model"
)

// WriteCSV writes the per-issue rows of a result as CSV, the same shape the
// spreadsheet hand-off uses. Comparison columns appear only when the result
// carries a comparison.
func WriteCSV(w io.Writer, result *model.AnalysisResult) error {
	if result == nil {
		return fmt.Errorf("nil analysis result")
	}

	cw := csv.NewWriter(w)

	hasComparison := result.Comparison != nil
	header := []string{"Issue", "Count", "Percentage", "Dev/Factory", "Category", "Comment"}
	if hasComparison {
		header = append(header, "Prior Count", "Change", "Change (pp)", "Trend")
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	priorByIssue := make(map[string]model.IssueComparison)
	if hasComparison {
		for _, ic := range result.Comparison.IssueComparisons {
			priorByIssue[ic.Issue] = ic
		}
	}

	for _, ir := range result.IssueResults {
		row := []string{
			ir.Issue,
			fmt.Sprintf("%d", ir.Count),
			fmt.Sprintf("%.1f%%", ir.Percentage),
			string(ir.Metadata.DevFactory),
			string(ir.Metadata.Category),
			ir.Metadata.Comment,
		}
		if hasComparison {
			ic := priorByIssue[ir.Issue]
			row = append(row,
				fmt.Sprintf("%d", ic.Prior),
				fmt.Sprintf("%+d", ic.Change),
				fmt.Sprintf("%+.1f", ic.ChangePercent),
				trendArrow(ic.Trend),
			)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func trendArrow(trend model.Trend) string {
	switch trend {
	case model.TrendUp:
		return "↑"
	case model.TrendDown:
		return "↓"
	default:
		return "→"
	}
}
