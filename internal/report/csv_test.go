package report

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekolabs/qc-triage/internal/model"
)

func TestWriteCSV(t *testing.T) {
	result := &model.AnalysisResult{
		TotalTickets: 4,
		IssueResults: []model.IssueResult{
			{
				Issue:      "Bad copy",
				Count:      3,
				Percentage: 75.0,
				Metadata:   model.IssueMetadata{DevFactory: model.DevFactoryDev, Category: model.CategoryCopy},
			},
			{Issue: model.Uncategorized, Count: 1, Percentage: 25.0},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, result))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Issue", "Count", "Percentage", "Dev/Factory", "Category", "Comment"}, rows[0])
	assert.Equal(t, []string{"Bad copy", "3", "75.0%", "DEV", "COPY", ""}, rows[1])
	assert.Equal(t, []string{model.Uncategorized, "1", "25.0%", "", "", ""}, rows[2])
}

func TestWriteCSVWithComparison(t *testing.T) {
	result := &model.AnalysisResult{
		TotalTickets: 10,
		IssueResults: []model.IssueResult{
			{Issue: "Bad copy", Count: 5, Percentage: 50.0},
		},
		Comparison: &model.Comparison{
			IssueComparisons: []model.IssueComparison{
				{Issue: "Bad copy", Current: 5, Prior: 2, Change: 3, ChangePercent: 30.0, Trend: model.TrendUp},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, result))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{"Issue", "Count", "Percentage", "Dev/Factory", "Category", "Comment",
		"Prior Count", "Change", "Change (pp)", "Trend"}, rows[0])
	assert.Equal(t, []string{"Bad copy", "5", "50.0%", "", "", "", "2", "+3", "+30.0", "↑"}, rows[1])
}

func TestWriteCSVNilResult(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteCSV(&buf, nil))
}
