package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllIssues(t *testing.T) {
	issues := AllIssues()
	require.NotEmpty(t, issues)
	assert.Equal(t, Uncategorized, issues[len(issues)-1])

	// Mutating the copy must not leak into the package set.
	issues[0] = "mutated"
	assert.NotEqual(t, "mutated", AllIssues()[0])
}

func TestEveryIssueHasMetadata(t *testing.T) {
	for _, issue := range AllIssues() {
		_, ok := defaultMetadata[issue]
		assert.True(t, ok, issue)
	}
}

func TestFlaggableIssuesAreKnown(t *testing.T) {
	known := make(map[string]bool)
	for _, issue := range AllIssues() {
		known[issue] = true
	}
	for _, issue := range FlaggableIssues() {
		assert.True(t, known[issue], issue)
		assert.True(t, IsFlaggable(issue))
	}
	assert.False(t, IsFlaggable("Bad copy"))
	assert.False(t, IsFlaggable(Uncategorized))
}

func TestNewIssueConfig(t *testing.T) {
	cfg := NewIssueConfig([]string{"Alpha", "alpha", "", "Beta"}, map[string]IssueMetadata{
		"Beta": {DevFactory: DevFactoryDev, Category: CategoryCopy},
	})

	// Case-insensitive duplicates and empties are dropped.
	assert.Equal(t, []string{"Alpha", "Beta"}, cfg.Labels())

	name, ok := cfg.Canonical("  ALPHA ")
	require.True(t, ok)
	assert.Equal(t, "Alpha", name)

	_, ok = cfg.Canonical("gamma")
	assert.False(t, ok)

	assert.Equal(t, DevFactoryDev, cfg.Metadata("Beta").DevFactory)
	assert.Equal(t, IssueMetadata{}, cfg.Metadata("Alpha"))
}

func TestDefaultIssueConfig(t *testing.T) {
	cfg := DefaultIssueConfig()
	assert.Equal(t, AllIssues(), cfg.Labels())
	assert.Equal(t, DevFactoryDev, cfg.Metadata("BBOX issue").DevFactory)
	assert.Equal(t, CategoryBBox, cfg.Metadata("BBOX issue").Category)
	assert.NotEmpty(t, cfg.Metadata("BBOX issue").Comment)
	assert.Empty(t, cfg.Metadata(Uncategorized).Comment)
}

func TestPresetFor(t *testing.T) {
	preset, ok := PresetFor(AnalysisDimensions)
	require.True(t, ok)
	assert.Len(t, preset.Issues, 3)

	// The returned issue slice is a copy.
	preset.Issues[0] = "mutated"
	again, _ := PresetFor(AnalysisDimensions)
	assert.NotEqual(t, "mutated", again.Issues[0])

	_, ok = PresetFor(AnalysisType("bogus"))
	assert.False(t, ok)

	overall, ok := PresetFor(AnalysisOverall)
	require.True(t, ok)
	assert.Empty(t, overall.Issues)
	assert.True(t, overall.IncludeDevFactory)
	assert.True(t, overall.IncludeTopProducts)
}
