package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekolabs/qc-triage/internal/model"
)

func TestProcess(t *testing.T) {
	tickets := []model.Ticket{
		{
			ID:            "t1",
			Name:          "Bad copy",
			BackstagePage: "https://backstage.eko.com/experiences/45493255314?tab=qa",
		},
		{
			ID:   "t2",
			Name: "completely unknown problem",
		},
	}
	mappings := []model.ExperienceMapping{
		{
			ExperienceID: "45493255314",
			Assignee:     "reviewer-a",
			ProductType:  "Chairs",
			TemplateName: "standard",
		},
	}

	out := NewProcessor(nil).Process(tickets, mappings)
	require.Len(t, out, 2)

	assert.Equal(t, "t1", out[0].ID)
	assert.Equal(t, []string{"Bad copy"}, out[0].Issues)
	assert.Equal(t, "45493255314", out[0].ExperienceRef)
	assert.Equal(t, "https://app.eko.com/public/experiences/45493255314", out[0].PublicPreviewLink)
	assert.Equal(t, "reviewer-a", out[0].Reviewer)
	assert.Equal(t, "Chairs", out[0].ProductType)
	assert.Equal(t, "standard", out[0].TemplateName)

	// No backstage URL means no join, and the classifier falls back.
	assert.Equal(t, "t2", out[1].ID)
	assert.Equal(t, []string{model.Uncategorized}, out[1].Issues)
	assert.Empty(t, out[1].ExperienceRef)
	assert.Empty(t, out[1].Reviewer)
}

func TestProcessUnmatchedExperience(t *testing.T) {
	tickets := []model.Ticket{
		{Name: "Bad copy", BackstagePage: "https://backstage.eko.com/experiences/999"},
	}

	out := NewProcessor(nil).Process(tickets, nil)
	require.Len(t, out, 1)

	// The ID still extracts even without a mapping row.
	assert.Equal(t, "999", out[0].ExperienceRef)
	assert.Equal(t, "https://app.eko.com/public/experiences/999", out[0].PublicPreviewLink)
	assert.Empty(t, out[0].ProductType)
}

func TestProcessProgress(t *testing.T) {
	tickets := []model.Ticket{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	var calls []int
	p := NewProcessor(nil)
	p.OnProgress = func(done, total int) {
		assert.Equal(t, 3, total)
		calls = append(calls, done)
	}

	p.Process(tickets, nil)
	assert.Equal(t, []int{1, 2, 3}, calls)
}

func TestExtractExperienceID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"plain url", "https://backstage.eko.com/experiences/123456", "123456"},
		{"with query", "https://backstage.eko.com/experiences/123456?tab=qa", "123456"},
		{"with trailing path", "https://backstage.eko.com/experiences/123456/edit", "123456"},
		{"no id", "https://backstage.eko.com/experiences/", ""},
		{"unrelated url", "https://example.com/foo", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractExperienceID(tt.url))
		})
	}
}
