package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ekolabs/qc-triage/internal/model"
)

func TestClassifyExactName(t *testing.T) {
	tests := []struct {
		name   string
		ticket model.Ticket
		want   []string
	}{
		{
			name:   "exact label name",
			ticket: model.Ticket{Name: "BBOX issue"},
			want:   []string{"BBOX issue"},
		},
		{
			name:   "exact match is case insensitive",
			ticket: model.Ticket{Name: "bad copy"},
			want:   []string{"Bad copy"},
		},
		{
			name:   "exact match trims whitespace",
			ticket: model.Ticket{Name: "  Visual glitches  "},
			want:   []string{"Visual glitches"},
		},
		{
			name:   "exact match wins over description keywords",
			ticket: model.Ticket{Name: "Bad copy", Description: "the video is blurry"},
			want:   []string{"Bad copy"},
		},
	}

	classifier := NewClassifier(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.Classify(tt.ticket))
		})
	}
}

func TestClassifyMultiIssue(t *testing.T) {
	tests := []struct {
		name   string
		ticket model.Ticket
		want   []string
	}{
		{
			name:   "two labels",
			ticket: model.Ticket{Name: "BBOX issue; Bad copy"},
			want:   []string{"BBOX issue", "Bad copy"},
		},
		{
			name:   "unknown parts are dropped",
			ticket: model.Ticket{Name: "BBOX issue; please check asap"},
			want:   []string{"BBOX issue"},
		},
		{
			name:   "semicolon without labels falls through to the cascade",
			ticket: model.Ticket{Name: "weird; video looks blurry"},
			want:   []string{"Blurry/out of focus video"},
		},
	}

	classifier := NewClassifier(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.Classify(tt.ticket))
		})
	}
}

func TestClassifyCascade(t *testing.T) {
	tests := []struct {
		name   string
		ticket model.Ticket
		want   string
	}{
		// visual/background family
		{"bbox keyword", model.Ticket{Name: "White obstruction over product"}, "BBOX issue"},
		{"visible stage", model.Ticket{Name: "Stage visible in intro"}, "Visible stage / equipment"},
		{"glitch", model.Ticket{Name: "Glitchy background on spin"}, "Visual glitches"},
		{"white product", model.Ticket{Name: "Product blends with background"}, "Color correction - white product"},
		{"exposure", model.Ticket{Name: "Video is too dark"}, "Color correction - other"},

		// label family
		{"label framing", model.Ticket{Name: "Label is cropped", Description: "label not fully visible"}, "Bad label - framing"},
		{"label set up", model.Ticket{Name: "Label angle wrong"}, "Bad label - set up"},
		{"label artifact", model.Ticket{Name: "Label video issue"}, "Bad label artifact"},

		// close up family
		{"cu framing", model.Ticket{Name: "CU sequence issue", Description: "bad framing"}, "Bad close up sequence - bad framing"},
		{"cu repetitive", model.Ticket{Name: "Close up sequence", Description: "repetitive edits"}, "Bad close up sequence - repetitive edits"},
		{"cu plain", model.Ticket{Name: "Close up looks off"}, "Bad close up sequence"},

		// copy family
		{"repetitive copy", model.Ticket{Name: "Repetitive copies"}, "Repetitive copy"},
		{"bad copy keywords", model.Ticket{Name: "Text issue", Description: "grammar error in feature"}, "Bad copy"},

		// action video family
		{"action edit", model.Ticket{Name: "Action video issue"}, "Action video edit"},
		{"action framing", model.Ticket{Name: "Action shot framing is off"}, "Action video framing"},
		{"action color", model.Ticket{Name: "Action shot needs color fix"}, "Color correction - Action shot"},

		// unbox
		{"unbox", model.Ticket{Name: "Unbox shot broken"}, "Bad unbox artifact"},

		// other family
		{"date code", model.Ticket{Name: "LOT number visible on pack"}, "Date code/LOT number shown"},
		{"black frames", model.Ticket{Name: "Black frame at end of video"}, "Black frames in video"},
		{"blurry", model.Ticket{Name: "Video out of focus"}, "Blurry/out of focus video"},
		{"dirty plate", model.Ticket{Name: "Dirty background in 360"}, "Damage/dirty plate"},
		{"damaged", model.Ticket{Name: "Product is damaged on one side"}, "Damaged product"},
		{"reflection", model.Ticket{Name: "Strong glare on the bottle"}, "Reflections on product"},
		{"missing set", model.Ticket{Name: "Multi-pack issue in intro"}, "Missing set in intro/360"},
		{"off center", model.Ticket{Name: "Product not centered"}, "Off centered / Off axis"},
		{"feature crop", model.Ticket{Name: "Feature text cut off"}, "Feature crop"},
		{"pdp", model.Ticket{Name: "PDP mismatch with product"}, "PDP mismatch"},
		{"360 loop", model.Ticket{Name: "360 has a visible jump"}, "Un-seamless 360 loop"},

		// dimensions run last
		{"incorrect dims", model.Ticket{Name: "Wrong dimension values"}, "Incorrect dimension values"},
		{"mixed dims", model.Ticket{Name: "Dimensions use mixed units", Description: "measurement formats differ"}, "Dimensions - mixed values"},
		{"missing dims", model.Ticket{Name: "Missing dimension values"}, "Missing dimension values"},
		{"dims default", model.Ticket{Name: "Dimension check needed"}, "Incorrect dimension values"},

		// fallback
		{"no match", model.Ticket{Name: "xyz123"}, model.Uncategorized},
		{"empty ticket", model.Ticket{}, model.Uncategorized},
	}

	classifier := NewClassifier(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, []string{tt.want}, classifier.Classify(tt.ticket))
		})
	}
}

// The cascade order is a tie-break: a ticket that mentions both a visual
// defect and dimensions must land on the visual defect.
func TestClassifyOrdering(t *testing.T) {
	tests := []struct {
		name   string
		ticket model.Ticket
		want   string
	}{
		{
			name:   "blurry beats dimensions",
			ticket: model.Ticket{Name: "Dimension issue", Description: "the dimension shot is blurry"},
			want:   "Blurry/out of focus video",
		},
		{
			name:   "bbox beats everything",
			ticket: model.Ticket{Name: "Blurry bbox", Description: "dimension values wrong"},
			want:   "BBOX issue",
		},
		{
			name:   "label beats copy",
			ticket: model.Ticket{Name: "Label framing", Description: "grammar error too"},
			want:   "Bad label - framing",
		},
	}

	classifier := NewClassifier(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, []string{tt.want}, classifier.Classify(tt.ticket))
		})
	}
}

func TestClassifyCustomLabels(t *testing.T) {
	labels := append(model.AllIssues(), "Wobbly stand")
	classifier := NewClassifier(model.NewIssueConfig(labels, nil))

	assert.Equal(t, []string{"Wobbly stand"}, classifier.Classify(model.Ticket{Name: "wobbly stand"}))
	assert.Equal(t, []string{"Wobbly stand", "Bad copy"},
		classifier.Classify(model.Ticket{Name: "Wobbly stand; Bad copy"}))
}
