package model

// AnalysisType selects which slice of the label set a report covers.
type AnalysisType string

// Built-in analysis types.
const (
	AnalysisOverall    AnalysisType = "overall"
	AnalysisDimensions AnalysisType = "dimensions"
	AnalysisFactory    AnalysisType = "factory"
	AnalysisLabel      AnalysisType = "label"
	AnalysisCustom     AnalysisType = "custom"
)

// AnalysisPreset describes one report flavor: which issues it covers and
// which rollups it renders.
type AnalysisPreset struct {
	Type               AnalysisType
	Name               string
	Description        string
	Issues             []string
	IncludeDevFactory  bool
	IncludeCategory    bool
	IncludeTopProducts bool
}

var presets = map[AnalysisType]AnalysisPreset{
	AnalysisOverall: {
		Type:               AnalysisOverall,
		Name:               "Overall Analysis",
		Description:        "Full report across the whole label set",
		IncludeDevFactory:  true,
		IncludeCategory:    true,
		IncludeTopProducts: true,
	},
	AnalysisDimensions: {
		Type:        AnalysisDimensions,
		Name:        "Dimensions Specific Analysis",
		Description: "Only dimension value issues",
		Issues: []string{
			"Incorrect dimension values",
			"Dimensions - mixed values",
			"Missing dimension values",
		},
	},
	AnalysisFactory: {
		Type:        AnalysisFactory,
		Name:        "Factory Specific Analysis",
		Description: "Factory and production issues",
		Issues: []string{
			"Action video edit",
			"Action video framing",
			"Bad close up sequence - bad framing",
			"Bad close up sequence - repetitive edits",
			"Bad label - framing",
			"Bad label - set up",
			"Bad unbox artifact",
			"Blurry/out of focus video",
			"Damage/dirty plate",
			"Damaged product",
			"Dimensions using a set shot",
			"Feature crop",
			"Incorrect dimension values",
			"Missing dimension values",
			"Missing set in intro/360",
			"Off centered / Off axis",
			"Reflections on product",
		},
	},
	AnalysisLabel: {
		Type:        AnalysisLabel,
		Name:        "Label Specific Analysis",
		Description: "Label issues only",
		Issues: []string{
			"Bad label - framing",
			"Bad label - set up",
		},
	},
	AnalysisCustom: {
		Type:               AnalysisCustom,
		Name:               "Custom Analysis",
		Description:        "Caller-selected issues",
		IncludeDevFactory:  true,
		IncludeCategory:    true,
		IncludeTopProducts: true,
	},
}

// PresetFor returns the preset for an analysis type. The overall and custom
// presets carry no issue list of their own: overall spans the configured
// label set and custom takes the caller's list.
func PresetFor(t AnalysisType) (AnalysisPreset, bool) {
	p, ok := presets[t]
	if !ok {
		return AnalysisPreset{}, false
	}
	out := p
	out.Issues = make([]string, len(p.Issues))
	copy(out.Issues, p.Issues)
	return out, true
}

// IssueResult is one row of the aggregation: a label, the tickets assigned
// to it, and its share of the total ticket count.
type IssueResult struct {
	Issue      string
	Tickets    []CategorizedTicket
	Count      int
	Percentage float64
	Metadata   IssueMetadata
}

// Trend is the direction of a week-over-week share shift.
type Trend string

// Trend values.
const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendSame Trend = "same"
)

// IssueComparison diffs one issue against the prior period. ChangePercent is
// a percentage-point difference of rates, not a relative change: share
// shifts stay meaningful when total volume moves between periods.
type IssueComparison struct {
	Issue         string
	Current       int
	Prior         int
	Change        int
	ChangePercent float64
	Trend         Trend
}

// Comparison holds the prior period's rollup plus the derived deltas.
type Comparison struct {
	PriorTotalTickets        int
	PriorApprovedExperiences int
	PriorProductsReviewed    int
	TicketChange             int
	TicketChangePercent      float64
	IssueComparisons         []IssueComparison
	PriorDevCount            int
	PriorFactoryCount        int
	DevChangePercent         float64
	FactoryChangePercent     float64
	PriorCategoryBreakdown   map[CategoryTag]int
	CategoryChangePercent    map[CategoryTag]float64
}

// PriorPeriod is the condensed rollup of an earlier export pair, enough to
// compute a Comparison without keeping the period's tickets around.
type PriorPeriod struct {
	TotalTickets        int
	ApprovedExperiences int
	ProductsReviewed    int
	IssueCounts         map[string]int
	DevCount            int
	FactoryCount        int
	CategoryBreakdown   map[CategoryTag]int
}

// ProductTypeStat is one row of the top-product rollup.
type ProductTypeStat struct {
	ProductType     string
	Count           int
	Percentage      float64
	MostCommonIssue string
}

// AnalysisResult is the full output of one aggregation run.
type AnalysisResult struct {
	TotalTickets          int
	TotalProductsReviewed int
	ApprovedExperiences   int
	ProductsWithTickets   int
	TicketsPerExperience  float64
	CategorizedCount      int
	UncategorizedCount    int
	StuckCount            int
	SuccessRate           float64
	IssueResults          []IssueResult
	DevCount              int
	FactoryCount          int
	CategoryBreakdown     map[CategoryTag]int
	TopProducts           []ProductTypeStat
	Comparison            *Comparison
}
