// Package analysis groups categorized tickets into per-issue buckets and
// computes the rollups and period-over-period comparisons the reports show.
package analysis

import (
	"math"
	"sort"

	"github.com/ekolabs/qc-triage/internal/model"
)

// Options selects what one aggregation run covers.
type Options struct {
	// Preset picks the issue slice and which rollups matter. The overall
	// preset spans the whole configured label set.
	Preset model.AnalysisPreset
	// CustomIssues is the issue list for the custom preset; ignored
	// otherwise.
	CustomIssues []string
	// Prior enables the comparison section when non-nil and the prior
	// period saw at least one ticket.
	Prior *model.PriorPeriod
}

// Aggregator computes AnalysisResults over a label snapshot. It is pure:
// identical inputs produce structurally identical outputs.
type Aggregator struct {
	config *model.IssueConfig
}

// NewAggregator creates an aggregator over the given label snapshot. A nil
// config means the fixed default label set.
func NewAggregator(cfg *model.IssueConfig) *Aggregator {
	if cfg == nil {
		cfg = model.DefaultIssueConfig()
	}
	return &Aggregator{config: cfg}
}

// Aggregate buckets the categorized tickets by issue and derives the full
// result. A multi-label ticket lands in the bucket of every label it
// carries, so per-issue counts may sum past the ticket total; each bucket
// independently answers "how many tickets touched this issue".
func (a *Aggregator) Aggregate(categorized []model.CategorizedTicket, mappings []model.ExperienceMapping, opts Options) *model.AnalysisResult {
	selected := a.selectedIssues(opts)
	overall := opts.Preset.Type == model.AnalysisOverall

	// Buckets in a deterministic order: the selected issues, Uncategorized,
	// then (overall only) any label met in the data that was not selected.
	order := make([]string, 0, len(selected)+1)
	buckets := make(map[string][]model.CategorizedTicket, len(selected)+1)
	addBucket := func(issue string) {
		if _, ok := buckets[issue]; !ok {
			order = append(order, issue)
			buckets[issue] = []model.CategorizedTicket{}
		}
	}
	for _, issue := range selected {
		addBucket(issue)
	}
	addBucket(model.Uncategorized)

	experiencesWithTickets := make(map[string]struct{})
	stuck := 0
	for _, t := range categorized {
		if key := t.ExperienceKey(); key != "" {
			experiencesWithTickets[key] = struct{}{}
		}
		if t.IsStuck() {
			stuck++
		}
		for _, issue := range t.Issues {
			if _, ok := buckets[issue]; !ok {
				if !overall {
					continue
				}
				addBucket(issue)
			}
			buckets[issue] = append(buckets[issue], t)
		}
	}

	totalTickets := len(categorized)
	result := &model.AnalysisResult{
		TotalTickets:        totalTickets,
		ProductsWithTickets: len(experiencesWithTickets),
		StuckCount:          stuck,
		CategoryBreakdown:   make(map[model.CategoryTag]int),
	}

	if len(mappings) > 0 {
		result.TotalProductsReviewed = len(mappings)
		for _, m := range mappings {
			if m.Approved() {
				result.ApprovedExperiences++
			}
		}
	} else {
		result.TotalProductsReviewed = len(experiencesWithTickets)
	}

	if result.ProductsWithTickets > 0 {
		result.TicketsPerExperience = round2(float64(totalTickets) / float64(result.ProductsWithTickets))
	}

	for _, issue := range order {
		tickets := buckets[issue]
		count := len(tickets)
		pct := 0.0
		if totalTickets > 0 {
			pct = float64(count) / float64(totalTickets) * 100
		}
		md := a.config.Metadata(issue)

		result.IssueResults = append(result.IssueResults, model.IssueResult{
			Issue:      issue,
			Tickets:    tickets,
			Count:      count,
			Percentage: pct,
			Metadata:   md,
		})

		if issue == model.Uncategorized {
			result.UncategorizedCount = count
			continue
		}
		result.CategorizedCount += count
		switch md.DevFactory {
		case model.DevFactoryDev:
			result.DevCount += count
		case model.DevFactoryFactory:
			result.FactoryCount += count
		}
		if md.Category != model.CategoryNone {
			result.CategoryBreakdown[md.Category] += count
		}
	}

	// Presentation order is count descending; ties keep bucket order.
	sort.SliceStable(result.IssueResults, func(i, j int) bool {
		return result.IssueResults[i].Count > result.IssueResults[j].Count
	})

	result.SuccessRate = 100.0
	if totalTickets > 0 {
		result.SuccessRate = round2(float64(totalTickets-result.UncategorizedCount) / float64(totalTickets) * 100)
	}

	if opts.Preset.IncludeTopProducts {
		result.TopProducts = TopProductTypes(categorized, defaultTopProducts)
	}

	if opts.Prior != nil && opts.Prior.TotalTickets > 0 {
		result.Comparison = a.compare(result, opts.Prior)
	}

	return result
}

// selectedIssues resolves the issue slice for the run.
func (a *Aggregator) selectedIssues(opts Options) []string {
	switch opts.Preset.Type {
	case model.AnalysisOverall:
		labels := a.config.Labels()
		selected := make([]string, 0, len(labels))
		for _, l := range labels {
			if l != model.Uncategorized {
				selected = append(selected, l)
			}
		}
		return selected
	case model.AnalysisCustom:
		return opts.CustomIssues
	default:
		return opts.Preset.Issues
	}
}

// compare derives the period-over-period deltas. All percent fields except
// TicketChangePercent are percentage-point differences of rates; the ticket
// total has no meaningful rate, so its delta is a relative change.
func (a *Aggregator) compare(result *model.AnalysisResult, prior *model.PriorPeriod) *model.Comparison {
	curTotal := float64(result.TotalTickets)
	priTotal := float64(prior.TotalTickets)

	cmp := &model.Comparison{
		PriorTotalTickets:        prior.TotalTickets,
		PriorApprovedExperiences: prior.ApprovedExperiences,
		PriorProductsReviewed:    prior.ProductsReviewed,
		TicketChange:             result.TotalTickets - prior.TotalTickets,
		TicketChangePercent:      round1(float64(result.TotalTickets-prior.TotalTickets) / priTotal * 100),
		PriorDevCount:            prior.DevCount,
		PriorFactoryCount:        prior.FactoryCount,
		DevChangePercent:         pointDelta(result.DevCount, curTotal, prior.DevCount, priTotal),
		FactoryChangePercent:     pointDelta(result.FactoryCount, curTotal, prior.FactoryCount, priTotal),
		PriorCategoryBreakdown:   make(map[model.CategoryTag]int, len(prior.CategoryBreakdown)),
		CategoryChangePercent:    make(map[model.CategoryTag]float64),
	}
	for tag, count := range prior.CategoryBreakdown {
		cmp.PriorCategoryBreakdown[tag] = count
	}

	for _, tag := range model.CategoryTags() {
		cur, curOK := result.CategoryBreakdown[tag]
		pri, priOK := prior.CategoryBreakdown[tag]
		if !curOK && !priOK {
			continue
		}
		cmp.CategoryChangePercent[tag] = pointDelta(cur, curTotal, pri, priTotal)
	}

	for _, ir := range result.IssueResults {
		priorCount := prior.IssueCounts[ir.Issue]
		change := ir.Count - priorCount
		changePct := pointDelta(ir.Count, curTotal, priorCount, priTotal)

		trend := model.TrendSame
		switch {
		case changePct > 0:
			trend = model.TrendUp
		case changePct < 0:
			trend = model.TrendDown
		}

		cmp.IssueComparisons = append(cmp.IssueComparisons, model.IssueComparison{
			Issue:         ir.Issue,
			Current:       ir.Count,
			Prior:         priorCount,
			Change:        change,
			ChangePercent: changePct,
			Trend:         trend,
		})
	}

	return cmp
}

// Summarize condenses a prior period's categorized tickets and mappings into
// the rollup Aggregate accepts for comparison.
func (a *Aggregator) Summarize(categorized []model.CategorizedTicket, mappings []model.ExperienceMapping) *model.PriorPeriod {
	period := &model.PriorPeriod{
		TotalTickets:      len(categorized),
		IssueCounts:       make(map[string]int),
		CategoryBreakdown: make(map[model.CategoryTag]int),
	}

	experiences := make(map[string]struct{})
	for _, t := range categorized {
		if key := t.ExperienceKey(); key != "" {
			experiences[key] = struct{}{}
		}
		for _, issue := range t.Issues {
			period.IssueCounts[issue]++
			if issue == model.Uncategorized {
				continue
			}
			md := a.config.Metadata(issue)
			switch md.DevFactory {
			case model.DevFactoryDev:
				period.DevCount++
			case model.DevFactoryFactory:
				period.FactoryCount++
			}
			if md.Category != model.CategoryNone {
				period.CategoryBreakdown[md.Category]++
			}
		}
	}

	if len(mappings) > 0 {
		period.ProductsReviewed = len(mappings)
		for _, m := range mappings {
			if m.Approved() {
				period.ApprovedExperiences++
			}
		}
	} else {
		period.ProductsReviewed = len(experiences)
	}

	return period
}

// pointDelta is the percentage-point difference between two rates, rounded
// to one decimal. A zero denominator makes that side's rate zero.
func pointDelta(cur int, curTotal float64, prior int, priorTotal float64) float64 {
	curRate := 0.0
	if curTotal > 0 {
		curRate = float64(cur) / curTotal * 100
	}
	priorRate := 0.0
	if priorTotal > 0 {
		priorRate = float64(prior) / priorTotal * 100
	}
	return round1(curRate - priorRate)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
