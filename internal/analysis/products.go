package analysis

import (
	"fmt"
	"sort"

	"github.com/ekolabs/qc-triage/internal/model"
)

// defaultTopProducts caps the top-product rollup in the overall report.
const defaultTopProducts = 5

// ConsolidateProductType merges product-type variants that reporting treats
// as one line.
func ConsolidateProductType(productType string) string {
	if productType == "Fishing Rods" || productType == "Fishing Rod & Reel Combos" {
		return "Fishing Rods (All)"
	}
	return productType
}

// TopProductTypes returns the product types with the most tickets, each with
// its most common primary issue. Ticket input order breaks ties, so the
// rollup is deterministic.
func TopProductTypes(categorized []model.CategorizedTicket, limit int) []model.ProductTypeStat {
	type productAgg struct {
		issueCounts map[string]int
		issueOrder  []string
		count       int
	}

	var productOrder []string
	byProduct := make(map[string]*productAgg)

	for _, t := range categorized {
		productType := t.ProductType
		if productType == "" {
			productType = "Unknown"
		}
		productType = ConsolidateProductType(productType)

		agg, ok := byProduct[productType]
		if !ok {
			agg = &productAgg{issueCounts: make(map[string]int)}
			byProduct[productType] = agg
			productOrder = append(productOrder, productType)
		}
		agg.count++

		issue := t.PrimaryIssue()
		if _, seen := agg.issueCounts[issue]; !seen {
			agg.issueOrder = append(agg.issueOrder, issue)
		}
		agg.issueCounts[issue]++
	}

	total := len(categorized)
	stats := make([]model.ProductTypeStat, 0, len(productOrder))
	for _, productType := range productOrder {
		agg := byProduct[productType]

		topIssue := ""
		topCount := 0
		for _, issue := range agg.issueOrder {
			if agg.issueCounts[issue] > topCount {
				topCount = agg.issueCounts[issue]
				topIssue = fmt.Sprintf("%s (%d)", issue, topCount)
			}
		}

		pct := 0.0
		if total > 0 {
			pct = float64(agg.count) / float64(total) * 100
		}
		stats = append(stats, model.ProductTypeStat{
			ProductType:     productType,
			Count:           agg.count,
			Percentage:      pct,
			MostCommonIssue: topIssue,
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})
	if limit > 0 && len(stats) > limit {
		stats = stats[:limit]
	}
	return stats
}
