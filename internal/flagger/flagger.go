// Package flagger selects unresolved tickets for the manual QC-review queue.
package flagger

import (
	"strings"

	"github.com/ekolabs/qc-triage/internal/model"
)

// DefaultMaxPerIssue caps how many experiences one issue collects.
const DefaultMaxPerIssue = 3

// Select picks up to maxPerIssue experiences per flaggable issue from
// tickets that are not yet resolved and carry an instance ID. An instance is
// flagged at most once across all issues, including across the labels of a
// multi-label ticket; a ticket that only hits full buckets stays eligible
// under its remaining labels. Input order is preserved, so the selection is
// deterministic.
func Select(categorized []model.CategorizedTicket, maxPerIssue int) map[string][]model.FlaggedExperience {
	if maxPerIssue <= 0 {
		maxPerIssue = DefaultMaxPerIssue
	}

	flagged := make(map[string][]model.FlaggedExperience)
	for _, issue := range model.FlaggableIssues() {
		flagged[issue] = []model.FlaggedExperience{}
	}

	seen := make(map[string]struct{})
	for _, t := range categorized {
		instanceID := strings.TrimSpace(t.InstanceID)
		if instanceID == "" {
			continue
		}
		if _, dup := seen[instanceID]; dup {
			continue
		}
		if t.IsResolved() {
			continue
		}

		for _, issue := range t.Issues {
			if !model.IsFlaggable(issue) {
				continue
			}
			if len(flagged[issue]) >= maxPerIssue {
				continue
			}
			flagged[issue] = append(flagged[issue], model.FlaggedExperience{
				InstanceID:        instanceID,
				Issue:             issue,
				ExperienceName:    t.ExperienceName,
				TicketName:        t.Name,
				TicketStatus:      t.Status,
				TicketDescription: t.Description,
				BackstageLink:     t.BackstagePage,
			})
			seen[instanceID] = struct{}{}
			break
		}
	}

	return flagged
}

// IssueFlags is one issue's slice of the flagging selection.
type IssueFlags struct {
	Issue       string
	Experiences []model.FlaggedExperience
}

// Ordered flattens a selection into the canonical flaggable-issue order,
// skipping issues that collected nothing.
func Ordered(flagged map[string][]model.FlaggedExperience) []IssueFlags {
	var out []IssueFlags
	for _, issue := range model.FlaggableIssues() {
		if exps := flagged[issue]; len(exps) > 0 {
			out = append(out, IssueFlags{Issue: issue, Experiences: exps})
		}
	}
	return out
}

// Total counts the flagged experiences across all issues.
func Total(flagged map[string][]model.FlaggedExperience) int {
	n := 0
	for _, exps := range flagged {
		n += len(exps)
	}
	return n
}
