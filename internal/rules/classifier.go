// Package rules implements the ordered text-matching cascade that assigns
// issue labels to raw tickets.
package rules

import (
	"strings"

	"github.com/ekolabs/qc-triage/internal/model"
)

// Classifier assigns one or more issue labels to a ticket. It is pure and
// safe to call repeatedly; it never panics and never returns an empty list.
type Classifier struct {
	config  *model.IssueConfig
	cascade []rule
}

// rule is one step of the cascade. match receives the combined lowercased
// name+description text and the lowercased ticket name, and returns a label
// or "" when the step does not apply. Steps run in slice order and the first
// label wins.
type rule struct {
	match func(text, name string) string
	name  string
}

// NewClassifier builds a classifier over the given label snapshot. A nil
// config means the fixed default label set.
func NewClassifier(cfg *model.IssueConfig) *Classifier {
	if cfg == nil {
		cfg = model.DefaultIssueConfig()
	}
	return &Classifier{config: cfg, cascade: cascade()}
}

// Classify returns the issue labels for a ticket.
//
// Two checks pre-empt the cascade entirely: a semicolon-separated name whose
// parts name labels verbatim, and a name that is itself a label verbatim.
// After that the cascade runs in priority order over the combined lowercased
// name+description, first match wins, with dimension checks deliberately
// last: dimension keywords co-occur with visual defects that must win the
// tie. Falls back to Uncategorized.
func (c *Classifier) Classify(t model.Ticket) []string {
	if labels := c.splitMultiIssue(t.Name); len(labels) > 0 {
		return labels
	}
	if label, ok := c.config.Canonical(t.Name); ok {
		return []string{label}
	}

	text := strings.ToLower(t.Name + " " + t.Description)
	name := strings.ToLower(t.Name)
	for _, r := range c.cascade {
		if label := r.match(text, name); label != "" {
			return []string{label}
		}
	}
	return []string{model.Uncategorized}
}

// splitMultiIssue handles names like "BBOX issue; Bad copy": every part that
// names a label verbatim is collected, everything else is ignored.
func (c *Classifier) splitMultiIssue(ticketName string) []string {
	if !strings.Contains(ticketName, ";") {
		return nil
	}
	var labels []string
	for _, part := range strings.Split(ticketName, ";") {
		if label, ok := c.config.Canonical(part); ok {
			labels = append(labels, label)
		}
	}
	return labels
}

// containsAny reports whether s contains at least one of the substrings.
func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
