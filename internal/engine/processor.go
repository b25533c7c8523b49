// Package engine turns raw ticket exports into categorized tickets: it runs
// the classifier per ticket and joins in the experience-mapping fields.
package engine

import (
	"regexp"
	"strings"

	"github.com/ekolabs/qc-triage/internal/model"
	"github.com/ekolabs/qc-triage/internal/rules"
)

// experienceIDPattern extracts the numeric experience ID from a backstage
// page URL, e.g. https://backstage.eko.com/experiences/45493255314.
var experienceIDPattern = regexp.MustCompile(`/experiences/(\d+)`)

// publicPreviewBase is the canonical public preview URL prefix.
const publicPreviewBase = "https://app.eko.com/public/experiences/"

// Processor enriches raw tickets into CategorizedTickets.
type Processor struct {
	classifier *rules.Classifier

	// OnProgress, when set, is called after each processed ticket with the
	// number done and the total. Used by the CLI for progress display.
	OnProgress func(done, total int)
}

// NewProcessor creates a processor using the given classifier.
func NewProcessor(classifier *rules.Classifier) *Processor {
	if classifier == nil {
		classifier = rules.NewClassifier(nil)
	}
	return &Processor{classifier: classifier}
}

// Process categorizes every ticket and joins mapping fields by experience
// ID. Output order matches input order, one record per input ticket no
// matter how many labels it carries. Malformed rows degrade to empty fields
// and are never dropped.
func (p *Processor) Process(tickets []model.Ticket, mappings []model.ExperienceMapping) []model.CategorizedTicket {
	byExperienceID := make(map[string]model.ExperienceMapping, len(mappings))
	for _, m := range mappings {
		if id := strings.TrimSpace(m.ExperienceID); id != "" {
			byExperienceID[id] = m
		}
	}

	out := make([]model.CategorizedTicket, 0, len(tickets))
	for i, t := range tickets {
		ct := model.CategorizedTicket{
			Ticket: t,
			Issues: p.classifier.Classify(t),
		}

		if id := ExtractExperienceID(t.BackstagePage); id != "" {
			ct.ExperienceRef = id
			ct.PublicPreviewLink = publicPreviewBase + id
			if m, ok := byExperienceID[id]; ok {
				ct.Reviewer = m.Assignee
				ct.ProductType = m.ProductType
				ct.TemplateName = m.TemplateName
			}
		}

		out = append(out, ct)
		if p.OnProgress != nil {
			p.OnProgress(i+1, len(tickets))
		}
	}
	return out
}

// ExtractExperienceID pulls the numeric experience ID out of a backstage
// URL, or returns "" when the URL has none.
func ExtractExperienceID(url string) string {
	if url == "" {
		return ""
	}
	m := experienceIDPattern.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}
