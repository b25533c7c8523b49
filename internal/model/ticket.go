// Package model defines the data types shared across the triage pipeline.
package model

import (
	"strconv"
	"strings"
)

// Ticket is a single row of a support ticket export. Fields missing from the
// source file are empty strings; the pipeline never rejects a row for that.
type Ticket struct {
	ID                   string
	Name                 string
	Description          string
	ExperienceName       string
	ExperienceID         string
	InstanceID           string
	Status               string
	Assignee             string
	AssociatedExperience string
	BackstagePage        string
}

// ExperienceKey returns the first non-empty experience identifier, checking
// the alias fields in the same order the export tools populate them.
func (t Ticket) ExperienceKey() string {
	for _, v := range []string{t.ExperienceID, t.AssociatedExperience, t.ExperienceName} {
		if v != "" {
			return v
		}
	}
	return ""
}

// IsResolved reports whether the ticket has been closed out.
func (t Ticket) IsResolved() bool {
	switch strings.ToLower(t.Status) {
	case "done", "resolved":
		return true
	}
	return false
}

// IsStuck reports whether the ticket is blocked waiting on someone.
func (t Ticket) IsStuck() bool {
	return strings.EqualFold(t.Status, "stuck")
}

// ExperienceMapping is a single row of the reviewed-experience export.
type ExperienceMapping struct {
	ProductName  string
	ExperienceID string
	Assignee     string
	ProductType  string
	TemplateName string
	TotalTickets string
}

// Approved reports whether the experience passed review with zero tickets.
// An unparseable or empty TotalTickets value degrades to zero, which the
// export format treats as approved.
func (m ExperienceMapping) Approved() bool {
	v, err := strconv.ParseFloat(strings.TrimSpace(m.TotalTickets), 64)
	if err != nil {
		return true
	}
	return v == 0
}

// CategorizedTicket is a Ticket enriched with its issue labels and the
// fields joined in from the matching ExperienceMapping. Built once per input
// ticket; multi-label tickets stay a single record with all labels attached.
type CategorizedTicket struct {
	Ticket
	Issues            []string // never empty; primary label first
	Reviewer          string
	ProductType       string
	TemplateName      string
	ExperienceRef     string // numeric ID extracted from the backstage URL
	PublicPreviewLink string
}

// PrimaryIssue returns the first assigned label.
func (c CategorizedTicket) PrimaryIssue() string {
	if len(c.Issues) == 0 {
		return Uncategorized
	}
	return c.Issues[0]
}

// FlaggedExperience is one entry of the manual QC-review queue.
type FlaggedExperience struct {
	InstanceID        string
	Issue             string
	ExperienceName    string
	TicketName        string
	TicketStatus      string
	TicketDescription string
	BackstageLink     string
}
