package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExperienceKey(t *testing.T) {
	tests := []struct {
		name   string
		ticket Ticket
		want   string
	}{
		{"experience id wins", Ticket{ExperienceID: "123", AssociatedExperience: "assoc", ExperienceName: "name"}, "123"},
		{"associated experience next", Ticket{AssociatedExperience: "assoc", ExperienceName: "name"}, "assoc"},
		{"experience name last", Ticket{ExperienceName: "name"}, "name"},
		{"all empty", Ticket{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ticket.ExperienceKey())
		})
	}
}

func TestIsResolved(t *testing.T) {
	assert.True(t, Ticket{Status: "Done"}.IsResolved())
	assert.True(t, Ticket{Status: "resolved"}.IsResolved())
	assert.False(t, Ticket{Status: "Open"}.IsResolved())
	assert.False(t, Ticket{Status: "stuck"}.IsResolved())
	assert.False(t, Ticket{}.IsResolved())
}

func TestIsStuck(t *testing.T) {
	assert.True(t, Ticket{Status: "Stuck"}.IsStuck())
	assert.False(t, Ticket{Status: "open"}.IsStuck())
}

func TestApproved(t *testing.T) {
	tests := []struct {
		name  string
		total string
		want  bool
	}{
		{"zero", "0", true},
		{"zero with spaces", " 0 ", true},
		{"nonzero", "3", false},
		{"float", "2.0", false},
		{"empty degrades to approved", "", true},
		{"garbage degrades to approved", "n/a", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ExperienceMapping{TotalTickets: tt.total}
			assert.Equal(t, tt.want, m.Approved())
		})
	}
}

func TestPrimaryIssue(t *testing.T) {
	assert.Equal(t, "Bad copy", CategorizedTicket{Issues: []string{"Bad copy", "BBOX issue"}}.PrimaryIssue())
	assert.Equal(t, Uncategorized, CategorizedTicket{}.PrimaryIssue())
}
