package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTickets(t *testing.T) {
	input := `Ticket ID,Ticket Name,Ticket Description,Experience Name,Instance ID,Ticket Status,Backstage Experience Page
t1,Bad copy,grammar error,Chair X,inst-1,Open,https://backstage.eko.com/experiences/123
t2,Blurry video,,Desk Y,inst-2,Done,
`

	tickets, err := ReadTickets(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, tickets, 2)

	assert.Equal(t, "t1", tickets[0].ID)
	assert.Equal(t, "Bad copy", tickets[0].Name)
	assert.Equal(t, "grammar error", tickets[0].Description)
	assert.Equal(t, "Chair X", tickets[0].ExperienceName)
	assert.Equal(t, "inst-1", tickets[0].InstanceID)
	assert.Equal(t, "Open", tickets[0].Status)
	assert.Equal(t, "https://backstage.eko.com/experiences/123", tickets[0].BackstagePage)

	// Absent columns come back empty.
	assert.Empty(t, tickets[1].Description)
	assert.Empty(t, tickets[1].ExperienceID)
	assert.Empty(t, tickets[1].AssociatedExperience)
}

func TestReadTicketsHeaderCase(t *testing.T) {
	input := "TICKET NAME,ticket status\nBad copy,open\n"

	tickets, err := ReadTickets(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, "Bad copy", tickets[0].Name)
	assert.Equal(t, "open", tickets[0].Status)
}

func TestReadTicketsRaggedRows(t *testing.T) {
	// Export tools pad or truncate trailing columns; neither aborts the batch.
	input := "Ticket Name,Ticket Status,Instance ID\nshort row\nfull row,open,inst-1,extra\n"

	tickets, err := ReadTickets(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.Equal(t, "short row", tickets[0].Name)
	assert.Empty(t, tickets[0].Status)
	assert.Equal(t, "inst-1", tickets[1].InstanceID)
}

func TestReadTicketsEmpty(t *testing.T) {
	tickets, err := ReadTickets(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, tickets)
}

func TestReadMappings(t *testing.T) {
	input := `productName,experienceId,assignee,productType,templateName,totalTickets
Chair X,123,reviewer-a,Chairs,standard,0
Desk Y,456,reviewer-b,Desks,standard,3
`

	mappings, err := ReadMappings(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, mappings, 2)

	assert.Equal(t, "Chair X", mappings[0].ProductName)
	assert.Equal(t, "123", mappings[0].ExperienceID)
	assert.Equal(t, "Chairs", mappings[0].ProductType)
	assert.True(t, mappings[0].Approved())
	assert.False(t, mappings[1].Approved())
}

func TestReadTicketsFileMissing(t *testing.T) {
	_, err := ReadTicketsFile("/nonexistent/tickets.csv")
	assert.Error(t, err)
}
