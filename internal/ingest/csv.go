// Package ingest reads ticket and experience exports from CSV files with
// header-based column mapping. Columns the export tool omits come back as
// empty strings; a short or odd row never aborts the batch.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ekolabs/qc-triage/internal/model"
)

// Ticket export column headers.
const (
	colTicketID             = "ticket id"
	colTicketName           = "ticket name"
	colTicketDescription    = "ticket description"
	colExperienceName       = "experience name"
	colExperienceID         = "experience id"
	colInstanceID           = "instance id"
	colTicketStatus         = "ticket status"
	colAssignee             = "assignee"
	colAssociatedExperience = "associated experience"
	colBackstagePage        = "backstage experience page"
)

// Mapping export column headers.
const (
	colProductName  = "productname"
	colMapExpID     = "experienceid"
	colMapAssignee  = "assignee"
	colProductType  = "producttype"
	colTemplateName = "templatename"
	colTotalTickets = "totaltickets"
)

// table is a parsed CSV with case-insensitive header lookup.
type table struct {
	index map[string]int
	rows  [][]string
}

func readTable(r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // exports often have ragged trailing columns
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) == 0 {
		return &table{index: map[string]int{}}, nil
	}

	index := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return &table{index: index, rows: records[1:]}, nil
}

// cell returns the named column of a row, or "" when the column or value is
// absent.
func (t *table) cell(row []string, header string) string {
	i, ok := t.index[header]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// ReadTickets parses a ticket export.
func ReadTickets(r io.Reader) ([]model.Ticket, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}

	tickets := make([]model.Ticket, 0, len(t.rows))
	for _, row := range t.rows {
		if len(row) == 0 {
			continue
		}
		tickets = append(tickets, model.Ticket{
			ID:                   t.cell(row, colTicketID),
			Name:                 t.cell(row, colTicketName),
			Description:          t.cell(row, colTicketDescription),
			ExperienceName:       t.cell(row, colExperienceName),
			ExperienceID:         t.cell(row, colExperienceID),
			InstanceID:           t.cell(row, colInstanceID),
			Status:               t.cell(row, colTicketStatus),
			Assignee:             t.cell(row, colAssignee),
			AssociatedExperience: t.cell(row, colAssociatedExperience),
			BackstagePage:        t.cell(row, colBackstagePage),
		})
	}

	slog.Debug("parsed ticket export", "rows", len(tickets))
	return tickets, nil
}

// ReadMappings parses a reviewed-experience export.
func ReadMappings(r io.Reader) ([]model.ExperienceMapping, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}

	mappings := make([]model.ExperienceMapping, 0, len(t.rows))
	for _, row := range t.rows {
		if len(row) == 0 {
			continue
		}
		mappings = append(mappings, model.ExperienceMapping{
			ProductName:  t.cell(row, colProductName),
			ExperienceID: t.cell(row, colMapExpID),
			Assignee:     t.cell(row, colMapAssignee),
			ProductType:  t.cell(row, colProductType),
			TemplateName: t.cell(row, colTemplateName),
			TotalTickets: t.cell(row, colTotalTickets),
		})
	}

	slog.Debug("parsed experience export", "rows", len(mappings))
	return mappings, nil
}

// ReadTicketsFile reads a ticket export from disk.
func ReadTicketsFile(path string) ([]model.Ticket, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ticket export: %w", err)
	}
	defer f.Close()
	return ReadTickets(f)
}

// ReadMappingsFile reads a reviewed-experience export from disk.
func ReadMappingsFile(path string) ([]model.ExperienceMapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open experience export: %w", err)
	}
	defer f.Close()
	return ReadMappings(f)
}
