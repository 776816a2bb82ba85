package codec

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/erazemk/najdeno/internal/model"
)

// csvHeader is the extended column set; RFC 4180 quoting makes the round
// trip lossless even with embedded commas and quotes.
var csvHeader = []string{"ID", "Title", "Description", "Category", "Location", "Room", "Found", "Date", "AddedBy"}

// ExportCSV writes one header row and one row per item.
func ExportCSV(items []model.Item) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("writing csv header: %w", err)
	}
	for _, item := range items {
		record := []string{
			item.ID,
			item.Title,
			item.Description,
			item.Category,
			item.Location,
			item.Room,
			strconv.FormatBool(item.Found),
			item.Date.Format(time.RFC3339),
			item.AddedBy,
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("writing csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing csv: %w", err)
	}
	return sb.String(), nil
}

// ImportCSV parses a CSV document produced by ExportCSV or a compatible
// source. Columns are matched by header name, case-insensitively, so the
// shorter legacy column set still imports.
func ImportCSV(content string) ([]model.Item, error) {
	r := csv.NewReader(strings.NewReader(content))
	r.FieldsPerRecord = -1 // header decides

	records, err := r.ReadAll()
	if err != nil {
		return nil, &ParseError{Format: FormatCSV, Err: err}
	}
	if len(records) == 0 {
		return nil, parseErr(FormatCSV, "missing header row")
	}

	header := records[0]
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"id", "title", "date"} {
		if _, ok := index[required]; !ok {
			return nil, parseErr(FormatCSV, "missing %q column", required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var items []model.Item
	for n, record := range records[1:] {
		if len(record) != len(header) {
			return nil, parseErr(FormatCSV, "row %d has %d columns, want %d", n+2, len(record), len(header))
		}

		date, err := parseDate(field(record, "date"))
		if err != nil {
			return nil, parseErr(FormatCSV, "row %d: %v", n+2, err)
		}

		items = append(items, model.Item{
			ID:          field(record, "id"),
			Title:       field(record, "title"),
			Description: field(record, "description"),
			Category:    field(record, "category"),
			Location:    field(record, "location"),
			Room:        field(record, "room"),
			Found:       field(record, "found") == "true",
			Date:        date,
			AddedBy:     field(record, "addedby"),
		})
	}

	return checkImported(items, FormatCSV)
}
