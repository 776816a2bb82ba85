package codec

import (
	"fmt"
	"strings"
	"time"

	"github.com/erazemk/najdeno/internal/model"
)

// LITEMS is the dashboard's own line-oriented format: a banner line, then
// one [ITEM]..[END] block per item with KEY=VALUE lines, blank-line
// separated. Values must not contain newlines; everything after the first
// '=' belongs to the value.
const (
	litemsBanner = "# LITEMS 1"
	litemsBegin  = "[ITEM]"
	litemsEnd    = "[END]"
)

// ExportLITEMS serializes the collection into the LITEMS text format.
func ExportLITEMS(items []model.Item) string {
	var sb strings.Builder
	sb.WriteString(litemsBanner + "\n")

	for _, item := range items {
		sb.WriteString("\n" + litemsBegin + "\n")
		fmt.Fprintf(&sb, "ID=%s\n", item.ID)
		fmt.Fprintf(&sb, "TITLE=%s\n", item.Title)
		fmt.Fprintf(&sb, "DESC=%s\n", item.Description)
		fmt.Fprintf(&sb, "LOC=%s\n", item.Location)
		fmt.Fprintf(&sb, "FOUND=%t\n", item.Found)
		fmt.Fprintf(&sb, "DATE=%s\n", item.Date.Format(time.RFC3339))
		fmt.Fprintf(&sb, "CAT=%s\n", item.Category)
		fmt.Fprintf(&sb, "ROOM=%s\n", item.Room)
		fmt.Fprintf(&sb, "ADDEDBY=%s\n", item.AddedBy)
		sb.WriteString(litemsEnd + "\n")
	}

	return sb.String()
}

// ImportLITEMS parses the LITEMS text format. The [ITEM] sentinel is
// required; a block without a closing [END] or a KEY=VALUE line outside a
// block is an error.
func ImportLITEMS(content string) ([]model.Item, error) {
	if !strings.Contains(content, litemsBegin) {
		return nil, parseErr(FormatLITEMS, "missing %s sentinel", litemsBegin)
	}

	var (
		items   []model.Item
		fields  map[string]string
		inBlock bool
	)

	for n, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "" || strings.HasPrefix(trimmed, "#"):
			continue
		case trimmed == litemsBegin:
			if inBlock {
				return nil, parseErr(FormatLITEMS, "line %d: nested %s", n+1, litemsBegin)
			}
			inBlock = true
			fields = make(map[string]string)
		case trimmed == litemsEnd:
			if !inBlock {
				return nil, parseErr(FormatLITEMS, "line %d: %s without %s", n+1, litemsEnd, litemsBegin)
			}
			item, err := litemsItem(fields)
			if err != nil {
				return nil, parseErr(FormatLITEMS, "block ending at line %d: %v", n+1, err)
			}
			items = append(items, item)
			inBlock = false
		default:
			if !inBlock {
				return nil, parseErr(FormatLITEMS, "line %d: %q outside an item block", n+1, trimmed)
			}
			key, value, ok := strings.Cut(line, "=")
			if !ok {
				return nil, parseErr(FormatLITEMS, "line %d: expected KEY=VALUE", n+1)
			}
			fields[strings.ToUpper(strings.TrimSpace(key))] = value
		}
	}

	if inBlock {
		return nil, parseErr(FormatLITEMS, "unterminated %s block", litemsBegin)
	}

	return checkImported(items, FormatLITEMS)
}

func litemsItem(fields map[string]string) (model.Item, error) {
	date, err := parseDate(fields["DATE"])
	if err != nil {
		return model.Item{}, err
	}
	return model.Item{
		ID:          fields["ID"],
		Title:       fields["TITLE"],
		Description: fields["DESC"],
		Location:    fields["LOC"],
		Found:       fields["FOUND"] == "true",
		Date:        date,
		Category:    fields["CAT"],
		Room:        fields["ROOM"],
		AddedBy:     fields["ADDEDBY"],
	}, nil
}
