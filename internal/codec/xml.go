package codec

import (
	"encoding/xml"
	"time"

	"github.com/erazemk/najdeno/internal/model"
)

// xmlItem encodes every field as a child element; no attributes.
type xmlItem struct {
	ID          string `xml:"id"`
	Title       string `xml:"title"`
	Description string `xml:"description"`
	Category    string `xml:"category"`
	Location    string `xml:"location"`
	Room        string `xml:"room,omitempty"`
	Found       bool   `xml:"found"`
	Date        string `xml:"date"`
	AddedBy     string `xml:"addedBy"`
}

type xmlDocument struct {
	XMLName xml.Name  `xml:"lostItems"`
	Items   []xmlItem `xml:"item"`
}

// ExportXML writes one <item> element per item under a <lostItems> root.
func ExportXML(items []model.Item) (string, error) {
	doc := xmlDocument{Items: make([]xmlItem, 0, len(items))}
	for _, item := range items {
		doc.Items = append(doc.Items, xmlItem{
			ID:          item.ID,
			Title:       item.Title,
			Description: item.Description,
			Category:    item.Category,
			Location:    item.Location,
			Room:        item.Room,
			Found:       item.Found,
			Date:        item.Date.Format(time.RFC3339),
			AddedBy:     item.AddedBy,
		})
	}

	raw, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return xml.Header + string(raw) + "\n", nil
}

// ImportXML extracts items by tag name from a <lostItems> document.
func ImportXML(content string) ([]model.Item, error) {
	var doc xmlDocument
	if err := xml.Unmarshal([]byte(content), &doc); err != nil {
		return nil, &ParseError{Format: FormatXML, Err: err}
	}

	items := make([]model.Item, 0, len(doc.Items))
	for n, x := range doc.Items {
		date, err := parseDate(x.Date)
		if err != nil {
			return nil, parseErr(FormatXML, "item %d: %v", n+1, err)
		}
		items = append(items, model.Item{
			ID:          x.ID,
			Title:       x.Title,
			Description: x.Description,
			Category:    x.Category,
			Location:    x.Location,
			Room:        x.Room,
			Found:       x.Found,
			Date:        date,
			AddedBy:     x.AddedBy,
		})
	}

	return checkImported(items, FormatXML)
}
