package codec

import (
	"encoding/json"

	"github.com/erazemk/najdeno/internal/model"
)

// ExportJSON pretty-prints the collection; dates serialize as ISO strings
// through the entities' time.Time fields.
func ExportJSON(items []model.Item) (string, error) {
	if items == nil {
		items = []model.Item{}
	}
	raw, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", err
	}
	return string(raw) + "\n", nil
}

// ImportJSON parses a JSON array of items.
func ImportJSON(content string) ([]model.Item, error) {
	var items []model.Item
	if err := json.Unmarshal([]byte(content), &items); err != nil {
		return nil, &ParseError{Format: FormatJSON, Err: err}
	}
	return checkImported(items, FormatJSON)
}
