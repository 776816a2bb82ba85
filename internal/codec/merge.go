package codec

import "github.com/erazemk/najdeno/internal/model"

// Merge appends imported items whose ids are not already present in
// existing, silently dropping duplicates. A zero added count is the
// "nothing new" outcome callers should surface instead of a generic
// success.
func Merge(existing, imported []model.Item) (merged []model.Item, added int) {
	seen := make(map[string]bool, len(existing))
	for _, item := range existing {
		seen[item.ID] = true
	}

	merged = append(merged, existing...)
	for _, item := range imported {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		merged = append(merged, item)
		added++
	}
	return merged, added
}
