// Package derive computes read-only views over the item collection:
// day filtering, aggregate counts, the multi-day trend series, and search.
// Everything here is pure; callers pass snapshots and may call on every poll.
package derive

import (
	"strings"
	"time"

	"github.com/erazemk/najdeno/internal/model"
)

// SameDay reports whether a and b fall on the same calendar day, ignoring
// the time-of-day component. Every day comparison (filtering, stats, trend)
// goes through this one function so the three can never disagree on day
// boundaries.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// FilterByDayAndStatus keeps items logged on the same calendar day as day,
// narrowed by found status unless filter is "all".
func FilterByDayAndStatus(items []model.Item, day time.Time, filter string) []model.Item {
	var out []model.Item
	for _, item := range items {
		if !SameDay(item.Date, day) {
			continue
		}
		switch filter {
		case model.FilterFound:
			if !item.Found {
				continue
			}
		case model.FilterPending:
			if item.Found {
				continue
			}
		}
		out = append(out, item)
	}
	return out
}

// FilterByStatus keeps items matching the found filter across all days.
func FilterByStatus(items []model.Item, filter string) []model.Item {
	if filter == model.FilterAll {
		return items
	}
	var out []model.Item
	for _, item := range items {
		if item.Found == (filter == model.FilterFound) {
			out = append(out, item)
		}
	}
	return out
}

// Stats are aggregate counts over the full collection, not a day-filtered
// subset; only Today is calendar-day sensitive.
type Stats struct {
	Total   int `json:"total"`
	Today   int `json:"today"`
	Pending int `json:"pending"`
	Found   int `json:"found"`
}

// ComputeStats counts the collection: total size, items logged today,
// and the pending/found split.
func ComputeStats(items []model.Item, today time.Time) Stats {
	stats := Stats{Total: len(items)}
	for _, item := range items {
		if SameDay(item.Date, today) {
			stats.Today++
		}
		if item.Found {
			stats.Found++
		} else {
			stats.Pending++
		}
	}
	return stats
}

// DayCount is one trend-series entry.
type DayCount struct {
	Date    time.Time `json:"date"`
	Pending int       `json:"pending"`
	Found   int       `json:"found"`
}

// BuildDailySeries counts pending/found items for every calendar day from
// rangeStart to rangeEnd inclusive, in ascending order. Days without items
// appear zero-filled so a trend chart never has gaps.
func BuildDailySeries(items []model.Item, rangeStart, rangeEnd time.Time) []DayCount {
	var series []DayCount
	end := StartOfDay(rangeEnd)
	for day := StartOfDay(rangeStart); !day.After(end); day = day.AddDate(0, 0, 1) {
		entry := DayCount{Date: day}
		for _, item := range items {
			if !SameDay(item.Date, day) {
				continue
			}
			if item.Found {
				entry.Found++
			} else {
				entry.Pending++
			}
		}
		series = append(series, entry)
	}
	return series
}

// Searchable item fields.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldLocation    = "location"
	FieldCategory    = "category"
)

// SearchResult pairs a matching item with the fields the query matched,
// so the caller can explain why the result appeared.
type SearchResult struct {
	Item          model.Item `json:"item"`
	MatchedFields []string   `json:"matchedFields"`
}

// Search performs a case-insensitive substring match of query against the
// title, description, location and category fields. A blank or
// whitespace-only query means "no search active" and yields no results.
func Search(items []model.Item, query string) []SearchResult {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var results []SearchResult
	for _, item := range items {
		var matched []string
		if strings.Contains(strings.ToLower(item.Title), query) {
			matched = append(matched, FieldTitle)
		}
		if strings.Contains(strings.ToLower(item.Description), query) {
			matched = append(matched, FieldDescription)
		}
		if strings.Contains(strings.ToLower(item.Location), query) {
			matched = append(matched, FieldLocation)
		}
		if strings.Contains(strings.ToLower(item.Category), query) {
			matched = append(matched, FieldCategory)
		}
		if len(matched) > 0 {
			results = append(results, SearchResult{Item: item, MatchedFields: matched})
		}
	}
	return results
}
