package store

import (
	"context"
	"fmt"
	"time"
)

// Retention units. The age comparison counts completed calendar units, not
// elapsed durations, so an item added on January 31st is one month old on
// February 28th.
const (
	UnitDays   = "days"
	UnitMonths = "months"
	UnitYears  = "years"
)

// ValidUnit reports whether unit is a supported retention unit.
func ValidUnit(unit string) bool {
	return unit == UnitDays || unit == UnitMonths || unit == UnitYears
}

// ApplyRetentionPolicy removes every item strictly older than the threshold
// and returns how many were removed. Removals are silent: no notifications.
// Applying the same policy twice in a row removes nothing the second time.
func (s *Store) ApplyRetentionPolicy(ctx context.Context, value int, unit string) (int, error) {
	if value <= 0 {
		return 0, fmt.Errorf("retention value must be positive, got %d", value)
	}
	if !ValidUnit(unit) {
		return 0, fmt.Errorf("unknown retention unit %q", unit)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	kept := s.items[:0]
	removed := 0
	for _, item := range s.items {
		if elapsedUnits(now, item.Date, unit) > value {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	if removed == 0 {
		return 0, nil
	}

	s.items = kept
	s.persist(ctx)
	return removed, nil
}

// elapsedUnits counts completed calendar units between then and now.
// A future date yields a non-positive count and is never removed.
func elapsedUnits(now, then time.Time, unit string) int {
	switch unit {
	case UnitMonths:
		months := (now.Year()-then.Year())*12 + int(now.Month()) - int(then.Month())
		if now.Day() < then.Day() {
			months--
		}
		return months
	case UnitYears:
		years := now.Year() - then.Year()
		if int(now.Month()) < int(then.Month()) ||
			(now.Month() == then.Month() && now.Day() < then.Day()) {
			years--
		}
		return years
	default:
		a := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		b := time.Date(then.Year(), then.Month(), then.Day(), 0, 0, 0, 0, time.UTC)
		return int(a.Sub(b).Hours() / 24)
	}
}
