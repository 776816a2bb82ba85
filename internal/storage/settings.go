package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Retention defaults, matching the dashboard's initial settings.
const (
	DefaultRetentionValue = 150
	DefaultRetentionUnit  = "days"
)

// AutoDelete is the persisted automatic retention sweep configuration.
type AutoDelete struct {
	Enabled bool   `json:"enabled"`
	Value   int    `json:"value"`
	Unit    string `json:"unit"`
}

// Setting returns the stored scalar value for key, or fallback when the key
// is absent or storage is unavailable.
func (g *Gateway) Setting(ctx context.Context, key, fallback string) string {
	value, ok := g.loadValue(ctx, key)
	if !ok {
		return fallback
	}
	return value
}

// SaveSetting stores a scalar setting value.
func (g *Gateway) SaveSetting(ctx context.Context, key, value string) error {
	_, err := g.db.ExecContext(ctx,
		`INSERT INTO storage (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storing %s: %w", key, err)
	}
	return nil
}

// RetentionPolicy returns the persisted retention threshold and unit.
func (g *Gateway) RetentionPolicy(ctx context.Context) (int, string) {
	value := DefaultRetentionValue
	if raw, ok := g.loadValue(ctx, KeyItemRetentionTime); ok {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			g.log.Warn().Str("value", raw).Msg("ignoring malformed retention time")
		} else {
			value = parsed
		}
	}
	unit := g.Setting(ctx, KeyItemRetentionUnit, DefaultRetentionUnit)
	return value, unit
}

// SaveRetentionPolicy persists the retention threshold and unit.
func (g *Gateway) SaveRetentionPolicy(ctx context.Context, value int, unit string) error {
	if err := g.SaveSetting(ctx, KeyItemRetentionTime, strconv.Itoa(value)); err != nil {
		return err
	}
	return g.SaveSetting(ctx, KeyItemRetentionUnit, unit)
}

// LoadAutoDelete returns the persisted auto-delete configuration,
// disabled with the default policy when unset or unreadable.
func (g *Gateway) LoadAutoDelete(ctx context.Context) AutoDelete {
	fallback := AutoDelete{Enabled: false, Value: DefaultRetentionValue, Unit: DefaultRetentionUnit}

	raw, ok := g.loadValue(ctx, KeyAutoDeleteSettings)
	if !ok {
		return fallback
	}

	var ad AutoDelete
	if err := json.Unmarshal([]byte(raw), &ad); err != nil {
		g.log.Warn().Err(err).Msg("ignoring malformed auto-delete settings")
		return fallback
	}
	if ad.Value < 1 {
		ad.Value = DefaultRetentionValue
	}
	if ad.Unit == "" {
		ad.Unit = DefaultRetentionUnit
	}
	return ad
}

// SaveAutoDelete persists the auto-delete configuration.
func (g *Gateway) SaveAutoDelete(ctx context.Context, ad AutoDelete) error {
	raw, err := json.Marshal(ad)
	if err != nil {
		return fmt.Errorf("encoding auto-delete settings: %w", err)
	}
	return g.SaveSetting(ctx, KeyAutoDeleteSettings, string(raw))
}

// LastNotificationClick returns the persisted badge-reset timestamp,
// zero when never clicked.
func (g *Gateway) LastNotificationClick(ctx context.Context) time.Time {
	raw, ok := g.loadValue(ctx, KeyLastNotificationClick)
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		g.log.Warn().Str("value", raw).Msg("ignoring malformed notification click timestamp")
		return time.Time{}
	}
	return t
}

// SaveLastNotificationClick persists the badge-reset timestamp.
func (g *Gateway) SaveLastNotificationClick(ctx context.Context, t time.Time) error {
	return g.SaveSetting(ctx, KeyLastNotificationClick, t.Format(time.RFC3339))
}
