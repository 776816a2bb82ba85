package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/erazemk/najdeno/internal/model"
)

// Storage keys. Values are JSON documents or plain scalars, dates as ISO-8601.
const (
	KeyItems                 = "items"
	KeyNotifications         = "notifications"
	KeyLastNotificationClick = "lastNotificationClick"
	KeyPreferredLanguage     = "preferredLanguage"
	KeyItemRetentionTime     = "itemRetentionTime"
	KeyItemRetentionUnit     = "itemRetentionUnit"
	KeyAutoDeleteSettings    = "autoDeleteSettings"
	KeyLocation              = "location"
	KeyLocationDate          = "locationDate"
)

// Gateway round-trips the item and notification collections plus scalar
// settings through the key-value storage table. Loads fail soft: a missing
// key, unreadable JSON, or unavailable database degrades to empty or default
// state and is logged, never returned as an error to the store.
type Gateway struct {
	db  *sql.DB
	log zerolog.Logger
}

// New creates a gateway over an opened database.
func New(db *sql.DB, log zerolog.Logger) *Gateway {
	return &Gateway{db: db, log: log}
}

// Load reads both collections. Entries whose date cannot be parsed are
// skipped rather than stored with an invalid timestamp.
func (g *Gateway) Load(ctx context.Context) ([]model.Item, []model.Notification) {
	var items []model.Item
	for _, raw := range g.loadArray(ctx, KeyItems) {
		var item model.Item
		if err := json.Unmarshal(raw, &item); err != nil {
			g.log.Warn().Err(err).Str("key", KeyItems).Msg("skipping unreadable stored item")
			continue
		}
		if !model.ValidItem(item) {
			g.log.Warn().Str("id", item.ID).Msg("skipping stored item with missing fields")
			continue
		}
		items = append(items, item)
	}

	var notifications []model.Notification
	for _, raw := range g.loadArray(ctx, KeyNotifications) {
		var notif model.Notification
		if err := json.Unmarshal(raw, &notif); err != nil {
			g.log.Warn().Err(err).Str("key", KeyNotifications).Msg("skipping unreadable stored notification")
			continue
		}
		notifications = append(notifications, notif)
	}

	return items, notifications
}

// loadArray reads one storage key as a JSON array of raw elements.
// Absent keys and malformed documents both yield nil.
func (g *Gateway) loadArray(ctx context.Context, key string) []json.RawMessage {
	value, ok := g.loadValue(ctx, key)
	if !ok {
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(value), &raw); err != nil {
		g.log.Warn().Err(err).Str("key", key).Msg("stored value is not a JSON array, treating as empty")
		return nil
	}
	return raw
}

// Save serializes and writes both collections in one transaction.
// Timestamps serialize to ISO-8601 via the entities' time.Time fields.
func (g *Gateway) Save(ctx context.Context, items []model.Item, notifications []model.Notification) error {
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding items: %w", err)
	}
	notifsJSON, err := json.Marshal(notifications)
	if err != nil {
		return fmt.Errorf("encoding notifications: %w", err)
	}

	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning save transaction: %w", err)
	}
	defer tx.Rollback()

	for key, value := range map[string]string{
		KeyItems:         string(itemsJSON),
		KeyNotifications: string(notifsJSON),
	} {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO storage (key, value) VALUES (?, ?)
			 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
			key, value,
		); err != nil {
			return fmt.Errorf("writing %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save: %w", err)
	}
	return nil
}

func (g *Gateway) loadValue(ctx context.Context, key string) (string, bool) {
	var value string
	err := g.db.QueryRowContext(ctx,
		`SELECT value FROM storage WHERE key = ?`, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false
	}
	if err != nil {
		g.log.Warn().Err(err).Str("key", key).Msg("storage unavailable, using default")
		return "", false
	}
	return value, true
}
