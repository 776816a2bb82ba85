// Package store holds the authoritative in-memory item and notification
// collections. Every mutation updates the collection, appends the matching
// notification, and writes through to the persistence gateway; a failed
// write degrades to in-memory-only state and is logged, never raised.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/erazemk/najdeno/internal/codec"
	"github.com/erazemk/najdeno/internal/model"
	"github.com/erazemk/najdeno/internal/storage"
)

// Store owns both collections. The persistence gateway keeps no independent
// copy, only serialized snapshots.
type Store struct {
	mu            sync.Mutex
	items         []model.Item
	notifications []model.Notification
	lastClick     time.Time

	gw  *storage.Gateway
	log zerolog.Logger
	now func() time.Time
}

// New creates a store rehydrated from the gateway.
func New(ctx context.Context, gw *storage.Gateway, log zerolog.Logger) *Store {
	items, notifications := gw.Load(ctx)
	return &Store{
		items:         items,
		notifications: notifications,
		lastClick:     gw.LastNotificationClick(ctx),
		gw:            gw,
		log:           log,
		now:           time.Now,
	}
}

// Items returns a snapshot of the item collection.
func (s *Store) Items() []model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Notifications returns a snapshot of the notification collection.
// Presence in the collection means unseen.
func (s *Store) Notifications() []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// AddItem stores a new item on the caller's selected calendar day and
// records a "new" notification. The draft is validated first; a rejected
// draft leaves both collections untouched.
func (s *Store) AddItem(ctx context.Context, draft model.ItemDraft, effectiveDate time.Time) (model.Item, error) {
	if err := model.ValidateDraft(draft); err != nil {
		return model.Item{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := model.Item{
		ID:          uuid.NewString(),
		Title:       draft.Title,
		Description: draft.Description,
		Category:    model.NormalizeCategory(draft.Category),
		Location:    draft.Location,
		Room:        draft.Room,
		Date:        effectiveDate,
		Found:       false,
		AddedBy:     model.DefaultAddedBy,
	}
	s.items = append(s.items, item)
	s.appendNotification(model.Notification{
		ItemID:       item.ID,
		Category:     model.NotificationNew,
		ItemTitle:    item.Title,
		ItemCategory: item.Category,
		Date:         s.now(),
	})

	s.persist(ctx)
	return item, nil
}

// EditItem shallow-merges a patch into the matching item. Edits are silent:
// no notification is recorded. An unknown id is a no-op.
func (s *Store) EditItem(ctx context.Context, id string, patch ItemPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}

	updated := patch.applyTo(s.items[i])
	if err := model.ValidateDraft(model.ItemDraft{
		Title:       updated.Title,
		Description: updated.Description,
		Category:    updated.Category,
		Location:    updated.Location,
		Room:        updated.Room,
	}); err != nil {
		return err
	}

	s.items[i] = updated
	s.persist(ctx)
	return nil
}

// DeleteItem removes an item and records a "deleted" notification carrying
// the item's title and the deletion timestamp; that notification is the only
// trace of the item afterwards. An unknown id is a no-op.
func (s *Store) DeleteItem(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return
	}

	deleted := s.items[i]
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.appendNotification(model.Notification{
		ItemID:       deleted.ID,
		Category:     model.NotificationDeleted,
		ItemTitle:    deleted.Title,
		ItemCategory: deleted.Category,
		Date:         s.now(),
	})

	s.persist(ctx)
}

// ToggleItemFound flips an item's found flag and records a "found" or
// "notFound" notification for the new state. An unknown id is a no-op.
func (s *Store) ToggleItemFound(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return
	}

	s.items[i].Found = !s.items[i].Found
	item := s.items[i]

	category := model.NotificationNotFound
	status := model.FilterPending
	if item.Found {
		category = model.NotificationFound
		status = model.FilterFound
	}
	s.appendNotification(model.Notification{
		ItemID:       item.ID,
		Category:     category,
		ItemTitle:    item.Title,
		ItemCategory: item.Category,
		Status:       status,
		Date:         s.now(),
	})

	s.persist(ctx)
}

// ImportItems merges an imported collection, dropping items whose ids are
// already present, with a single collection update and a single persistence
// write. It returns how many items were genuinely new.
func (s *Store) ImportItems(ctx context.Context, imported []model.Item) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged, added := codec.Merge(s.items, imported)
	if added == 0 {
		return 0
	}
	s.items = merged
	s.persist(ctx)
	return added
}

// DeleteAllItems discards the whole item collection.
func (s *Store) DeleteAllItems(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return
	}
	s.items = nil
	s.persist(ctx)
}

// MarkNotificationSeen removes one notification; there is no seen flag,
// dismissing means deleting.
func (s *Store) MarkNotificationSeen(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, notif := range s.notifications {
		if notif.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

// ClearNotificationCategory removes all notifications of one category.
func (s *Store) ClearNotificationCategory(ctx context.Context, category string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.notifications[:0]
	removed := false
	for _, notif := range s.notifications {
		if notif.Category == category {
			removed = true
			continue
		}
		kept = append(kept, notif)
	}
	if !removed {
		return
	}
	s.notifications = kept
	s.persist(ctx)
}

// ClearAllNotifications empties the notification collection.
func (s *Store) ClearAllNotifications(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.notifications) == 0 {
		return
	}
	s.notifications = nil
	s.persist(ctx)
}

// TouchNotificationClick records that the notification menu was opened,
// resetting the unseen badge.
func (s *Store) TouchNotificationClick(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastClick = s.now()
	if err := s.gw.SaveLastNotificationClick(ctx, s.lastClick); err != nil {
		s.log.Warn().Err(err).Msg("persisting notification click failed")
	}
}

// UnseenCount counts notifications dated after the last menu click.
func (s *Store) UnseenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, notif := range s.notifications {
		if notif.Date.After(s.lastClick) {
			count++
		}
	}
	return count
}

// indexOf returns the position of an item id, or -1. Callers hold the lock.
func (s *Store) indexOf(id string) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// appendNotification stamps the id and appends. Callers hold the lock and
// persist afterwards.
func (s *Store) appendNotification(notif model.Notification) {
	notif.ID = uuid.NewString()
	s.notifications = append(s.notifications, notif)
}

// persist writes both collections through the gateway. Storage failures
// leave the session in-memory-only; they are logged, never surfaced.
// Callers hold the lock.
func (s *Store) persist(ctx context.Context) {
	if err := s.gw.Save(ctx, s.items, s.notifications); err != nil {
		s.log.Warn().Err(err).Msg("persisting state failed, continuing in memory")
	}
}
