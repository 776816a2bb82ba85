package store

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/erazemk/najdeno/internal/db"
	"github.com/erazemk/najdeno/internal/model"
	"github.com/erazemk/najdeno/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	gw := storage.New(db.NewTestDB(t), zerolog.Nop())
	return New(context.Background(), gw, zerolog.Nop())
}

func addTestItem(t *testing.T, s *Store, title string, date time.Time) model.Item {
	t.Helper()
	item, err := s.AddItem(context.Background(), model.ItemDraft{
		Title:    title,
		Category: model.CategoryAccessories,
		Location: "Library",
	}, date)
	if err != nil {
		t.Fatalf("AddItem(%q) failed: %v", title, err)
	}
	return item
}

func TestAddItem(t *testing.T) {
	s := newTestStore(t)
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	item := addTestItem(t, s, "Wallet", date)

	if item.ID == "" {
		t.Error("expected a generated id")
	}
	if item.Found {
		t.Error("new item should start pending")
	}
	if item.AddedBy != model.DefaultAddedBy {
		t.Errorf("addedBy = %q, want %q", item.AddedBy, model.DefaultAddedBy)
	}
	if !item.Date.Equal(date) {
		t.Errorf("date = %v, want %v", item.Date, date)
	}

	if got := len(s.Items()); got != 1 {
		t.Fatalf("expected 1 item, got %d", got)
	}

	notifs := s.Notifications()
	if len(notifs) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifs))
	}
	if notifs[0].Category != model.NotificationNew {
		t.Errorf("notification category = %q, want %q", notifs[0].Category, model.NotificationNew)
	}
	if notifs[0].ItemTitle != "Wallet" {
		t.Errorf("notification item title = %q, want Wallet", notifs[0].ItemTitle)
	}
}

func TestAddItemInvalidDraft(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddItem(context.Background(), model.ItemDraft{}, time.Now())
	if err == nil {
		t.Fatal("expected validation error for empty draft")
	}
	if len(s.Items()) != 0 || len(s.Notifications()) != 0 {
		t.Error("rejected draft must leave collections untouched")
	}
}

func TestToggleItemFound(t *testing.T) {
	s := newTestStore(t)
	item := addTestItem(t, s, "Wallet", time.Now())

	s.ToggleItemFound(context.Background(), item.ID)
	if !s.Items()[0].Found {
		t.Fatal("expected item to be marked found")
	}

	notifs := s.Notifications()
	last := notifs[len(notifs)-1]
	if last.Category != model.NotificationFound {
		t.Errorf("notification category = %q, want %q", last.Category, model.NotificationFound)
	}
	if last.Status != model.FilterFound {
		t.Errorf("notification status = %q, want %q", last.Status, model.FilterFound)
	}

	s.ToggleItemFound(context.Background(), item.ID)
	if s.Items()[0].Found {
		t.Fatal("expected second toggle to flip back to pending")
	}

	notifs = s.Notifications()
	last = notifs[len(notifs)-1]
	if last.Category != model.NotificationNotFound {
		t.Errorf("notification category = %q, want %q", last.Category, model.NotificationNotFound)
	}
	if last.Status != model.FilterPending {
		t.Errorf("notification status = %q, want %q", last.Status, model.FilterPending)
	}
}

func TestToggleUnknownID(t *testing.T) {
	s := newTestStore(t)
	addTestItem(t, s, "Wallet", time.Now())

	s.ToggleItemFound(context.Background(), "missing")

	if s.Items()[0].Found {
		t.Error("unknown id must not change any item")
	}
	if got := len(s.Notifications()); got != 1 {
		t.Errorf("unknown id must not add notifications, got %d", got)
	}
}

func TestDeleteItem(t *testing.T) {
	s := newTestStore(t)
	item := addTestItem(t, s, "Wallet", time.Now())

	s.DeleteItem(context.Background(), item.ID)

	if got := len(s.Items()); got != 0 {
		t.Fatalf("expected 0 items after delete, got %d", got)
	}

	notifs := s.Notifications()
	last := notifs[len(notifs)-1]
	if last.Category != model.NotificationDeleted {
		t.Errorf("notification category = %q, want %q", last.Category, model.NotificationDeleted)
	}
	if last.ItemTitle != "Wallet" {
		t.Errorf("deleted notification should carry the title, got %q", last.ItemTitle)
	}

	// Deleting again is a silent no-op.
	s.DeleteItem(context.Background(), item.ID)
	if got := len(s.Notifications()); got != len(notifs) {
		t.Errorf("repeat delete must not add notifications, got %d", got)
	}
}

func TestEditItem(t *testing.T) {
	s := newTestStore(t)
	item := addTestItem(t, s, "Wallet", time.Now())

	title := "Leather wallet"
	room := "214"
	if err := s.EditItem(context.Background(), item.ID, ItemPatch{Title: &title, Room: &room}); err != nil {
		t.Fatalf("EditItem failed: %v", err)
	}

	got := s.Items()[0]
	if got.Title != title {
		t.Errorf("title = %q, want %q", got.Title, title)
	}
	if got.Room != room {
		t.Errorf("room = %q, want %q", got.Room, room)
	}
	if got.Location != "Library" {
		t.Errorf("unpatched field changed: location = %q", got.Location)
	}

	// Edits are silent.
	if got := len(s.Notifications()); got != 1 {
		t.Errorf("edit must not add notifications, got %d", got)
	}

	bad := "12345"
	if err := s.EditItem(context.Background(), item.ID, ItemPatch{Room: &bad}); err == nil {
		t.Error("expected validation error for bad room")
	}
	if s.Items()[0].Room != room {
		t.Error("rejected edit must leave the item untouched")
	}
}

func TestStorePersistence(t *testing.T) {
	gw := storage.New(db.NewTestDB(t), zerolog.Nop())
	s := New(context.Background(), gw, zerolog.Nop())

	item, err := s.AddItem(context.Background(), model.ItemDraft{
		Title:    "Umbrella",
		Category: model.CategoryAccessories,
	}, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	// A second store over the same gateway sees the written state.
	reloaded := New(context.Background(), gw, zerolog.Nop())
	items := reloaded.Items()
	if len(items) != 1 || items[0].ID != item.ID {
		t.Fatalf("reloaded items = %+v, want the stored umbrella", items)
	}
	if got := len(reloaded.Notifications()); got != 1 {
		t.Errorf("reloaded notifications = %d, want 1", got)
	}
}

func TestImportItems(t *testing.T) {
	s := newTestStore(t)
	existing := addTestItem(t, s, "Wallet", time.Now())

	added := s.ImportItems(context.Background(), []model.Item{
		{ID: existing.ID, Title: "Wallet copy", Date: time.Now()},
		{ID: "imported-1", Title: "Keys", Category: model.CategoryAccessories, Date: time.Now()},
	})

	if added != 1 {
		t.Fatalf("added = %d, want 1", added)
	}
	items := s.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items after import, got %d", len(items))
	}
	if items[0].Title != "Wallet" {
		t.Error("import must not overwrite an existing item")
	}

	// Importing nothing new does not touch the collection.
	if added := s.ImportItems(context.Background(), items); added != 0 {
		t.Errorf("re-import added %d, want 0", added)
	}
}

func TestDeleteAllItems(t *testing.T) {
	s := newTestStore(t)
	addTestItem(t, s, "Wallet", time.Now())
	addTestItem(t, s, "Keys", time.Now())

	s.DeleteAllItems(context.Background())

	if got := len(s.Items()); got != 0 {
		t.Errorf("expected 0 items, got %d", got)
	}
	// Bulk deletion keeps the notification history.
	if got := len(s.Notifications()); got != 2 {
		t.Errorf("expected notifications to survive, got %d", got)
	}
}

func TestNotificationLifecycle(t *testing.T) {
	s := newTestStore(t)
	addTestItem(t, s, "Wallet", time.Now())
	item := addTestItem(t, s, "Keys", time.Now())
	s.ToggleItemFound(context.Background(), item.ID)

	notifs := s.Notifications()
	if len(notifs) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(notifs))
	}

	s.MarkNotificationSeen(context.Background(), notifs[0].ID)
	if got := len(s.Notifications()); got != 2 {
		t.Fatalf("expected 2 after dismiss, got %d", got)
	}

	s.ClearNotificationCategory(context.Background(), model.NotificationNew)
	for _, notif := range s.Notifications() {
		if notif.Category == model.NotificationNew {
			t.Errorf("category clear left a %q notification", notif.Category)
		}
	}

	s.ClearAllNotifications(context.Background())
	if got := len(s.Notifications()); got != 0 {
		t.Errorf("expected 0 after clear all, got %d", got)
	}
}

func TestUnseenCount(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	s.now = func() time.Time { return base }
	addTestItem(t, s, "Wallet", base)

	s.now = func() time.Time { return base.Add(time.Hour) }
	s.TouchNotificationClick(context.Background())

	if got := s.UnseenCount(); got != 0 {
		t.Errorf("unseen after click = %d, want 0", got)
	}

	s.now = func() time.Time { return base.Add(2 * time.Hour) }
	addTestItem(t, s, "Keys", base)

	if got := s.UnseenCount(); got != 1 {
		t.Errorf("unseen after new item = %d, want 1", got)
	}
}

func TestApplyRetentionPolicy(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	addTestItem(t, s, "Old", now.AddDate(0, 0, -200))
	addTestItem(t, s, "Borderline", now.AddDate(0, 0, -150))
	addTestItem(t, s, "Fresh", now.AddDate(0, 0, -10))

	removed, err := s.ApplyRetentionPolicy(context.Background(), 150, UnitDays)
	if err != nil {
		t.Fatalf("ApplyRetentionPolicy failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}

	items := s.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	for _, item := range items {
		if item.Title == "Old" {
			t.Error("item past the threshold survived")
		}
	}

	// Pruning is silent and idempotent.
	if got := len(s.Notifications()); got != 3 {
		t.Errorf("retention must not add notifications, got %d", got)
	}
	removed, err = s.ApplyRetentionPolicy(context.Background(), 150, UnitDays)
	if err != nil {
		t.Fatalf("second ApplyRetentionPolicy failed: %v", err)
	}
	if removed != 0 {
		t.Errorf("second pass removed %d, want 0", removed)
	}
}

func TestApplyRetentionPolicyMonths(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	addTestItem(t, s, "TwoMonths", time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC))
	addTestItem(t, s, "OneMonth", time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC))

	removed, err := s.ApplyRetentionPolicy(context.Background(), 1, UnitMonths)
	if err != nil {
		t.Fatalf("ApplyRetentionPolicy failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if s.Items()[0].Title != "OneMonth" {
		t.Errorf("kept %q, want OneMonth", s.Items()[0].Title)
	}
}

func TestApplyRetentionPolicyRejectsBadInput(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.ApplyRetentionPolicy(context.Background(), 0, UnitDays); err == nil {
		t.Error("expected error for zero value")
	}
	if _, err := s.ApplyRetentionPolicy(context.Background(), 30, "fortnights"); err == nil {
		t.Error("expected error for unknown unit")
	}
}

func TestElapsedUnits(t *testing.T) {
	now := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	then := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	if got := elapsedUnits(now, then, UnitMonths); got != 0 {
		t.Errorf("Jan 31 -> Feb 28 = %d months, want 0", got)
	}
	if got := elapsedUnits(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), then, UnitMonths); got != 1 {
		t.Errorf("Jan 31 -> Mar 1 = %d months, want 1", got)
	}
	if got := elapsedUnits(now, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), UnitYears); got != 1 {
		t.Errorf("year diff = %d, want 1", got)
	}
	if got := elapsedUnits(now, now.AddDate(0, 0, 5), UnitDays); got >= 0 {
		t.Errorf("future date diff = %d, want negative", got)
	}
}
