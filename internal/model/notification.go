package model

import "time"

// Notification is an audit event recorded when an item changes. The item
// fields are copied in structured form at mutation time; display text is
// rendered on demand in the viewer's current language (internal/i18n), so a
// language switch retranslates history instead of freezing it.
type Notification struct {
	ID           string    `json:"id"`
	ItemID       string    `json:"itemId"`
	Category     string    `json:"category"`
	ItemTitle    string    `json:"itemTitle"`
	ItemCategory string    `json:"itemCategory,omitempty"`
	Status       string    `json:"status,omitempty"`
	Date         time.Time `json:"date"`
}

// Notification categories, used for tabbed display and bulk clearing.
const (
	NotificationNew      = "new"
	NotificationFound    = "found"
	NotificationNotFound = "notFound"
	NotificationDeleted  = "deleted"
)

// NotificationCategories lists the known notification categories.
var NotificationCategories = []string{
	NotificationNew,
	NotificationFound,
	NotificationNotFound,
	NotificationDeleted,
}

// ValidNotificationCategory reports whether key is a known notification category.
func ValidNotificationCategory(key string) bool {
	for _, c := range NotificationCategories {
		if c == key {
			return true
		}
	}
	return false
}
