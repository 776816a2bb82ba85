package model

import "time"

// Item represents a logged lost object.
type Item struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Room        string    `json:"room,omitempty"`
	Date        time.Time `json:"date"`
	Found       bool      `json:"found"`
	AddedBy     string    `json:"addedBy"`
}

// Item categories.
const (
	CategoryElectronics = "electronics"
	CategoryClothing    = "clothing"
	CategoryAccessories = "accessories"
	CategoryDocuments   = "documents"
	CategoryJewelery    = "jewelery"
	CategoryLuggage     = "luggage"
	CategoryKeys        = "keys"
	CategoryCosmetics   = "cosmetics"
	CategoryGlasses     = "glasses"
	CategoryMedical     = "medical"
	CategoryOther       = "other"
)

// DefaultAddedBy is the attribution placeholder; there is no identity system.
const DefaultAddedBy = "Current User"

// Categories lists the known item category keys in display order.
var Categories = []string{
	CategoryElectronics,
	CategoryClothing,
	CategoryAccessories,
	CategoryDocuments,
	CategoryJewelery,
	CategoryLuggage,
	CategoryKeys,
	CategoryCosmetics,
	CategoryGlasses,
	CategoryMedical,
	CategoryOther,
}

// Item list filters.
const (
	FilterAll     = "all"
	FilterFound   = "found"
	FilterPending = "pending"
)

// ValidCategory reports whether key is a known item category.
func ValidCategory(key string) bool {
	for _, c := range Categories {
		if c == key {
			return true
		}
	}
	return false
}

// ValidFilter reports whether key is a known item list filter.
func ValidFilter(key string) bool {
	return key == FilterAll || key == FilterFound || key == FilterPending
}

// ValidItem reports whether a (possibly imported) item is storable:
// it must carry an id, a title, and a usable timestamp.
func ValidItem(item Item) bool {
	return item.ID != "" && item.Title != "" && !item.Date.IsZero()
}
