package store

import (
	"time"

	"github.com/erazemk/najdeno/internal/model"
)

// ItemPatch is a partial item update. Nil fields keep the stored value.
type ItemPatch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	Location    *string    `json:"location"`
	Room        *string    `json:"room"`
	Date        *time.Time `json:"date"`
	Found       *bool      `json:"found"`
}

func (p ItemPatch) applyTo(item model.Item) model.Item {
	if p.Title != nil {
		item.Title = *p.Title
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Category != nil {
		item.Category = model.NormalizeCategory(*p.Category)
	}
	if p.Location != nil {
		item.Location = *p.Location
	}
	if p.Room != nil {
		item.Room = *p.Room
	}
	if p.Date != nil {
		item.Date = *p.Date
	}
	if p.Found != nil {
		item.Found = *p.Found
	}
	return item
}
