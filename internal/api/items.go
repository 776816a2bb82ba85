package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/erazemk/najdeno/internal/derive"
	"github.com/erazemk/najdeno/internal/model"
	"github.com/erazemk/najdeno/internal/store"
)

// ItemsHandler handles item CRUD and query endpoints.
type ItemsHandler struct {
	Store *store.Store
}

type createItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Location    string `json:"location"`
	Room        string `json:"room"`
	Date        string `json:"date"`
}

// List handles GET /api/items. Without a date it returns everything;
// with one it returns that calendar day, optionally narrowed by filter.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items := h.Store.Items()

	filter := r.URL.Query().Get("filter")
	if filter == "" {
		filter = model.FilterAll
	}
	if !model.ValidFilter(filter) {
		jsonError(w, http.StatusBadRequest, "invalid filter")
		return
	}

	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		day, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
			return
		}
		items = derive.FilterByDayAndStatus(items, day, filter)
	} else if filter != model.FilterAll {
		items = derive.FilterByStatus(items, filter)
	}

	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items. The date field selects which calendar day
// the item is logged under; it defaults to today.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	effective := time.Now()
	if req.Date != "" {
		day, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
			return
		}
		effective = day
	}

	item, err := h.Store.AddItem(r.Context(), model.ItemDraft{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Room:        req.Room,
	}, effective)
	if err != nil {
		if errors.Is(err, model.ErrValidation) {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}
		jsonError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	jsonResponse(w, http.StatusCreated, item)
}

// Update handles PUT /api/items/{id}. Absent fields keep their values.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch store.ItemPatch
	if err := decodeJSON(r, &patch); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Store.EditItem(r.Context(), r.PathValue("id"), patch); err != nil {
		if errors.Is(err, model.ErrValidation) {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}
		jsonError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "item updated"})
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.Store.DeleteItem(r.Context(), r.PathValue("id"))
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// Toggle handles POST /api/items/{id}/toggle.
func (h *ItemsHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	h.Store.ToggleItemFound(r.Context(), r.PathValue("id"))
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item toggled"})
}

// DeleteAll handles DELETE /api/items.
func (h *ItemsHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	h.Store.DeleteAllItems(r.Context())
	jsonResponse(w, http.StatusOK, map[string]string{"message": "all items deleted"})
}

// Search handles GET /api/items/search.
func (h *ItemsHandler) Search(w http.ResponseWriter, r *http.Request) {
	results := derive.Search(h.Store.Items(), r.URL.Query().Get("q"))
	if results == nil {
		results = []derive.SearchResult{}
	}
	jsonResponse(w, http.StatusOK, results)
}
