package api

import (
	"net/http"

	"github.com/erazemk/najdeno/internal/geo"
	"github.com/erazemk/najdeno/internal/i18n"
	"github.com/erazemk/najdeno/internal/model"
	"github.com/erazemk/najdeno/internal/store"
)

// NotificationsHandler serves the notification feed. Messages are rendered
// at request time in the caller's language.
type NotificationsHandler struct {
	Store *store.Store
	Geo   *geo.Resolver
}

func (h *NotificationsHandler) language(r *http.Request) string {
	if lang := r.URL.Query().Get("lang"); i18n.ValidLanguage(lang) {
		return lang
	}
	return h.Geo.Language(r.Context())
}

// List handles GET /api/notifications.
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	rendered := i18n.RenderAll(h.Store.Notifications(), h.language(r))
	jsonResponse(w, http.StatusOK, rendered)
}

// Unseen handles GET /api/notifications/unseen.
func (h *NotificationsHandler) Unseen(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]int{"count": h.Store.UnseenCount()})
}

// Click handles POST /api/notifications/click, resetting the unseen badge.
func (h *NotificationsHandler) Click(w http.ResponseWriter, r *http.Request) {
	h.Store.TouchNotificationClick(r.Context())
	jsonResponse(w, http.StatusOK, map[string]int{"count": 0})
}

// Dismiss handles DELETE /api/notifications/{id}.
func (h *NotificationsHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	h.Store.MarkNotificationSeen(r.Context(), r.PathValue("id"))
	jsonResponse(w, http.StatusOK, map[string]string{"message": "notification dismissed"})
}

// Clear handles DELETE /api/notifications. With a category query parameter
// only that category goes; without one the whole feed is emptied.
func (h *NotificationsHandler) Clear(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		h.Store.ClearAllNotifications(r.Context())
		jsonResponse(w, http.StatusOK, map[string]string{"message": "notifications cleared"})
		return
	}

	if !model.ValidNotificationCategory(category) {
		jsonError(w, http.StatusBadRequest, "invalid notification category")
		return
	}
	h.Store.ClearNotificationCategory(r.Context(), category)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "notifications cleared"})
}
