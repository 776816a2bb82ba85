package api

import (
	"net/http"

	"github.com/erazemk/najdeno/internal/geo"
	"github.com/erazemk/najdeno/internal/storage"
	"github.com/erazemk/najdeno/internal/store"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(s *store.Store, gw *storage.Gateway, resolver *geo.Resolver) http.Handler {
	mux := http.NewServeMux()

	itemsHandler := &ItemsHandler{Store: s}
	statsHandler := &StatsHandler{Store: s}
	notifsHandler := &NotificationsHandler{Store: s, Geo: resolver}
	transferHandler := &TransferHandler{Store: s}
	settingsHandler := &SettingsHandler{Store: s, Gateway: gw, Geo: resolver}

	// Items.
	mux.HandleFunc("GET /api/items", itemsHandler.List)
	mux.HandleFunc("POST /api/items", itemsHandler.Create)
	mux.HandleFunc("DELETE /api/items", itemsHandler.DeleteAll)
	mux.HandleFunc("GET /api/items/search", itemsHandler.Search)
	mux.HandleFunc("PUT /api/items/{id}", itemsHandler.Update)
	mux.HandleFunc("DELETE /api/items/{id}", itemsHandler.Delete)
	mux.HandleFunc("POST /api/items/{id}/toggle", itemsHandler.Toggle)

	// Dashboard aggregates.
	mux.HandleFunc("GET /api/stats", statsHandler.Summary)
	mux.HandleFunc("GET /api/stats/trend", statsHandler.Trend)

	// Notifications.
	mux.HandleFunc("GET /api/notifications", notifsHandler.List)
	mux.HandleFunc("GET /api/notifications/unseen", notifsHandler.Unseen)
	mux.HandleFunc("POST /api/notifications/click", notifsHandler.Click)
	mux.HandleFunc("DELETE /api/notifications", notifsHandler.Clear)
	mux.HandleFunc("DELETE /api/notifications/{id}", notifsHandler.Dismiss)

	// Export and import.
	mux.HandleFunc("GET /api/export", transferHandler.Export)
	mux.HandleFunc("POST /api/import", transferHandler.Import)

	// Settings and locale.
	mux.HandleFunc("GET /api/settings", settingsHandler.Get)
	mux.HandleFunc("PUT /api/settings/retention", settingsHandler.SetRetention)
	mux.HandleFunc("PUT /api/settings/autodelete", settingsHandler.SetAutoDelete)
	mux.HandleFunc("PUT /api/settings/language", settingsHandler.SetLanguage)
	mux.HandleFunc("GET /api/locale", settingsHandler.Locale)

	return mux
}
