package api

import (
	"net/http"

	"github.com/erazemk/najdeno/internal/geo"
	"github.com/erazemk/najdeno/internal/i18n"
	"github.com/erazemk/najdeno/internal/storage"
	"github.com/erazemk/najdeno/internal/store"
)

// SettingsHandler serves retention, auto-delete and language settings.
type SettingsHandler struct {
	Store   *store.Store
	Gateway *storage.Gateway
	Geo     *geo.Resolver
}

type retentionRequest struct {
	Value int    `json:"value"`
	Unit  string `json:"unit"`
}

type settingsResponse struct {
	RetentionValue int                `json:"retentionValue"`
	RetentionUnit  string             `json:"retentionUnit"`
	AutoDelete     storage.AutoDelete `json:"autoDelete"`
	Language       string             `json:"language"`
}

// Get handles GET /api/settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	value, unit := h.Gateway.RetentionPolicy(r.Context())
	jsonResponse(w, http.StatusOK, settingsResponse{
		RetentionValue: value,
		RetentionUnit:  unit,
		AutoDelete:     h.Gateway.LoadAutoDelete(r.Context()),
		Language:       h.Geo.Language(r.Context()),
	})
}

// SetRetention handles PUT /api/settings/retention. Saving a policy applies
// it immediately, so shortening the window prunes on the spot.
func (h *SettingsHandler) SetRetention(w http.ResponseWriter, r *http.Request) {
	var req retentionRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Value <= 0 || !store.ValidUnit(req.Unit) {
		jsonError(w, http.StatusBadRequest, "retention needs a positive value and a days/months/years unit")
		return
	}

	if err := h.Gateway.SaveRetentionPolicy(r.Context(), req.Value, req.Unit); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save retention policy")
		return
	}

	removed, err := h.Store.ApplyRetentionPolicy(r.Context(), req.Value, req.Unit)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to apply retention policy")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]int{"removed": removed})
}

// SetAutoDelete handles PUT /api/settings/autodelete.
func (h *SettingsHandler) SetAutoDelete(w http.ResponseWriter, r *http.Request) {
	var req storage.AutoDelete
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Enabled && (req.Value <= 0 || !store.ValidUnit(req.Unit)) {
		jsonError(w, http.StatusBadRequest, "auto-delete needs a positive value and a days/months/years unit")
		return
	}

	if err := h.Gateway.SaveAutoDelete(r.Context(), req); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save auto-delete settings")
		return
	}
	jsonResponse(w, http.StatusOK, req)
}

// SetLanguage handles PUT /api/settings/language.
func (h *SettingsHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Language string `json:"language"`
	}
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !i18n.ValidLanguage(req.Language) {
		jsonError(w, http.StatusBadRequest, "unsupported language")
		return
	}

	if err := h.Gateway.SaveSetting(r.Context(), storage.KeyPreferredLanguage, req.Language); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save language")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"language": req.Language})
}

// Locale handles GET /api/locale: the effective language plus the caller's
// resolved location for the greeting line. Location is omitted when the
// lookup fails.
func (h *SettingsHandler) Locale(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"language": h.Geo.Language(r.Context())}
	if loc, err := h.Geo.Resolve(r.Context()); err == nil {
		resp["location"] = loc.String()
	}
	jsonResponse(w, http.StatusOK, resp)
}
