package api

import (
	"net/http"
	"time"

	"github.com/erazemk/najdeno/internal/derive"
	"github.com/erazemk/najdeno/internal/store"
)

// StatsHandler serves the dashboard aggregates.
type StatsHandler struct {
	Store *store.Store
}

// Summary handles GET /api/stats.
func (h *StatsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, derive.ComputeStats(h.Store.Items(), time.Now()))
}

// Trend handles GET /api/stats/trend. The range defaults to the last seven
// days, ending today.
func (h *StatsHandler) Trend(w http.ResponseWriter, r *http.Request) {
	end := time.Now()
	start := end.AddDate(0, 0, -6)

	if s := r.URL.Query().Get("start"); s != "" {
		day, err := time.Parse("2006-01-02", s)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid start date, want YYYY-MM-DD")
			return
		}
		start = day
	}
	if e := r.URL.Query().Get("end"); e != "" {
		day, err := time.Parse("2006-01-02", e)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid end date, want YYYY-MM-DD")
			return
		}
		end = day
	}
	if start.After(end) {
		jsonError(w, http.StatusBadRequest, "start date is after end date")
		return
	}

	series := derive.BuildDailySeries(h.Store.Items(), start, end)
	if series == nil {
		series = []derive.DayCount{}
	}
	jsonResponse(w, http.StatusOK, series)
}
