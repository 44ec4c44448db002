// ABOUTME: HTTP handlers for health and tuning endpoints
// ABOUTME: Reports server status, cache statistics, and active model coefficients

package handlers

import (
	"net/http"
	"time"

	"github.com/markalston/graphite-capacity-planner/models"
)

// Health returns API health status including cache statistics.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	resp := models.HealthResponse{
		Status:        "ok",
		TuningSource:  h.tuningSource,
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
	}

	if h.cache != nil {
		stats := h.cache.Stats()
		resp.Cache = &models.CacheStatus{
			TTLSeconds: int64(h.cache.TTL().Seconds()),
			Hits:       stats.Hits,
			Misses:     stats.Misses,
			HitRatio:   stats.Ratio,
			Entries:    stats.Entries,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// Tuning returns the coefficients used by the estimator.
func (h *Handler) Tuning(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, h.estimator.Tuning())
}
