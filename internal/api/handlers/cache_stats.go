package handlers

import (
	"net/http"

	"route-optimizer-service/internal/services"
)

type CacheStatsHandler struct {
	Service *services.Optimizer
}

// Stats reports route cache occupancy.
func (h *CacheStatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, r, http.StatusOK, h.Service.RouteCacheStats())
}
