package handlers

import (
	"log"
	"net/http"
	"strings"

	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/ports"
)

type GeocodeHandler struct {
	Geocoder ports.Geocoder
}

// Geocode resolves a free-text address to its single best-match
// coordinates. Pass-through boundary operation; results are cached by the
// wrapped geocoder.
func (h *GeocodeHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if h.Geocoder == nil {
		writeError(w, r, http.StatusServiceUnavailable, "geocoding is not configured")
		return
	}

	address := strings.TrimSpace(r.URL.Query().Get("q"))
	if address == "" {
		writeError(w, r, http.StatusBadRequest, "q is required")
		return
	}

	coords, found, err := h.Geocoder.Geocode(r.Context(), address)
	if err != nil {
		log.Printf("geocode failed addr=%q err=%v", address, err)
		writeError(w, r, http.StatusBadGateway, "geocoding provider unavailable")
		return
	}
	if !found {
		writeError(w, r, http.StatusNotFound, "no match for address")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.GeocodeResponse{
		Address: address,
		Lat:     coords.Lat,
		Lon:     coords.Lon,
	})
}
