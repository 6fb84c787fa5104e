package api

import (
	"net/http"

	"route-optimizer-service/internal/api/handlers"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(optimizer *services.Optimizer, geocoder ports.Geocoder) http.Handler {
	mux := http.NewServeMux()

	optimizeHandler := &handlers.OptimizeHandler{Service: optimizer}
	geocodeHandler := &handlers.GeocodeHandler{Geocoder: geocoder}
	statsHandler := &handlers.CacheStatsHandler{Service: optimizer}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/geocode", geocodeHandler.Geocode)
	mux.HandleFunc("/routes/optimize", optimizeHandler.Optimize)
	mux.HandleFunc("/cache/stats", statsHandler.Stats)

	return requestIDMiddleware(loggingMiddleware(mux))
}
