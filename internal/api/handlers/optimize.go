package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/services"
)

type OptimizeHandler struct {
	Service *services.Optimizer
}

// Optimize validates and translates the wire request, runs the optimizer,
// and renders the route with its provenance metadata.
func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.OptimizeRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	vehicle, ok := domain.ParseVehicleType(req.Vehicle)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "vehicle must be car or truck")
		return
	}

	method, ok := domain.ParseMethod(req.Method)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "method must be shortest_distance, fastest_time, or balanced")
		return
	}

	if len(req.Stops) < 2 {
		writeError(w, r, http.StatusBadRequest, "at least 2 stops are required")
		return
	}

	stops := make([]domain.Stop, 0, len(req.Stops))
	for i, s := range req.Stops {
		if s.Lat == nil || s.Lon == nil {
			writeError(w, r, http.StatusBadRequest, "every stop must carry lat and lon")
			return
		}
		stop := domain.Stop{
			ID:      s.ID,
			Address: s.Address,
			Coords:  &domain.Coordinates{Lat: *s.Lat, Lon: *s.Lon},
			Locked:  s.Locked,
		}
		if stop.ID == "" {
			writeError(w, r, http.StatusBadRequest, "every stop must carry an id")
			return
		}
		if s.Position != nil {
			stop.Position = *s.Position
		} else if s.Locked {
			// A locked stop without a declared index pins where it stands.
			stop.Position = i
		}
		stops = append(stops, stop)
	}

	result, err := h.Service.Optimize(r.Context(), services.OptimizeRequest{
		Stops:   stops,
		Vehicle: vehicle,
		Method:  method,
		Loop:    req.Loop,
	})
	if err != nil {
		if errors.Is(err, services.ErrPrecondition) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("optimize failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toOptimizeResponse(result))
}

func toOptimizeResponse(result services.OptimizeResult) dto.OptimizeResponse {
	route := result.Route

	stops := make([]dto.StopResponse, 0, len(route.Stops))
	for _, s := range route.Stops {
		stops = append(stops, dto.StopResponse{
			ID:      s.ID,
			Address: s.Address,
			Lat:     s.Coords.Lat,
			Lon:     s.Coords.Lon,
			Locked:  s.Locked,
		})
	}

	segments := make([]dto.SegmentResponse, 0, len(route.Segments))
	for _, seg := range route.Segments {
		segments = append(segments, dto.SegmentResponse{
			FromID:       seg.From.ID,
			ToID:         seg.To.ID,
			DistanceKm:   seg.DistanceKm,
			DurationMin:  seg.DurationMin,
			Instructions: seg.Instructions,
			Geometry:     seg.Geometry,
		})
	}

	return dto.OptimizeResponse{
		Route: dto.RouteResponse{
			ID:               route.ID,
			Stops:            stops,
			TotalDistanceKm:  route.TotalDistanceKm,
			TotalDurationMin: route.TotalDurationMin,
			Vehicle:          string(route.Vehicle),
			Loop:             route.Loop,
			Segments:         segments,
			Method:           string(route.Method),
		},
		Metadata: dto.OptimizeMetadata{
			CalculationTimeMs: result.CalculationTimeMs,
			Algorithm:         result.Algorithm,
			Provider:          result.Provenance,
		},
	}
}
