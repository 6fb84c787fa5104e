package dto

// StopRequest mirrors a domain Stop on the wire. Lat/Lon are pointers so a
// stop without coordinates is distinguishable from one at (0, 0).
type StopRequest struct {
	ID       string   `json:"id"`
	Address  string   `json:"address"`
	Lat      *float64 `json:"lat"`
	Lon      *float64 `json:"lon"`
	Locked   bool     `json:"locked"`
	Position *int     `json:"position"`
}

type OptimizeRequest struct {
	Stops   []StopRequest `json:"stops"`
	Vehicle string        `json:"vehicle"`
	Method  string        `json:"method"`
	Loop    bool          `json:"loop"`
}

type StopResponse struct {
	ID      string  `json:"id"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Locked  bool    `json:"locked,omitempty"`
}

type SegmentResponse struct {
	FromID       string      `json:"from_id"`
	ToID         string      `json:"to_id"`
	DistanceKm   float64     `json:"distance_km"`
	DurationMin  float64     `json:"duration_min"`
	Instructions []string    `json:"instructions"`
	Geometry     [][]float64 `json:"geometry,omitempty"`
}

type RouteResponse struct {
	ID               string            `json:"id"`
	Stops            []StopResponse    `json:"stops"`
	TotalDistanceKm  float64           `json:"total_distance_km"`
	TotalDurationMin float64           `json:"total_duration_min"`
	Vehicle          string            `json:"vehicle"`
	Loop             bool              `json:"loop"`
	Segments         []SegmentResponse `json:"segments"`
	Method           string            `json:"method"`
}

type OptimizeMetadata struct {
	CalculationTimeMs int64  `json:"calculation_time_ms"`
	Algorithm         string `json:"algorithm"`
	Provider          string `json:"provider"`
}

type OptimizeResponse struct {
	Route    RouteResponse    `json:"route"`
	Metadata OptimizeMetadata `json:"metadata"`
}

type GeocodeResponse struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}
