package domain

// Segment is a resolved travel leg between two consecutive stops.
//
// Geometry holds the travelled path as [lon, lat] pairs and is nil when the
// segment was produced by the straight-line fallback rather than a routing
// provider.
type Segment struct {
	From         Stop
	To           Stop
	DistanceKm   float64
	DurationMin  float64
	Instructions []string
	Geometry     [][]float64
}

// Route is the output of one optimization run: the final stop ordering and
// the segments resolved between consecutive stops, plus a wrap-around
// segment for loop routes with at least three stops.
//
// Totals are always the sums of the segments actually produced; they are
// never recomputed independently.
type Route struct {
	ID               string
	Stops            []Stop
	TotalDistanceKm  float64
	TotalDurationMin float64
	Vehicle          VehicleType
	Loop             bool
	Segments         []Segment
	Method           Method
}
