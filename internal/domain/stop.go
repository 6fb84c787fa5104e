package domain

// VehicleType selects the routing profile used to resolve segments and the
// fallback speed constants applied when no provider is reachable.
type VehicleType string

const (
	VehicleCar   VehicleType = "car"
	VehicleTruck VehicleType = "truck"
)

// ParseVehicleType validates a wire-level vehicle string, defaulting to car.
func ParseVehicleType(s string) (VehicleType, bool) {
	switch VehicleType(s) {
	case VehicleCar, VehicleTruck:
		return VehicleType(s), true
	case "":
		return VehicleCar, true
	}
	return "", false
}

// Method selects the cost a stop ordering is optimized against.
type Method string

const (
	MethodShortestDistance Method = "shortest_distance"
	MethodFastestTime      Method = "fastest_time"
	MethodBalanced         Method = "balanced"
)

// ParseMethod validates a wire-level method string, defaulting to
// shortest_distance.
func ParseMethod(s string) (Method, bool) {
	switch Method(s) {
	case MethodShortestDistance, MethodFastestTime, MethodBalanced:
		return Method(s), true
	case "":
		return MethodShortestDistance, true
	}
	return "", false
}

// Stop is a single geographic point to visit.
//
// A locked stop is pinned to Position in the final ordering and excluded
// from reordering. A stop without coordinates cannot be scored and must be
// rejected before optimization begins.
type Stop struct {
	ID       string
	Address  string
	Coords   *Coordinates
	Locked   bool
	Position int
}

// HasCoords reports whether the stop can participate in distance scoring.
func (s Stop) HasCoords() bool { return s.Coords != nil }
