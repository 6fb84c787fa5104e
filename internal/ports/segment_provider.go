package ports

import (
	"context"

	"route-optimizer-service/internal/domain"
)

// Contract for resolving the travel segment between two located stops.
// Implementations may reach external routing services; callers treat any
// error as "this tier failed" and fall back.
type SegmentProvider interface {
	ResolveSegment(ctx context.Context, from, to domain.Stop, vehicle domain.VehicleType) (domain.Segment, error)
}
