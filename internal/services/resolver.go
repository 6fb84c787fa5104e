package services

import (
	"context"
	"fmt"
	"log"

	"route-optimizer-service/internal/adapters/cache"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/geo"
	"route-optimizer-service/internal/ports"
)

// Synthetic adjustment applied to generic-profile results for trucks, since
// the general provider cannot model weight or height restrictions.
const (
	truckDistanceFactor = 1.1
	truckDurationFactor = 1.4
)

// Assumed speeds for the straight-line fallback tier.
const (
	truckFallbackSpeedKmh = 50.0
	carFallbackSpeedKmh   = 70.0
)

// Resolver turns a pair of located stops into a concrete travel segment.
//
// Tiers, each strictly more available and less precise than the last:
// segment cache, heavy-vehicle provider (trucks only, when configured),
// general routing provider, geodesic straight line. Every tier's result is
// cached, including the degraded straight-line one, so a failing provider
// is not retried for the same pair within one optimization run.
type Resolver struct {
	heavy    ports.SegmentProvider
	general  ports.SegmentProvider
	segments *cache.SegmentCache
}

// NewResolver builds a resolver. heavy may be nil when no heavy-vehicle
// provider credential is configured; general may be nil in tests.
func NewResolver(heavy, general ports.SegmentProvider, segments *cache.SegmentCache) *Resolver {
	return &Resolver{heavy: heavy, general: general, segments: segments}
}

// ResolveSegment resolves the segment from -> to for the given vehicle.
// It fails only when either stop lacks coordinates.
func (r *Resolver) ResolveSegment(
	ctx context.Context,
	from, to domain.Stop,
	vehicle domain.VehicleType,
) (domain.Segment, error) {
	if !from.HasCoords() || !to.HasCoords() {
		return domain.Segment{}, fmt.Errorf(
			"resolve segment %q -> %q: both stops must have coordinates", from.ID, to.ID,
		)
	}

	key := cache.SegmentKey(from.ID, to.ID, vehicle)
	if seg, ok := r.segments.Get(key); ok {
		return seg, nil
	}

	if vehicle == domain.VehicleTruck && r.heavy != nil {
		seg, err := r.heavy.ResolveSegment(ctx, from, to, vehicle)
		if err == nil {
			// The heavy-vehicle profile already models truck constraints;
			// no synthetic adjustment.
			r.segments.Put(key, seg)
			return seg, nil
		}
		log.Printf("WARN heavy provider failed from=%s to=%s err=%v", from.ID, to.ID, err)
	}

	if r.general != nil {
		seg, err := r.general.ResolveSegment(ctx, from, to, vehicle)
		if err == nil {
			if vehicle == domain.VehicleTruck {
				seg.DistanceKm *= truckDistanceFactor
				seg.DurationMin *= truckDurationFactor
			}
			r.segments.Put(key, seg)
			return seg, nil
		}
		log.Printf("WARN general provider failed from=%s to=%s err=%v", from.ID, to.ID, err)
	}

	seg := r.straightLine(from, to, vehicle)
	r.segments.Put(key, seg)
	return seg, nil
}

// straightLine estimates the segment from great-circle distance and an
// assumed speed. Total: this tier cannot fail.
func (r *Resolver) straightLine(from, to domain.Stop, vehicle domain.VehicleType) domain.Segment {
	speed := carFallbackSpeedKmh
	if vehicle == domain.VehicleTruck {
		speed = truckFallbackSpeedKmh
	}

	dist := geo.Distance(*from.Coords, *to.Coords)

	return domain.Segment{
		From:         from,
		To:           to,
		DistanceKm:   dist,
		DurationMin:  dist / speed * 60,
		Instructions: []string{fmt.Sprintf("Travel directly to %s", to.Address)},
	}
}
