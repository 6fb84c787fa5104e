package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"route-optimizer-service/internal/adapters/cache"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
)

// ErrPrecondition marks request validation failures (too few stops, missing
// coordinates). These surface to the caller; everything else degrades
// silently through the resolver's fallback tiers.
var ErrPrecondition = errors.New("invalid optimization request")

// Provenance tags for response metadata.
const (
	ProvenanceCache    = "cache"
	ProvenanceComputed = "computed"
)

type OptimizeRequest struct {
	Stops   []domain.Stop
	Vehicle domain.VehicleType
	Method  domain.Method
	Loop    bool
}

type OptimizeResult struct {
	Route             domain.Route
	CalculationTimeMs int64
	Algorithm         string
	Provenance        string
}

// Optimizer is the route optimization facade: it validates requests, owns
// both cache lifecycles, and drives the sequencer and resolver.
type Optimizer struct {
	// runMu serializes optimization runs: the segment cache is cleared at
	// every run boundary and must not be shared between concurrent runs.
	runMu sync.Mutex

	resolver   ports.SegmentProvider
	sequencer  *Sequencer
	routeCache *cache.RouteCache
	segments   *cache.SegmentCache
}

func NewOptimizer(
	resolver ports.SegmentProvider,
	sequencer *Sequencer,
	routeCache *cache.RouteCache,
	segments *cache.SegmentCache,
) *Optimizer {
	return &Optimizer{
		resolver:   resolver,
		sequencer:  sequencer,
		routeCache: routeCache,
		segments:   segments,
	}
}

// RouteCacheStats exposes route cache occupancy for the stats endpoint and
// the background janitor.
func (o *Optimizer) RouteCacheStats() cache.RouteCacheStats {
	return o.routeCache.Stats()
}

// PurgeRouteCache drops expired route entries and reports how many.
func (o *Optimizer) PurgeRouteCache() int {
	return o.routeCache.PurgeExpired()
}

// Optimize orders the request's stops and resolves the final segments.
//
// A route cache hit short-circuits everything and is tagged with
// provenance "cache"; otherwise the segment cache is cleared (provider
// conditions may have changed since the previous run), the sequencer is
// run, segments are resolved along the final order, and the assembled
// route is cached and returned tagged "computed".
func (o *Optimizer) Optimize(ctx context.Context, req OptimizeRequest) (OptimizeResult, error) {
	start := time.Now()

	if len(req.Stops) < 2 {
		return OptimizeResult{}, fmt.Errorf("%w: at least 2 stops are required", ErrPrecondition)
	}
	for _, s := range req.Stops {
		if !s.HasCoords() {
			return OptimizeResult{}, fmt.Errorf("%w: stop %q has no coordinates", ErrPrecondition, s.ID)
		}
	}

	fingerprint := Fingerprint(req.Stops, req.Vehicle, req.Method, req.Loop)

	if route, ok := o.routeCache.Get(fingerprint); ok {
		return OptimizeResult{
			Route:             route,
			CalculationTimeMs: time.Since(start).Milliseconds(),
			Algorithm:         string(route.Method),
			Provenance:        ProvenanceCache,
		}, nil
	}

	o.runMu.Lock()
	defer o.runMu.Unlock()

	o.segments.Clear()

	ordered, algorithm, err := o.sequencer.Sequence(ctx, req.Stops, req.Method, req.Loop, req.Vehicle)
	if err != nil {
		return OptimizeResult{}, fmt.Errorf("%w: %v", ErrPrecondition, err)
	}

	segments := make([]domain.Segment, 0, len(ordered))
	for i := 0; i+1 < len(ordered); i++ {
		seg, err := o.resolver.ResolveSegment(ctx, ordered[i], ordered[i+1], req.Vehicle)
		if err != nil {
			return OptimizeResult{}, fmt.Errorf("resolve segment %d: %w", i, err)
		}
		segments = append(segments, seg)
	}

	// Wrap-around leg closes the loop; loops of 2 stops stay a single
	// out-and-back segment.
	if req.Loop && len(ordered) >= 3 {
		seg, err := o.resolver.ResolveSegment(ctx, ordered[len(ordered)-1], ordered[0], req.Vehicle)
		if err != nil {
			return OptimizeResult{}, fmt.Errorf("resolve wrap-around segment: %w", err)
		}
		segments = append(segments, seg)
	}

	totalDist := 0.0
	totalDur := 0.0
	for _, seg := range segments {
		totalDist += seg.DistanceKm
		totalDur += seg.DurationMin
	}

	route := domain.Route{
		ID:               uuid.NewString(),
		Stops:            ordered,
		TotalDistanceKm:  totalDist,
		TotalDurationMin: totalDur,
		Vehicle:          req.Vehicle,
		Loop:             req.Loop,
		Segments:         segments,
		Method:           req.Method,
	}

	o.routeCache.Put(fingerprint, route)

	return OptimizeResult{
		Route:             route,
		CalculationTimeMs: time.Since(start).Milliseconds(),
		Algorithm:         algorithm,
		Provenance:        ProvenanceComputed,
	}, nil
}
