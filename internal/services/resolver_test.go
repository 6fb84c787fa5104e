package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"route-optimizer-service/internal/adapters/cache"
	"route-optimizer-service/internal/adapters/routing"
	"route-optimizer-service/internal/domain"
)

func TestResolverGeodesicFallback(t *testing.T) {
	heavy := &routing.FailingSegmentProvider{Err: errors.New("network down")}
	general := &routing.FailingSegmentProvider{Err: errors.New("network down")}
	r := NewResolver(heavy, general, cache.NewSegmentCache(10))

	from := stop("paris", 48.8566, 2.3522)
	to := stop("london", 51.5074, -0.1278)

	seg, err := r.ResolveSegment(context.Background(), from, to, domain.VehicleTruck)
	if err != nil {
		t.Fatalf("fallback tier must not fail: %v", err)
	}
	if seg.Geometry != nil {
		t.Fatalf("straight-line segment must carry no geometry")
	}
	if seg.DurationMin <= 0 {
		t.Fatalf("duration = %f, want > 0", seg.DurationMin)
	}
	if seg.DistanceKm <= 0 {
		t.Fatalf("distance = %f, want > 0", seg.DistanceKm)
	}
	if len(seg.Instructions) != 1 {
		t.Fatalf("expected single generic instruction, got %v", seg.Instructions)
	}
	if heavy.Calls != 1 || general.Calls != 1 {
		t.Fatalf("expected one attempt per tier, got heavy=%d general=%d", heavy.Calls, general.Calls)
	}

	// Degraded result is cached: the failing tiers must not be retried.
	if _, err := r.ResolveSegment(context.Background(), from, to, domain.VehicleTruck); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if heavy.Calls != 1 || general.Calls != 1 {
		t.Fatalf("failing providers retried within a run: heavy=%d general=%d", heavy.Calls, general.Calls)
	}
}

func TestResolverTruckAdjustment(t *testing.T) {
	general := routing.NewMockSegmentProvider([]routing.MockPair{
		{From: "a", To: "b", Km: 100, Minutes: 60},
	})
	r := NewResolver(nil, general, cache.NewSegmentCache(10))

	seg, err := r.ResolveSegment(context.Background(), stop("a", 48, 2), stop("b", 49, 3), domain.VehicleTruck)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(seg.DistanceKm-110) > 1e-9 {
		t.Fatalf("distance = %f, want 110 (x1.1)", seg.DistanceKm)
	}
	if math.Abs(seg.DurationMin-84) > 1e-9 {
		t.Fatalf("duration = %f, want 84 (x1.4)", seg.DurationMin)
	}
}

func TestResolverCarSkipsHeavyProvider(t *testing.T) {
	heavy := &routing.FailingSegmentProvider{Err: errors.New("should not be called")}
	general := routing.NewMockSegmentProvider([]routing.MockPair{
		{From: "a", To: "b", Km: 10, Minutes: 12},
	})
	r := NewResolver(heavy, general, cache.NewSegmentCache(10))

	seg, err := r.ResolveSegment(context.Background(), stop("a", 48, 2), stop("b", 49, 3), domain.VehicleCar)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if heavy.Calls != 0 {
		t.Fatalf("heavy provider called for a car segment")
	}
	if seg.DistanceKm != 10 || seg.DurationMin != 12 {
		t.Fatalf("car segment must be unadjusted, got %+v", seg)
	}
}

func TestResolverCacheHitAvoidsProviders(t *testing.T) {
	general := routing.NewMockSegmentProvider([]routing.MockPair{
		{From: "a", To: "b", Km: 10, Minutes: 12},
	})
	r := NewResolver(nil, general, cache.NewSegmentCache(10))

	ctx := context.Background()
	a, b := stop("a", 48, 2), stop("b", 49, 3)

	if _, err := r.ResolveSegment(ctx, a, b, domain.VehicleCar); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.ResolveSegment(ctx, a, b, domain.VehicleCar); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if general.Calls != 1 {
		t.Fatalf("provider calls = %d, want 1 (second resolve served from cache)", general.Calls)
	}
}

func TestResolverMissingCoordinates(t *testing.T) {
	r := NewResolver(nil, nil, cache.NewSegmentCache(10))

	_, err := r.ResolveSegment(context.Background(), domain.Stop{ID: "a"}, stop("b", 49, 3), domain.VehicleCar)
	if err == nil {
		t.Fatalf("expected precondition error for stop without coordinates")
	}
}
