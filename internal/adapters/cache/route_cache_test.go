package cache

import (
	"fmt"
	"testing"
	"time"

	"route-optimizer-service/internal/domain"
)

func TestRouteCachePutGet(t *testing.T) {
	c := NewRouteCache(30*time.Minute, 50)

	route := domain.Route{ID: "r1", TotalDistanceKm: 12.5}
	c.Put("fp1", route)

	got, ok := c.Get("fp1")
	if !ok {
		t.Fatalf("expected hit for fp1")
	}
	if got.ID != "r1" || got.TotalDistanceKm != 12.5 {
		t.Fatalf("got %+v, want stored route", got)
	}

	if _, ok := c.Get("fp2"); ok {
		t.Fatalf("expected miss for unknown fingerprint")
	}
}

func TestRouteCacheTTL(t *testing.T) {
	c := NewRouteCache(30*time.Minute, 50)

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	c.Put("fp", domain.Route{ID: "r1"})

	c.now = func() time.Time { return base.Add(10 * time.Minute) }
	if _, ok := c.Get("fp"); !ok {
		t.Fatalf("expected hit at 10 minutes")
	}

	c.now = func() time.Time { return base.Add(31 * time.Minute) }
	if _, ok := c.Get("fp"); ok {
		t.Fatalf("expected entry expired at 31 minutes")
	}
	if got := c.Stats().Count; got != 0 {
		t.Fatalf("expected purge to drop expired entry, count = %d", got)
	}
}

func TestRouteCacheCapacityEvictsOldest(t *testing.T) {
	c := NewRouteCache(time.Hour, 50)

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 51; i++ {
		tick := base.Add(time.Duration(i) * time.Second)
		c.now = func() time.Time { return tick }
		c.Put(fmt.Sprintf("fp%d", i), domain.Route{ID: fmt.Sprintf("r%d", i)})
	}

	c.now = func() time.Time { return base.Add(time.Minute) }

	if got := c.Stats().Count; got != 50 {
		t.Fatalf("count = %d, want 50", got)
	}
	if _, ok := c.Get("fp0"); ok {
		t.Fatalf("expected oldest entry fp0 evicted")
	}
	if _, ok := c.Get("fp1"); !ok {
		t.Fatalf("expected fp1 retained")
	}
	if _, ok := c.Get("fp50"); !ok {
		t.Fatalf("expected newest entry retained")
	}
}

func TestRouteCacheOverwriteRefreshesTimestamp(t *testing.T) {
	c := NewRouteCache(30*time.Minute, 50)

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }
	c.Put("fp", domain.Route{ID: "old"})

	c.now = func() time.Time { return base.Add(20 * time.Minute) }
	c.Put("fp", domain.Route{ID: "new"})

	c.now = func() time.Time { return base.Add(40 * time.Minute) }
	got, ok := c.Get("fp")
	if !ok {
		t.Fatalf("expected overwrite to refresh TTL")
	}
	if got.ID != "new" {
		t.Fatalf("got route %q, want overwritten route", got.ID)
	}
}

func TestRouteCacheStats(t *testing.T) {
	c := NewRouteCache(time.Hour, 10)

	if s := c.Stats(); s.Count != 0 || s.ApproxSizeBytes != 0 {
		t.Fatalf("empty cache stats = %+v", s)
	}

	c.Put("fp", domain.Route{ID: "r1", Stops: []domain.Stop{{ID: "a", Address: "somewhere"}}})

	s := c.Stats()
	if s.Count != 1 {
		t.Fatalf("count = %d, want 1", s.Count)
	}
	if s.ApproxSizeBytes <= 0 {
		t.Fatalf("approx size = %d, want > 0", s.ApproxSizeBytes)
	}
}
