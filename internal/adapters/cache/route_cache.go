package cache

import (
	"encoding/json"
	"sync"
	"time"

	"route-optimizer-service/internal/domain"
)

const (
	// DefaultRouteTTL is how long a cached route stays servable.
	DefaultRouteTTL = 30 * time.Minute
	// DefaultRouteCapacity bounds the number of cached routes.
	DefaultRouteCapacity = 50
)

type routeEntry struct {
	route     domain.Route
	createdAt time.Time
}

// RouteCacheStats is a point-in-time snapshot of cache occupancy.
type RouteCacheStats struct {
	Count           int `json:"count"`
	ApproxSizeBytes int `json:"approx_size_bytes"`
}

// RouteCache maps request fingerprints to previously computed routes.
//
// Entries expire after a TTL and the cache is bounded: when an insert pushes
// it past capacity, the single globally-oldest entry by creation timestamp
// is evicted (timestamp scan, not insertion order). Safe for concurrent use.
type RouteCache struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	entries  map[string]routeEntry

	// now is swapped in tests to simulate clock advance.
	now func() time.Time
}

func NewRouteCache(ttl time.Duration, capacity int) *RouteCache {
	if ttl <= 0 {
		ttl = DefaultRouteTTL
	}
	if capacity <= 0 {
		capacity = DefaultRouteCapacity
	}
	return &RouteCache{
		ttl:      ttl,
		capacity: capacity,
		entries:  make(map[string]routeEntry, capacity),
		now:      time.Now,
	}
}

// Get purges expired entries, then returns the cached route for the
// fingerprint if it is still within the TTL.
func (c *RouteCache) Get(fingerprint string) (domain.Route, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.purgeLocked(now)

	e, ok := c.entries[fingerprint]
	if !ok {
		return domain.Route{}, false
	}
	// purgeLocked already dropped stale entries; re-check in case the
	// entry aged out between timestamp reads.
	if now.Sub(e.createdAt) > c.ttl {
		delete(c.entries, fingerprint)
		return domain.Route{}, false
	}

	return e.route, true
}

// Put inserts or silently overwrites the route for a fingerprint with a
// fresh timestamp. When the insert exceeds capacity, the globally-oldest
// entry is evicted.
func (c *RouteCache) Put(fingerprint string, route domain.Route) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[fingerprint] = routeEntry{route: route, createdAt: c.now()}

	if len(c.entries) <= c.capacity {
		return
	}

	var oldestKey string
	var oldestAt time.Time
	first := true
	for k, e := range c.entries {
		if first || e.createdAt.Before(oldestAt) {
			oldestKey = k
			oldestAt = e.createdAt
			first = false
		}
	}
	delete(c.entries, oldestKey)
}

func (c *RouteCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]routeEntry, c.capacity)
}

// PurgeExpired drops all entries older than the TTL and reports how many
// were removed. Called periodically by the cache janitor.
func (c *RouteCache) PurgeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.purgeLocked(c.now())
}

func (c *RouteCache) purgeLocked(now time.Time) int {
	removed := 0
	for k, e := range c.entries {
		if now.Sub(e.createdAt) > c.ttl {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// Stats reports entry count and an approximate memory footprint, estimated
// from the JSON encoding of each cached route.
func (c *RouteCache) Stats() RouteCacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	bytes := 0
	for k, e := range c.entries {
		bytes += len(k)
		if b, err := json.Marshal(e.route); err == nil {
			bytes += len(b)
		}
	}

	return RouteCacheStats{Count: len(c.entries), ApproxSizeBytes: bytes}
}
