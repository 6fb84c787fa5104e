package cache

import (
	"fmt"
	"sync"

	"route-optimizer-service/internal/domain"
)

// DefaultSegmentCapacity bounds the in-memory segment cache.
const DefaultSegmentCapacity = 100

// SegmentCache memoizes resolved segments within a single optimization run.
//
// Eviction is strict insertion order (FIFO): once full, the oldest inserted
// key is dropped regardless of how recently it was read. There is no time
// expiry; the orchestrator clears the cache at every run boundary because
// provider conditions may have changed between requests.
type SegmentCache struct {
	mu       sync.Mutex
	capacity int
	items    map[string]domain.Segment
	order    []string
}

func NewSegmentCache(capacity int) *SegmentCache {
	if capacity <= 0 {
		capacity = DefaultSegmentCapacity
	}
	return &SegmentCache{
		capacity: capacity,
		items:    make(map[string]domain.Segment, capacity),
	}
}

// SegmentKey builds the cache key for a directed stop pair and vehicle.
func SegmentKey(fromID, toID string, vehicle domain.VehicleType) string {
	return fmt.Sprintf("%s|%s|%s", fromID, toID, vehicle)
}

func (c *SegmentCache) Get(key string) (domain.Segment, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	seg, ok := c.items[key]
	return seg, ok
}

// Put inserts a segment, evicting the single oldest-inserted key first when
// the cache is full. Re-putting an existing key overwrites in place without
// refreshing its insertion slot.
func (c *SegmentCache) Put(key string, seg domain.Segment) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[key]; ok {
		c.items[key] = seg
		return
	}

	if len(c.items) >= c.capacity && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.items, oldest)
	}

	c.items[key] = seg
	c.order = append(c.order, key)
}

// Clear empties both the map and the insertion-order record.
func (c *SegmentCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]domain.Segment, c.capacity)
	c.order = nil
}

func (c *SegmentCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.items)
}
