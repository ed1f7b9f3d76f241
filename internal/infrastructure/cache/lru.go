package cache

import (
	"container/list"
	"sync"
	"sync/atomic"

	"github.com/aetherdrive/prediction-service/internal/domain/model"
	"github.com/aetherdrive/prediction-service/internal/domain/port"
	"github.com/aetherdrive/prediction-service/internal/domain/valueobject"
)

// DefaultCapacity is the number of score records kept per service instance.
const DefaultCapacity = 256

// Compile-time assertion that LRU implements port.ScoreCache.
var _ port.ScoreCache = (*LRU)(nil)

// LRU is a fixed-capacity, least-recently-used cache of score records.
// All methods are safe for concurrent use.
type LRU struct {
	mu       sync.Mutex
	capacity int
	items    map[valueobject.Digest]*list.Element
	order    *list.List // front = most recently used

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

type entry struct {
	digest valueobject.Digest
	record model.ScoreRecord
}

// NewLRU creates a cache holding at most capacity records. A non-positive
// capacity falls back to DefaultCapacity.
func NewLRU(capacity int) *LRU {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &LRU{
		capacity: capacity,
		items:    make(map[valueobject.Digest]*list.Element, capacity),
		order:    list.New(),
	}
}

// Get returns the record for digest and marks it most recently used.
func (c *LRU) Get(digest valueobject.Digest) (model.ScoreRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[digest]; ok {
		c.order.MoveToFront(elem)
		c.hits.Add(1)
		return elem.Value.(*entry).record, true
	}

	c.misses.Add(1)
	return model.ScoreRecord{}, false
}

// Add stores a record. Re-adding a digest refreshes its recency. It reports
// whether the least recently used record was evicted to make room.
func (c *LRU) Add(digest valueobject.Digest, record model.ScoreRecord) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[digest]; ok {
		c.order.MoveToFront(elem)
		elem.Value.(*entry).record = record
		return false
	}

	evicted := false
	if c.order.Len() >= c.capacity {
		c.evictOldest()
		evicted = true
	}

	c.items[digest] = c.order.PushFront(&entry{digest: digest, record: record})
	return evicted
}

// Contains reports whether digest is cached without touching its recency.
func (c *LRU) Contains(digest valueobject.Digest) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.items[digest]
	return ok
}

// Len returns the number of cached records.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.order.Len()
}

// Capacity returns the maximum number of records.
func (c *LRU) Capacity() int {
	return c.capacity
}

// Purge drops every record and resets the counters.
func (c *LRU) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[valueobject.Digest]*list.Element, c.capacity)
	c.order.Init()
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}

// Stats returns a snapshot of the counters.
func (c *LRU) Stats() port.CacheStats {
	return port.CacheStats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      c.Len(),
		Capacity:  c.capacity,
	}
}

// evictOldest removes the least recently used entry. Caller holds mu.
func (c *LRU) evictOldest() {
	oldest := c.order.Back()
	if oldest == nil {
		return
	}
	c.order.Remove(oldest)
	delete(c.items, oldest.Value.(*entry).digest)
	c.evictions.Add(1)
}
