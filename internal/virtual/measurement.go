package virtual

import (
	"k8s.io/utils/lru"
)

// CacheMetrics tracks measurement cache performance
type CacheMetrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Entries   int
}

// HitRatio returns the cache hit ratio
func (m CacheMetrics) HitRatio() float64 {
	total := m.Hits + m.Misses
	if total == 0 {
		return 0
	}
	return float64(m.Hits) / float64(total)
}

// MeasurementCache stores confirmed item sizes keyed by item identity, never
// by index, so measurements survive a reorder of the backing collection.
//
// With a capacity of 0 the cache is unbounded and only shrinks on Reset. A
// positive capacity evicts the least recently used entry, except for pinned
// keys: a pinned entry pushed out of the LRU is retained until it is unpinned.
type MeasurementCache struct {
	entries  *lru.Cache
	capacity int
	version  uint64
	metrics  CacheMetrics

	pins     map[Key]int
	retained map[Key]float64
	clearing bool
}

// NewMeasurementCache creates a measurement cache
func NewMeasurementCache(capacity int) *MeasurementCache {
	if capacity < 0 {
		capacity = 0
	}
	c := &MeasurementCache{
		capacity: capacity,
		pins:     make(map[Key]int),
		retained: make(map[Key]float64),
	}
	c.entries = lru.NewWithEvictionFunc(capacity, c.evicted)
	return c
}

// evicted runs under the LRU's lock and must not call back into it
func (c *MeasurementCache) evicted(key lru.Key, value interface{}) {
	if c.clearing {
		return
	}
	if c.pins[key] > 0 {
		c.retained[key] = value.(float64)
		return
	}
	c.metrics.Evictions++
	c.version++
}

// Get returns the confirmed size for key
func (c *MeasurementCache) Get(key Key) (float64, bool) {
	value, ok := c.entries.Get(key)
	if ok {
		c.metrics.Hits++
		return value.(float64), true
	}
	if size, ok := c.retained[key]; ok {
		c.metrics.Hits++
		return size, true
	}
	c.metrics.Misses++
	return 0, false
}

// Set records a confirmed size for key and bumps the cache version
func (c *MeasurementCache) Set(key Key, size float64) {
	delete(c.retained, key)
	c.entries.Add(key, size)
	c.version++
}

// Pin protects the entry for key from eviction until a matching Unpin. Pins
// are counted.
func (c *MeasurementCache) Pin(key Key) {
	c.pins[key]++
}

// Unpin releases one pin on key. A retained entry whose last pin is released
// goes back into the LRU as its most recent entry.
func (c *MeasurementCache) Unpin(key Key) {
	switch n := c.pins[key]; {
	case n > 1:
		c.pins[key] = n - 1
		return
	case n == 1:
		delete(c.pins, key)
	default:
		return
	}

	if size, ok := c.retained[key]; ok {
		delete(c.retained, key)
		c.entries.Add(key, size)
	}
}

// Pinned returns the number of pinned keys
func (c *MeasurementCache) Pinned() int {
	return len(c.pins)
}

// Reset drops every entry. Pins are kept. Call it when the backing collection
// is replaced by an unrelated one.
func (c *MeasurementCache) Reset() {
	c.clearing = true
	c.entries.Clear()
	c.clearing = false
	c.retained = make(map[Key]float64)
	c.version++
}

// Len returns the number of cached entries
func (c *MeasurementCache) Len() int {
	return c.entries.Len() + len(c.retained)
}

// Version changes whenever the cache content changes
func (c *MeasurementCache) Version() uint64 {
	return c.version
}

// Metrics returns a snapshot of the cache metrics
func (c *MeasurementCache) Metrics() CacheMetrics {
	m := c.metrics
	m.Entries = c.Len()
	return m
}
