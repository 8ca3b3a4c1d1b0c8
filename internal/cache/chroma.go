// Package cache provides the memoisation store for maximum-chroma lookups.
//
// Maximum chroma at a given (hue, tone) is found by a deterministic
// bisection, so recomputing and overwriting an entry is always harmless.
// The store therefore only needs to be bounded and safe for concurrent use.
package cache

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCapacity is the default number of memoised entries.
const DefaultCapacity = 16384

// Key identifies one maximum-chroma search. Hue and Tone are already
// quantised by the caller.
type Key struct {
	Gamut      string
	Hue        float64
	Tone       float64
	Hi         float64
	Iterations int
}

// String returns a readable form for logs.
func (k Key) String() string {
	return fmt.Sprintf("%s h=%.2f t=%.2f hi=%.0f it=%d", k.Gamut, k.Hue, k.Tone, k.Hi, k.Iterations)
}

// ChromaCache memoises maximum-chroma results. Implementations must be safe
// for concurrent use.
type ChromaCache interface {
	Get(key Key) (float64, bool)
	Set(key Key, value float64)
}

// GetOrCreate returns the cached value for key or computes and stores it.
// Concurrent misses on the same key may compute twice; the results are
// identical.
func GetOrCreate(c ChromaCache, key Key, create func() float64) float64 {
	if v, ok := c.Get(key); ok {
		return v
	}
	v := create()
	c.Set(key, v)
	return v
}

// Stats holds cache statistics.
type Stats struct {
	Len       int    `json:"len"`
	Capacity  int    `json:"capacity"`
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Evictions uint64 `json:"evictions"`
}

// HitRate returns the hit rate as a fraction in [0, 1].
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// LRU is a bounded, thread-safe ChromaCache with atomic statistics.
type LRU struct {
	entries  *lru.Cache[Key, float64]
	capacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// NewLRU creates an LRU cache holding at most capacity entries.
// If capacity <= 0, DefaultCapacity is used.
func NewLRU(capacity int) *LRU {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &LRU{capacity: capacity}
	entries, err := lru.NewWithEvict[Key, float64](capacity, func(Key, float64) {
		c.evictions.Add(1)
	})
	if err != nil {
		// NewWithEvict only fails for non-positive sizes.
		panic(err)
	}
	c.entries = entries
	return c
}

// Get retrieves a cached value.
func (c *LRU) Get(key Key) (float64, bool) {
	v, ok := c.entries.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// Set stores a value, evicting the least recently used entry when full.
func (c *LRU) Set(key Key, value float64) {
	c.entries.Add(key, value)
}

// Len returns the number of cached entries.
func (c *LRU) Len() int {
	return c.entries.Len()
}

// Purge removes all entries; each counts as an eviction.
func (c *LRU) Purge() {
	c.entries.Purge()
}

// Stats returns a snapshot of the cache statistics.
func (c *LRU) Stats() Stats {
	return Stats{
		Len:       c.entries.Len(),
		Capacity:  c.capacity,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// None is a ChromaCache that stores nothing.
type None struct{}

// Get always misses.
func (None) Get(Key) (float64, bool) { return 0, false }

// Set discards the value.
func (None) Set(Key, float64) {}
