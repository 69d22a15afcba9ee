package hazardapi

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/couchcryptid/parcel-risk-service/internal/domain"
	"github.com/couchcryptid/parcel-risk-service/internal/observability"
)

// CachedLookup wraps a HazardLookup with an in-memory LRU cache keyed by
// category and coordinates rounded to about 11 m.
type CachedLookup struct {
	inner   domain.HazardLookup
	cache   *lruCache[domain.Analysis]
	metrics *observability.Metrics
}

// NewCachedLookup creates a cache decorator around a hazard lookup.
func NewCachedLookup(inner domain.HazardLookup, maxEntries int, metrics *observability.Metrics) *CachedLookup {
	return &CachedLookup{
		inner:   inner,
		cache:   newLRUCache[domain.Analysis](maxEntries),
		metrics: metrics,
	}
}

func (c *CachedLookup) LookupHazard(ctx context.Context, category domain.HazardCategory, parcel domain.ParcelRequest) (domain.Analysis, error) {
	key := cacheKey(category, parcel)
	if a, ok := c.cache.get(key); ok {
		c.metrics.HazardCache.WithLabelValues(string(category), "hit").Inc()
		return a, nil
	}
	c.metrics.HazardCache.WithLabelValues(string(category), "miss").Inc()

	a, err := c.inner.LookupHazard(ctx, category, parcel)
	if err != nil {
		return nil, err
	}
	// Only cache found analyses so coverage gaps can be retried.
	if a != nil {
		c.cache.put(key, a)
	}
	return a, nil
}

func cacheKey(category domain.HazardCategory, parcel domain.ParcelRequest) string {
	return fmt.Sprintf("%s|%.4f,%.4f|%s",
		category,
		math.Round(parcel.Lat*1e4)/1e4,
		math.Round(parcel.Lon*1e4)/1e4,
		strings.ToUpper(strings.TrimSpace(parcel.Jurisdiction)),
	)
}

// lruCache is a simple thread-safe LRU cache.
type lruCache[V any] struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry[V]
	head       *entry[V] // most recently used
	tail       *entry[V] // least recently used
}

type entry[V any] struct {
	key   string
	value V
	prev  *entry[V]
	next  *entry[V]
}

func newLRUCache[V any](maxEntries int) *lruCache[V] {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &lruCache[V]{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry[V]),
	}
}

func (c *lruCache[V]) get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache[V]) put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry[V]{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache[V]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lruCache[V]) moveToFront(e *entry[V]) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache[V]) addToFront(e *entry[V]) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache[V]) remove(e *entry[V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache[V]) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
