// ABOUTME: Thread-safe, size-limited cache that evicts entries idle longer than a TTL
// ABOUTME: Used by the web host to bound per-profile clock sessions

package idlecache

import (
	"container/list"
	"sync"
	"time"
)

// DefaultCleanupInterval is how often expired entries are swept.
const DefaultCleanupInterval = time.Minute

type entry[V any] struct {
	key     string
	value   V
	touched time.Time
	element *list.Element
}

// Cache maps keys to values with idle expiry. Recency order is kept in a
// doubly-linked list so the least recently used entry is found in O(1).
type Cache[V any] struct {
	mu      sync.Mutex
	items   map[string]*entry[V]
	order   *list.List // least recently used at front
	ttl     time.Duration
	maxSize int

	busy    func(V) bool
	onEvict func(key string, v V)
	now     func() time.Time

	done   chan struct{}
	closed bool
}

// Option configures a Cache.
type Option[V any] func(*Cache[V])

// WithBusy marks values that must not be evicted (for example a session with
// open streams). It is called with the cache lock held and must not call back
// into the cache.
func WithBusy[V any](busy func(V) bool) Option[V] {
	return func(c *Cache[V]) { c.busy = busy }
}

// WithOnEvict is called, outside the lock, for every value removed by expiry,
// capacity or Purge.
func WithOnEvict[V any](fn func(key string, v V)) Option[V] {
	return func(c *Cache[V]) { c.onEvict = fn }
}

// WithClock replaces time.Now (tests).
func WithClock[V any](now func() time.Time) Option[V] {
	return func(c *Cache[V]) { c.now = now }
}

// New creates a cache. A background goroutine sweeps expired entries every
// cleanupInterval (DefaultCleanupInterval if non-positive) until Close.
func New[V any](ttl time.Duration, maxSize int, cleanupInterval time.Duration, opts ...Option[V]) *Cache[V] {
	c := &Cache[V]{
		items:   make(map[string]*entry[V]),
		order:   list.New(),
		ttl:     ttl,
		maxSize: maxSize,
		busy:    func(V) bool { return false },
		onEvict: func(string, V) {},
		now:     time.Now,
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if cleanupInterval <= 0 {
		cleanupInterval = DefaultCleanupInterval
	}
	go c.cleanup(cleanupInterval)
	return c
}

// Get returns the value for key and marks it as recently used.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.touchLocked(e)
	return e.value, true
}

// GetOrCreate returns the value for key, calling create to add it when absent.
// Adding to a full cache evicts the least recently used idle entry first.
func (c *Cache[V]) GetOrCreate(key string, create func() V) V {
	return c.Acquire(key, create, nil)
}

// Acquire is GetOrCreate that also runs hold on the value before the cache
// lock is released, so a value that hold marks busy cannot be swept in
// between. Like the busy predicate, hold must not call back into the cache.
func (c *Cache[V]) Acquire(key string, create func() V, hold func(V)) V {
	c.mu.Lock()
	if e, ok := c.items[key]; ok {
		c.touchLocked(e)
		if hold != nil {
			hold(e.value)
		}
		c.mu.Unlock()
		return e.value
	}

	var evicted []*entry[V]
	if c.maxSize > 0 && len(c.items) >= c.maxSize {
		if e := c.oldestIdleLocked(); e != nil {
			c.removeLocked(e)
			evicted = append(evicted, e)
		}
	}

	e := &entry[V]{key: key, value: create(), touched: c.now()}
	e.element = c.order.PushBack(e)
	c.items[key] = e
	if hold != nil {
		hold(e.value)
	}
	c.mu.Unlock()

	c.notify(evicted)
	return e.value
}

// Len returns the number of cached entries.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Sweep removes every idle entry not touched within the TTL and returns how
// many were removed.
func (c *Cache[V]) Sweep() int {
	c.mu.Lock()
	now := c.now()
	var evicted []*entry[V]
	for el := c.order.Front(); el != nil; {
		next := el.Next()
		e, _ := el.Value.(*entry[V])
		if now.Sub(e.touched) > c.ttl && !c.busy(e.value) {
			c.removeLocked(e)
			evicted = append(evicted, e)
		}
		el = next
	}
	c.mu.Unlock()

	c.notify(evicted)
	return len(evicted)
}

// Purge removes every entry, busy or not.
func (c *Cache[V]) Purge() {
	c.mu.Lock()
	evicted := make([]*entry[V], 0, len(c.items))
	for el := c.order.Front(); el != nil; el = el.Next() {
		e, _ := el.Value.(*entry[V])
		evicted = append(evicted, e)
	}
	c.items = make(map[string]*entry[V])
	c.order.Init()
	c.mu.Unlock()

	c.notify(evicted)
}

// Close stops the background sweep. It is safe to call multiple times.
func (c *Cache[V]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		close(c.done)
		c.closed = true
	}
}

func (c *Cache[V]) touchLocked(e *entry[V]) {
	e.touched = c.now()
	c.order.MoveToBack(e.element)
}

// oldestIdleLocked returns the least recently used entry that is not busy.
func (c *Cache[V]) oldestIdleLocked() *entry[V] {
	for el := c.order.Front(); el != nil; el = el.Next() {
		e, _ := el.Value.(*entry[V])
		if !c.busy(e.value) {
			return e
		}
	}
	return nil
}

func (c *Cache[V]) removeLocked(e *entry[V]) {
	c.order.Remove(e.element)
	delete(c.items, e.key)
}

func (c *Cache[V]) notify(evicted []*entry[V]) {
	for _, e := range evicted {
		c.onEvict(e.key, e.value)
	}
}

func (c *Cache[V]) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.Sweep()
		case <-c.done:
			return
		}
	}
}
