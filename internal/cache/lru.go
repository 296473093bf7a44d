// Package cache provides a bounded, least-recently-used cache keyed by string.
package cache

import (
	"container/list"
	"sync"
)

// DefaultCapacity bounds a cache created with a non-positive capacity.
const DefaultCapacity = 256

// LRU is a fixed-capacity cache that evicts the least recently used entry.
// Entries never expire; they leave only by eviction or Clear.
type LRU[V any] struct {
	items    map[string]*list.Element
	order    *list.List
	capacity int
	mu       sync.Mutex
}

type entry[V any] struct {
	value V
	key   string
}

// NewLRU creates a cache holding at most capacity entries.
func NewLRU[V any](capacity int) *LRU[V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &LRU[V]{
		items:    make(map[string]*list.Element, capacity),
		order:    list.New(),
		capacity: capacity,
	}
}

// Get returns the cached value and marks it most recently used.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	elem, ok := c.items[key]
	if !ok {
		return zero, false
	}

	c.order.MoveToFront(elem)
	return elem.Value.(*entry[V]).value, true
}

// Set stores value under key, evicting the least recently used entry when full.
// It reports whether an entry was evicted.
func (c *LRU[V]) Set(key string, value V) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := &entry[V]{key: key, value: value}

	if elem, ok := c.items[key]; ok {
		elem.Value = e
		c.order.MoveToFront(elem)
		return false
	}

	c.items[key] = c.order.PushFront(e)
	if c.order.Len() <= c.capacity {
		return false
	}

	if oldest := c.order.Back(); oldest != nil {
		c.remove(oldest)
	}
	return true
}

// Len returns the number of cached entries.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Capacity returns the maximum number of entries.
func (c *LRU[V]) Capacity() int {
	return c.capacity
}

// Clear drops every entry.
func (c *LRU[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*list.Element, c.capacity)
	c.order.Init()
}

func (c *LRU[V]) remove(elem *list.Element) {
	e := elem.Value.(*entry[V])
	delete(c.items, e.key)
	c.order.Remove(elem)
}
