// This is free and unencumbered software released into the public domain.
//
// Anyone is free to copy, modify, publish, use, compile, sell, or
// distribute this software, either in source code form or as a compiled
// binary, for any purpose, commercial or non-commercial, and by any
// means.
//
// In jurisdictions that recognize copyright laws, the author or authors
// of this software dedicate any and all copyright interest in the
// software to the public domain. We make this dedication for the benefit
// of the public at large and to the detriment of our heirs and
// successors. We intend this dedication to be an overt act of
// relinquishment in perpetuity of all present and future rights to this
// software under copyright law.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
// MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
// IN NO EVENT SHALL THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR
// OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE,
// ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.
//
// For more information, please refer to <https://unlicense.org>

// Package lru implements the fixed-capacity NodeId→Node cache (C10):
// get promotes to most-recently-used, put evicts the least-recently
// used entry past capacity and hands it back to the caller so the
// allocator can write it through — the same eviction-callback shape
// the corpus uses for an LRU-backed node cache (compare
// hashicorp/golang-lru's NewWithEvict pattern, grounded on the
// binCacheEvictionCallback wiring in the retrieved go-ethereum binary
// trie), but surfaced as a return value from Put instead of an
// independent callback, so the allocator can hold its own lock
// across the write-back rather than re-entering it from inside
// golang-lru's internals.
package lru

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache is a generic fixed-capacity LRU keyed by K, holding V.
type Cache[K comparable, V any] struct {
	inner       *lru.Cache[K, V]
	evictedKey  K
	evictedVal  V
	evictedHeld bool
}

// New builds a cache with the given capacity (must be positive).
func New[K comparable, V any](capacity int) *Cache[K, V] {
	c := &Cache[K, V]{}
	inner, _ := lru.NewWithEvict[K, V](capacity, func(k K, v V) {
		c.evictedKey = k
		c.evictedVal = v
		c.evictedHeld = true
	})
	c.inner = inner
	return c
}

// Get promotes k to most-recently-used and returns its value.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	return c.inner.Get(k)
}

// Peek returns k's value without affecting recency.
func (c *Cache[K, V]) Peek(k K) (V, bool) {
	return c.inner.Peek(k)
}

// Put inserts or updates k, promoting it to most-recently-used. If
// this eviction pressure forces out the least-recently-used entry,
// evicted is true and evictedKey/evictedVal carry what was dropped,
// which the allocator must then write back unless it should be
// deleted.
func (c *Cache[K, V]) Put(k K, v V) (evictedKey K, evictedVal V, evicted bool) {
	c.evictedHeld = false
	c.inner.Add(k, v)
	if c.evictedHeld {
		evictedKey, evictedVal, evicted = c.evictedKey, c.evictedVal, true
		var zk K
		var zv V
		c.evictedKey, c.evictedVal = zk, zv
	}
	return
}

// Remove deletes k, returning its value if present.
func (c *Cache[K, V]) Remove(k K) (V, bool) {
	v, ok := c.inner.Peek(k)
	if ok {
		c.inner.Remove(k)
	}
	return v, ok
}

// Len reports the number of cached entries.
func (c *Cache[K, V]) Len() int {
	return c.inner.Len()
}
