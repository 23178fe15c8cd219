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

// Package allocator implements the NodeAllocator (C11): the bridge
// between the LRU cache (C10) and the persistent BulletDB store (C9)
// that every trie operation addresses nodes through. It satisfies
// trienode.Store, generalizing the teacher's resolve-by-hash callback
// (NodeResolverFn in hashednode.go) into a full load/cache/recache/
// delete surface with the write-back-on-eviction discipline the spec
// assigns to an allocator rather than to a node's destructor, since
// Go has no destructors to hang that behavior on.
package allocator

import (
	"fmt"
	"sync"

	"github.com/bulletdb/bulletdb/bulletstore"
	"github.com/bulletdb/bulletdb/errcode"
	"github.com/bulletdb/bulletdb/lru"
	"github.com/bulletdb/bulletdb/nodeid"
	"github.com/bulletdb/bulletdb/trienode"
)

// Allocator owns the single reader-writer lock guarding the cache:
// Load takes the shared lock on a cache hit, and the exclusive lock
// for any miss or mutating operation, matching the spec's §5
// concurrency contract.
type Allocator struct {
	mu    sync.RWMutex
	cache *lru.Cache[nodeid.ID, trienode.Node]
	db    *bulletstore.Store
}

// New builds an allocator over db with a cache sized for cacheSize
// nodes.
func New(db *bulletstore.Store, cacheSize int) *Allocator {
	return &Allocator{
		cache: lru.New[nodeid.ID, trienode.Node](cacheSize),
		db:    db,
	}
}

// Load returns the node at id, from cache if present, else
// materialised from the persistent store and cached.
func (a *Allocator) Load(id nodeid.ID) (trienode.Node, error) {
	a.mu.RLock()
	if n, ok := a.cache.Get(id); ok {
		a.mu.RUnlock()
		return n, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if n, ok := a.cache.Get(id); ok {
		return n, nil
	}

	data, err := a.db.GetNode(id[:])
	if err == errcode.ErrNotExist {
		return nil, errcode.ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("allocator: load: %w", errcode.ErrLoadNode)
	}
	n, err := trienode.ParseNode(data)
	if err != nil {
		return nil, err
	}
	n.SetID(id)
	a.insertLocked(n)
	return n, nil
}

// Cache installs n in the cache under its own id, writing back
// whatever entry the insertion evicts (unless that entry should be
// deleted).
func (a *Allocator) Cache(n trienode.Node) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.insertLocked(n)
}

func (a *Allocator) insertLocked(n trienode.Node) error {
	evictedKey, evictedVal, evicted := a.cache.Put(n.ID(), n)
	_ = evictedKey
	if evicted && evictedVal != nil && !evictedVal.ShouldDelete() {
		if err := a.persistLocked(evictedVal); err != nil {
			return err
		}
	}
	return nil
}

// Recache removes oldID (from cache and persistent store), installs
// the node under newID, and returns it. If the node is not cached, it
// is loaded from the persistent store first.
func (a *Allocator) Recache(oldID, newID nodeid.ID) (trienode.Node, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	n, ok := a.cache.Remove(oldID)
	if !ok {
		data, err := a.db.GetNode(oldID[:])
		if err == errcode.ErrNotExist {
			return nil, errcode.ErrNotExistRecache
		}
		if err != nil {
			return nil, fmt.Errorf("allocator: recache load: %w", errcode.ErrLoadNode)
		}
		n, err = trienode.ParseNode(data)
		if err != nil {
			return nil, err
		}
	}

	if err := a.db.DelNode(oldID[:]); err != nil {
		return nil, err
	}

	n.SetID(newID)
	if err := a.insertLocked(n); err != nil {
		return nil, err
	}
	return n, nil
}

// Delete removes id from the cache and from the persistent store.
// Absence in either is not an error.
func (a *Allocator) Delete(id nodeid.ID) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cache.Remove(id)
	return a.db.DelNode(id[:])
}

// Persist serialises n and writes it to the persistent store under
// its current id. Eviction write-back in Cache uses the same path.
func (a *Allocator) Persist(n trienode.Node) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.persistLocked(n)
}

func (a *Allocator) persistLocked(n trienode.Node) error {
	id := n.ID()
	if err := a.db.PutNode(id[:], n.Serialize()); err != nil {
		return err
	}
	return nil
}

// Flush writes nothing to the persistent store and always returns
// nil. Nodes held in cache reach the store only when they are evicted
// or passed to Persist; a node still cached when the process exits is
// not written back.
func (a *Allocator) Flush() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	// The LRU cache offers no enumeration by design (the spec scopes
	// it to get/put/remove); callers that need a full flush track
	// their own dirty set at the Ledger layer instead.
	return nil
}

var _ trienode.Store = (*Allocator)(nil)
