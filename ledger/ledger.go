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

// Package ledger implements the Ledger façade (C12): shard
// membership, block-hash-to-block-id mapping, root materialisation,
// and every public write/read operation the engine exposes, the way
// the teacher's top-level VerkleNode.New/Insert/Get surface is the
// one entry point callers touch while NodeAllocator/trienode stay
// internal. Concurrency-wise this package owns the "serialize
// materialisation" responsibility §5 assigns to the Ledger layer: a
// single mutex brackets get_root's overlay-creation path, since the
// allocator's own lock only protects individual cache operations.
package ledger

import (
	"sync"

	"github.com/bulletdb/bulletdb/allocator"
	"github.com/bulletdb/bulletdb/blockproc"
	"github.com/bulletdb/bulletdb/bulletstore"
	"github.com/bulletdb/bulletdb/errcode"
	"github.com/bulletdb/bulletdb/field"
	"github.com/bulletdb/bulletdb/kzg"
	"github.com/bulletdb/bulletdb/nodeid"
	"github.com/bulletdb/bulletdb/ntt"
	"github.com/bulletdb/bulletdb/srs"
	"github.com/bulletdb/bulletdb/trienode"
)

// Config bundles the parameters §6 names for constructing a Ledger.
type Config struct {
	Path        string // directory/file for the persistent KV store
	CacheSize   int    // number of cached nodes
	MapSize     int    // on-disk capacity hint
	Tag         []byte // domain separation tag mixed into every hash-to-scalar
	Secret      []byte // SRS seed; empty means use OS randomness
	ShardPrefix []byte // optional; keys must share this prefix
}

// Ledger is the top-level handle callers hold: one persistent store,
// one SRS/NTT/tag bundle, one allocator, and the block-hash bookkeeping.
type Ledger struct {
	db    *bulletstore.Store
	alloc *allocator.Allocator

	settings  *kzg.Settings
	shardPath field.Hash

	mu             sync.Mutex
	blockHashMap   map[field.Hash]uint16
	currentBlockID uint16
}

// New opens (or creates) the persistent store at cfg.Path, builds a
// fresh SRS and NTT root table, and returns a ready Ledger. The SRS
// seed, if supplied, is wiped by srs.New before this returns.
func New(cfg Config) (*Ledger, error) {
	db, err := bulletstore.Open(cfg.Path, cfg.MapSize)
	if err != nil {
		return nil, err
	}

	s, err := srs.New(trienode.BranchOrder, cfg.Secret)
	if err != nil {
		db.Close()
		return nil, err
	}
	roots, err := ntt.BuildRoots(trienode.BranchOrder)
	if err != nil {
		db.Close()
		return nil, err
	}

	var shardPath field.Hash
	copy(shardPath[:], cfg.ShardPrefix)

	l := &Ledger{
		db:    db,
		alloc: allocator.New(db, cfg.CacheSize),
		settings: &kzg.Settings{
			SRS:   s,
			Roots: roots,
			Tag:   append([]byte(nil), cfg.Tag...),
		},
		shardPath:      shardPath,
		blockHashMap:   make(map[field.Hash]uint16),
		currentBlockID: 1,
	}
	return l, nil
}

// Close releases the persistent store's file handle.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// ImportSRS replaces the ledger's SRS with one imported from
// previously exported bytes, for operators who provisioned a shared
// trusted setup out of band.
func (l *Ledger) ImportSRS(data []byte) error {
	s, err := srs.Import(data)
	if err != nil {
		return err
	}
	l.settings.SRS = s
	return nil
}

func (l *Ledger) checkShard(key field.Hash) error {
	n := len(l.shardPath)
	for i := 0; i < n; i++ {
		if l.shardPath[i] == 0 {
			continue
		}
		if key[i] != l.shardPath[i] {
			return errcode.ErrNotInShard
		}
	}
	return nil
}

// blockIDFor assigns (or reuses) the block id mapped to hash. The
// zero hash always maps to block id 0, the canonical view.
func (l *Ledger) blockIDFor(hash field.Hash) uint16 {
	if hash.IsZero() {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if id, ok := l.blockHashMap[hash]; ok {
		return id
	}
	id := l.currentBlockID
	l.blockHashMap[hash] = id
	l.currentBlockID++
	return id
}

// existingBlockID looks up hash without allocating a new id; the
// zero value (canonical) is returned for an unseen hash, matching
// the spec's "defaults to canonical" rule for prev_block_hash.
func (l *Ledger) existingBlockID(hash field.Hash) uint16 {
	if hash.IsZero() {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.blockHashMap[hash]
}

func rootID(blockID uint16) nodeid.ID {
	var zero [13]byte
	return nodeid.New(zero[:], 0, blockID)
}

// getRoot returns the root Branch for blockID, materialising it
// (by serialize/deserialize from prevBlockID's root, recursively
// down to a freshly created canonical root) if no overlay exists
// yet. The ledger-level mutex brackets this whole path, since it may
// perform a load-miss-then-create sequence across several allocator
// calls that must not interleave with a concurrent materialisation
// of the same blockID.
func (l *Ledger) getRoot(blockID, prevBlockID uint16) (*trienode.Branch, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.getRootLocked(blockID, prevBlockID)
}

func (l *Ledger) getRootLocked(blockID, prevBlockID uint16) (*trienode.Branch, error) {
	id := rootID(blockID)
	n, err := l.alloc.Load(id)
	if err == nil {
		root, ok := n.(*trienode.Branch)
		if !ok {
			return nil, errcode.ErrRoot
		}
		return root, nil
	}
	if err != errcode.ErrNotExist {
		return nil, err
	}

	if blockID == 0 {
		root := trienode.NewBranch(id, false)
		if err := l.alloc.Cache(root); err != nil {
			return nil, err
		}
		return root, nil
	}

	prevRoot, err := l.getRootLocked(prevBlockID, 0)
	if err != nil {
		return nil, err
	}
	data := prevRoot.Serialize()
	node, err := trienode.ParseNode(data)
	if err != nil {
		return nil, err
	}
	node.SetID(id)
	if err := l.alloc.Cache(node); err != nil {
		return nil, err
	}
	return node.(*trienode.Branch), nil
}
