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

// Package nodeid implements the 16-byte NodeId identity described in
// spec §3/§4.6: path[13] ∥ level[1] ∥ block_id[2]. NodeIds are the key
// space of the persistent store and the cache, so equality and
// hashing here drive everything in allocator and bulletstore.
package nodeid

import (
	"hash/fnv"

	"github.com/bulletdb/bulletdb/field"
)

const (
	PathBytes    = 13
	LevelBytes   = 1
	BlockIDBytes = 2
	Size         = PathBytes + LevelBytes + BlockIDBytes // 16
)

// ID is a 16-byte NodeId: path ∥ level ∥ block_id.
type ID [Size]byte

// New builds an ID from the first PathBytes of key, the given level,
// and block id. Bytes of key beyond PathBytes are ignored here; the
// caller is expected to have already matched the path prefix.
func New(key []byte, level uint8, blockID uint16) ID {
	var id ID
	n := PathBytes
	if len(key) < n {
		n = len(key)
	}
	copy(id[:n], key[:n])
	id[PathBytes] = level
	putBlockID(&id, blockID)
	return id
}

// Path returns the 13-byte path prefix.
func (id ID) Path() []byte { return id[:PathBytes] }

// Level returns the recorded level.
func (id ID) Level() uint8 { return id[PathBytes] }

// BlockID returns the recorded block id.
func (id ID) BlockID() uint16 {
	return uint16(id[PathBytes+LevelBytes])<<8 | uint16(id[PathBytes+LevelBytes+1])
}

func putBlockID(id *ID, blockID uint16) {
	id[PathBytes+LevelBytes] = byte(blockID >> 8)
	id[PathBytes+LevelBytes+1] = byte(blockID)
}

// IncrementLevel increases level by 1 and returns the updated ID.
func (id ID) IncrementLevel() ID {
	id[PathBytes]++
	return id
}

// SetLevel overwrites the recorded level.
func (id ID) SetLevel(level uint8) ID {
	id[PathBytes] = level
	return id
}

// SetChildNibble writes nib at offset level (the nibble a branch
// consumes to route to a child one level below).
func (id ID) SetChildNibble(nib byte) ID {
	lvl := id.Level()
	if int(lvl) < PathBytes {
		id[lvl] = nib
	}
	return id
}

// SetSelfNibble writes nib at offset level-1 (the nibble that routed
// to this node from its parent).
func (id ID) SetSelfNibble(nib byte) ID {
	lvl := id.Level()
	if lvl > 0 && int(lvl-1) < PathBytes {
		id[lvl-1] = nib
	}
	return id
}

// SetBlockID overwrites the recorded block id.
func (id ID) SetBlockID(blockID uint16) ID {
	putBlockID(&id, blockID)
	return id
}

// Cmp compares path[0:level] against h.bytes[0:level]; it returns 0
// iff the NodeId's recorded path is a prefix of h (i.e. the id
// actually lies on the route to h).
func (id ID) Cmp(h field.Hash) int {
	lvl := int(id.Level())
	if lvl > PathBytes {
		lvl = PathBytes
	}
	for i := 0; i < lvl; i++ {
		if id[i] != h[i] {
			if id[i] < h[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// FNV1a returns the FNV-1a hash of all 16 bytes, the hashing scheme
// the spec mandates for NodeId-keyed maps. The LRU cache keys on ID
// directly as a comparable map key and does not call it.
func FNV1a(id ID) uint64 {
	h := fnv.New64a()
	h.Write(id[:])
	return h.Sum64()
}
