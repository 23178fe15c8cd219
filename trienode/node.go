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

// Package trienode implements the Verkle trie node polymorphism (C8):
// Branch and Leaf, their copy-on-write mutation operations, proof
// generation, the block-lifecycle walks (finalize/prune/justify),
// and the fixed-layout serialization of §4.9. It is grounded in the
// teacher's tree.go (InternalNode/LeafNode/HashedNode recursion
// shape) generalized from a single in-memory tree to the spec's
// per-block NodeId-addressed overlay model.
package trienode

import (
	"fmt"

	"github.com/bulletdb/bulletdb/curve"
	"github.com/bulletdb/bulletdb/errcode"
	"github.com/bulletdb/bulletdb/nodeid"
)

const (
	// BranchOrder and LeafOrder are the polynomial length / child
	// fanout and value-slot counts the spec fixes.
	BranchOrder = 256
	LeafOrder   = 128

	tagBranch byte = 69
	tagLeaf   byte = 71
)

// Node is the common surface Branch and Leaf both satisfy, the way
// the teacher's VerkleNode interface lets InternalNode/LeafNode/
// HashedNode share a recursion surface.
type Node interface {
	ID() nodeid.ID
	SetID(id nodeid.ID)
	Commitment() curve.G1
	ShouldDelete() bool
	Serialize() []byte
}

// Store is the bridge to the node allocator (C11) that Branch/Leaf
// recursive operations need to load, cache, recache, and delete
// children. Defining it here (rather than importing the allocator
// package) keeps trienode free of a dependency on its own caller,
// the same separation the teacher gets for free via NodeResolverFn.
type Store interface {
	Load(id nodeid.ID) (Node, error)
	Cache(n Node) error
	Recache(oldID, newID nodeid.ID) (Node, error)
	Delete(id nodeid.ID) error
}

// ParseNode dispatches on the leading tag byte to decode either a
// Branch or a Leaf, the way the teacher's ParseNode switches on
// internalRLPType/leafRLPType.
func ParseNode(data []byte) (Node, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("trienode: %w: empty payload", errcode.ErrLoadNode)
	}
	switch data[0] {
	case tagBranch:
		return parseBranch(data)
	case tagLeaf:
		return parseLeaf(data)
	default:
		return nil, fmt.Errorf("trienode: %w: unknown tag %d", errcode.ErrLoadNode, data[0])
	}
}
