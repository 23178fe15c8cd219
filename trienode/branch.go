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

package trienode

import (
	"encoding/binary"
	"fmt"

	"github.com/bulletdb/bulletdb/curve"
	"github.com/bulletdb/bulletdb/errcode"
	"github.com/bulletdb/bulletdb/field"
	"github.com/bulletdb/bulletdb/kzg"
	"github.com/bulletdb/bulletdb/nodeid"
	"github.com/bulletdb/bulletdb/ntt"
	"github.com/bulletdb/bulletdb/polynomial"
)

// Child is a branch's record for one nibble (or, for a split branch,
// one contiguous nibble range): the folded scalar contributed to the
// branch polynomial, and the block that last touched it.
type Child struct {
	Anchor byte
	End    byte
	SK     field.Scalar
	BlkID  uint16
}

// Branch is an internal trie node committing to up to BranchOrder
// children via a KZG polynomial, generalizing the teacher's
// InternalNode to the spec's per-block overlay and split-shard model.
type Branch struct {
	id       nodeid.ID
	commit   curve.G1
	isSplit  bool
	children []Child
}

// NewBranch constructs an empty branch at id.
func NewBranch(id nodeid.ID, isSplit bool) *Branch {
	return &Branch{id: id, isSplit: isSplit}
}

func (b *Branch) ID() nodeid.ID            { return b.id }
func (b *Branch) SetID(id nodeid.ID)       { b.id = id }
func (b *Branch) Commitment() curve.G1     { return b.commit }
func (b *Branch) SetCommitment(c curve.G1) { b.commit = c }
func (b *Branch) IsSplit() bool            { return b.isSplit }
func (b *Branch) Children() []Child        { return b.children }
func (b *Branch) ShouldDelete() bool       { return len(b.children) == 0 }

// nib returns the byte of key this branch uses to route to a child:
// key[level] ordinarily, or key[level-1] for a split branch, which
// consumed no new level when its parent delegated a nibble range to
// it (see spec design notes on split-branch level handling).
func (b *Branch) nib(key field.Hash) byte {
	lvl := int(b.id.Level())
	if b.isSplit {
		if lvl == 0 {
			return key[0]
		}
		return key[lvl-1]
	}
	return key[lvl]
}

// childID constructs the NodeId of the child reached via nib at
// block blkID: copy of this branch's id with block_id set, nib
// written at the current level, and the level incremented unless
// this branch is a split (a split child re-reads the same nibble).
func (b *Branch) childID(nib byte, blkID uint16) nodeid.ID {
	id := b.id.SetBlockID(blkID).SetChildNibble(nib)
	if !b.isSplit {
		id = id.IncrementLevel()
	}
	return id
}

// GetChild does a linear scan for the single Child whose
// [Anchor, End] range contains nib.
func (b *Branch) GetChild(nib byte) (*Child, int) {
	for i := range b.children {
		c := &b.children[i]
		if nib >= c.Anchor && nib <= c.End {
			return c, i
		}
	}
	return nil, -1
}

// GetNextID returns the NodeId of the child reachable via nib, or
// false if the slot is absent or present-but-empty (sk == 0).
func (b *Branch) GetNextID(nib byte) (nodeid.ID, bool) {
	c, _ := b.GetChild(nib)
	if c == nil || field.IsZero(c.SK) {
		return nodeid.ID{}, false
	}
	return b.childID(nib, c.BlkID), true
}

// InsertChild inserts a new single-nibble child in sorted order if
// none owns nib yet (only for non-split branches), or updates the
// existing child's block id and ensures its sk is non-zero (the
// minimal sentinel, overwritten at the next finalize).
func (b *Branch) InsertChild(nib byte, blockID uint16) {
	c, idx := b.GetChild(nib)
	if c != nil {
		b.children[idx].BlkID = blockID
		if field.IsZero(b.children[idx].SK) {
			b.children[idx].SK = field.OneSK
		}
		return
	}
	if b.isSplit {
		return
	}
	pos := 0
	for pos < len(b.children) && b.children[pos].Anchor < nib {
		pos++
	}
	b.children = append(b.children, Child{})
	copy(b.children[pos+1:], b.children[pos:])
	b.children[pos] = Child{Anchor: nib, End: nib, SK: field.OneSK, BlkID: blockID}
}

// DeleteChild removes the child owning nib, if any.
func (b *Branch) DeleteChild(nib byte) {
	_, idx := b.GetChild(nib)
	if idx < 0 {
		return
	}
	b.children = append(b.children[:idx], b.children[idx+1:]...)
}

func (b *Branch) loadOrCreateChild(store Store, nib byte, newBlockID uint16, key field.Hash) (Node, error) {
	if id, ok := b.GetNextID(nib); ok {
		n, err := store.Load(id)
		if err != nil {
			return nil, fmt.Errorf("trienode: loading child: %w", errcode.ErrLoadNode)
		}
		return n, nil
	}
	return NewLeaf(b.childID(nib, newBlockID), key), nil
}

func (b *Branch) loadExistingChild(store Store, nib byte) (Node, error) {
	id, ok := b.GetNextID(nib)
	if !ok {
		return nil, errcode.ErrNotExist
	}
	n, err := store.Load(id)
	if err != nil {
		return nil, fmt.Errorf("trienode: loading child: %w", errcode.ErrLoadNode)
	}
	return n, nil
}

// recacheIfNeeded recaches this branch under newBlockID if it is
// still tagged with an older block id, the copy-on-write trigger
// every mutating operation checks after its recursive call returns.
func (b *Branch) recacheIfNeeded(store Store, newBlockID uint16) error {
	if b.id.BlockID() == newBlockID {
		return nil
	}
	oldID := b.id
	newID := oldID.SetBlockID(newBlockID)
	if _, err := store.Recache(oldID, newID); err != nil {
		return err
	}
	b.id = newID
	return nil
}

// Put descends to the appropriate child (creating a new leaf if the
// slot is absent), recaches self on a block-id change, and updates
// the child slot bookkeeping.
func (b *Branch) Put(store Store, key, valHash field.Hash, valIdx uint8, newBlockID uint16) error {
	nib := b.nib(key)
	child, err := b.loadOrCreateChild(store, nib, newBlockID, key)
	if err != nil {
		return err
	}
	switch n := child.(type) {
	case *Branch:
		if err := n.Put(store, key, valHash, valIdx, newBlockID); err != nil {
			return err
		}
	case *Leaf:
		if err := n.Put(key, valHash, valIdx, newBlockID); err != nil {
			return err
		}
	}
	if err := b.recacheIfNeeded(store, newBlockID); err != nil {
		return err
	}
	if err := store.Cache(child); err != nil {
		return err
	}
	b.InsertChild(nib, newBlockID)
	return store.Cache(b)
}

// Replace behaves like Put but requires the slot to already exist.
func (b *Branch) Replace(store Store, key, valHash, prevValHash field.Hash, valIdx uint8, newBlockID uint16) error {
	nib := b.nib(key)
	child, err := b.loadExistingChild(store, nib)
	if err != nil {
		return err
	}
	switch n := child.(type) {
	case *Branch:
		if err := n.Replace(store, key, valHash, prevValHash, valIdx, newBlockID); err != nil {
			return err
		}
	case *Leaf:
		if err := n.Replace(key, valHash, prevValHash, valIdx, newBlockID); err != nil {
			return err
		}
	}
	if err := b.recacheIfNeeded(store, newBlockID); err != nil {
		return err
	}
	if err := store.Cache(child); err != nil {
		return err
	}
	b.InsertChild(nib, newBlockID)
	return store.Cache(b)
}

// Remove descends into the existing child slot and, if the child
// reports ErrDeleted, removes the slot entirely; if that leaves this
// branch with no children, it too is deleted and ErrDeleted
// propagates to the caller.
func (b *Branch) Remove(store Store, key field.Hash, valIdx uint8, newBlockID uint16) error {
	nib := b.nib(key)
	child, err := b.loadExistingChild(store, nib)
	if err != nil {
		return err
	}
	var childErr error
	switch n := child.(type) {
	case *Branch:
		childErr = n.Remove(store, key, valIdx, newBlockID)
	case *Leaf:
		childErr = n.Remove(key, valIdx, newBlockID)
	}
	if childErr != nil && childErr != errcode.ErrDeleted {
		return childErr
	}
	if err := b.recacheIfNeeded(store, newBlockID); err != nil {
		return err
	}
	if childErr == errcode.ErrDeleted {
		if derr := store.Delete(child.ID()); derr != nil && derr != errcode.ErrNotExist {
			return derr
		}
		b.DeleteChild(nib)
	} else {
		if err := store.Cache(child); err != nil {
			return err
		}
		b.InsertChild(nib, newBlockID)
	}
	if b.ShouldDelete() {
		if derr := store.Delete(b.id); derr != nil && derr != errcode.ErrNotExist {
			return derr
		}
		return errcode.ErrDeleted
	}
	return store.Cache(b)
}

// CreateAccount behaves like Put, creating an empty leaf slot.
func (b *Branch) CreateAccount(store Store, key field.Hash, newBlockID uint16) error {
	nib := b.nib(key)
	child, err := b.loadOrCreateChild(store, nib, newBlockID, key)
	if err != nil {
		return err
	}
	switch n := child.(type) {
	case *Branch:
		if err := n.CreateAccount(store, key, newBlockID); err != nil {
			return err
		}
	case *Leaf:
		if err := n.CreateAccount(key, newBlockID); err != nil {
			return err
		}
	}
	if err := b.recacheIfNeeded(store, newBlockID); err != nil {
		return err
	}
	if err := store.Cache(child); err != nil {
		return err
	}
	b.InsertChild(nib, newBlockID)
	return store.Cache(b)
}

// DeleteAccount behaves like Remove but marks the whole leaf deleted.
func (b *Branch) DeleteAccount(store Store, key field.Hash, newBlockID uint16) error {
	nib := b.nib(key)
	child, err := b.loadExistingChild(store, nib)
	if err != nil {
		return err
	}
	var childErr error
	switch n := child.(type) {
	case *Branch:
		childErr = n.DeleteAccount(store, key, newBlockID)
	case *Leaf:
		childErr = n.DeleteAccount(key, newBlockID)
	}
	if childErr != nil && childErr != errcode.ErrDeleted {
		return childErr
	}
	if err := b.recacheIfNeeded(store, newBlockID); err != nil {
		return err
	}
	if childErr == errcode.ErrDeleted {
		if derr := store.Delete(child.ID()); derr != nil && derr != errcode.ErrNotExist {
			return derr
		}
		b.DeleteChild(nib)
	} else {
		if err := store.Cache(child); err != nil {
			return err
		}
		b.InsertChild(nib, newBlockID)
	}
	if b.ShouldDelete() {
		if derr := store.Delete(b.id); derr != nil && derr != errcode.ErrNotExist {
			return derr
		}
		return errcode.ErrDeleted
	}
	return store.Cache(b)
}

// GenerateProof walks to the leaf along key, then unwinds, pushing
// each visited branch's full child-scalar polynomial and commitment
// in leaf-to-root order, and marking split levels in splitMap.
func (b *Branch) GenerateProof(store Store, key field.Hash, fxs *[]polynomial.Polynomial, cs *[]curve.G1, splitMap *uint32) error {
	nib := b.nib(key)
	id, ok := b.GetNextID(nib)
	if !ok {
		return errcode.ErrNotExist
	}
	child, err := store.Load(id)
	if err != nil {
		return fmt.Errorf("trienode: loading child: %w", errcode.ErrLoadNode)
	}
	switch n := child.(type) {
	case *Branch:
		if err := n.GenerateProof(store, key, fxs, cs, splitMap); err != nil {
			return err
		}
	case *Leaf:
		if err := n.GenerateProof(key, fxs, cs); err != nil {
			return err
		}
	}

	fx := make(polynomial.Polynomial, BranchOrder)
	for _, c := range b.children {
		if field.IsZero(c.SK) {
			continue
		}
		for n := int(c.Anchor); n <= int(c.End); n++ {
			fx[n] = c.SK
		}
	}
	*fxs = append(*fxs, fx)
	*cs = append(*cs, b.commit)
	if b.isSplit {
		*splitMap |= 1 << uint(b.id.Level())
	}
	return nil
}

// Finalize computes the commitments that make this subtree's
// authenticity checkable. In the shared-Fx (batched) mode used by the
// root's parallel finalize, it only writes visited children's folded
// scalars into the caller's disjoint [start,end) slice. In standalone
// mode (fx == nil), it processes its whole [0, BranchOrder) range,
// builds a local polynomial, and writes its own commitment into out.
func (b *Branch) Finalize(store Store, settings *kzg.Settings, shardPath field.Hash, blockID uint16, out *curve.G1, start, end int, fx []field.Scalar) error {
	var local []field.Scalar
	if fx == nil {
		local = make([]field.Scalar, BranchOrder)
		start, end = 0, BranchOrder
	} else {
		local = fx
	}

	for i := range b.children {
		c := &b.children[i]
		if c.BlkID != blockID || field.IsZero(c.SK) {
			continue
		}
		if int(c.End) < start || int(c.Anchor) >= end {
			continue
		}
		childID := b.childID(c.Anchor, c.BlkID)
		childNode, err := store.Load(childID)
		if err != nil {
			if b.isSplit && childID.Cmp(shardPath) != 0 {
				continue
			}
			return fmt.Errorf("trienode: loading child: %w", errcode.ErrLoadNode)
		}
		var childCommit curve.G1
		switch n := childNode.(type) {
		case *Branch:
			if err := n.Finalize(store, settings, shardPath, blockID, &childCommit, 0, BranchOrder, nil); err != nil {
				return err
			}
		case *Leaf:
			if err := n.Finalize(settings); err != nil {
				return err
			}
			childCommit = n.Commitment()
		}
		c.SK = curve.HashG1ToScalar(childCommit, settings.Tag)
		if err := store.Cache(childNode); err != nil {
			return err
		}

		lo := int(c.Anchor)
		if lo < start {
			lo = start
		}
		hi := int(c.End)
		if hi >= end {
			hi = end - 1
		}
		for n := lo; n <= hi; n++ {
			local[n] = c.SK
		}
	}

	if fx == nil {
		ntt.InverseFFTInPlace(local, settings.Roots)
		commit := settings.SRS.CommitG1(local)
		b.commit = commit
		if out != nil {
			*out = commit
		}
	}
	return nil
}

// Prune recursively discards every child touched by blockID, then
// deletes this branch from the persistent store.
func (b *Branch) Prune(store Store, blockID uint16) error {
	for i := range b.children {
		c := b.children[i]
		if c.BlkID != blockID {
			continue
		}
		childID := b.childID(c.Anchor, c.BlkID)
		childNode, err := store.Load(childID)
		if err != nil {
			continue
		}
		switch n := childNode.(type) {
		case *Branch:
			if err := n.Prune(store, blockID); err != nil {
				return err
			}
		case *Leaf:
			if err := n.Prune(blockID); err != nil {
				return err
			}
		}
	}
	if err := store.Delete(b.id); err != nil && err != errcode.ErrNotExist {
		return err
	}
	b.children = nil
	return nil
}

// Justify promotes every locally-held child (blk_id != 0) into
// canonical state, then rewrites this branch itself under block_id
// 0, or reports ErrDeleted if it ends up empty. Foreign, cross-shard
// children that cannot be loaded are left untouched (spec's safe
// interpretation for split-branch justify).
func (b *Branch) Justify(store Store) error {
	for i := range b.children {
		c := &b.children[i]
		if c.BlkID == 0 {
			continue
		}
		childID := b.childID(c.Anchor, c.BlkID)
		childNode, err := store.Load(childID)
		if err != nil {
			if b.isSplit {
				continue
			}
			return fmt.Errorf("trienode: loading child: %w", errcode.ErrLoadNode)
		}
		switch n := childNode.(type) {
		case *Branch:
			err = n.Justify(store)
		case *Leaf:
			err = n.Justify(store)
		}
		if err != nil && err != errcode.ErrDeleted {
			return err
		}
		c.BlkID = 0
	}

	oldID := b.id
	if err := store.Delete(oldID); err != nil && err != errcode.ErrNotExist {
		return err
	}
	if b.ShouldDelete() {
		return errcode.ErrDeleted
	}
	newID := oldID.SetBlockID(0)
	b.id = newID
	return store.Cache(b)
}

// CommitIsInPath follows key down from this branch, checking whether
// commitment appears somewhere along the path. For a split branch
// whose child is foreign (unreachable), the recorded sk is compared
// against hash_p1_to_scalar(commitment, tag) as the terminal check.
func (b *Branch) CommitIsInPath(store Store, key field.Hash, commitment curve.G1, tag []byte) bool {
	if curve.EqualG1(b.commit, commitment) {
		return true
	}
	nib := b.nib(key)
	c, _ := b.GetChild(nib)
	if c == nil || field.IsZero(c.SK) {
		return false
	}
	childID := b.childID(nib, c.BlkID)
	childNode, err := store.Load(childID)
	if err != nil {
		if b.isSplit {
			target := curve.HashG1ToScalar(commitment, tag)
			return field.Equal(c.SK, target)
		}
		return false
	}
	switch n := childNode.(type) {
	case *Branch:
		return n.CommitIsInPath(store, key, commitment, tag)
	case *Leaf:
		return n.CommitIsInPath(commitment)
	}
	return false
}

// Serialize encodes this branch per §4.9: tag ∥ is_split ∥
// compressed_commit(48) ∥ child_count ∥ children[anchor∥end∥sk∥blk_id].
func (b *Branch) Serialize() []byte {
	out := make([]byte, 0, 1+1+curve.CompressedG1Size+1+len(b.children)*(1+1+32+2))
	out = append(out, tagBranch)
	if b.isSplit {
		out = append(out, 1)
	} else {
		out = append(out, 0)
	}
	cc := curve.CompressG1(b.commit)
	out = append(out, cc[:]...)
	out = append(out, byte(len(b.children)))
	for _, c := range b.children {
		out = append(out, c.Anchor, c.End)
		sk := field.ToBytes(c.SK)
		out = append(out, sk[:]...)
		var blk [2]byte
		binary.BigEndian.PutUint16(blk[:], c.BlkID)
		out = append(out, blk[:]...)
	}
	return out
}

func parseBranch(data []byte) (Node, error) {
	if len(data) < 1+1+curve.CompressedG1Size+1 {
		return nil, fmt.Errorf("trienode: %w: truncated branch", errcode.ErrLoadNode)
	}
	off := 1
	isSplit := data[off] == 1
	off++
	commit, err := curve.DecompressG1(data[off : off+curve.CompressedG1Size])
	if err != nil {
		return nil, fmt.Errorf("trienode: %w: %v", errcode.ErrLoadNode, err)
	}
	off += curve.CompressedG1Size
	count := int(data[off])
	off++

	children := make([]Child, count)
	for i := 0; i < count; i++ {
		if off+1+1+32+2 > len(data) {
			return nil, fmt.Errorf("trienode: %w: truncated branch children", errcode.ErrLoadNode)
		}
		children[i].Anchor = data[off]
		children[i].End = data[off+1]
		off += 2
		children[i].SK = field.FromCanonicalBytes(data[off : off+32])
		off += 32
		children[i].BlkID = binary.BigEndian.Uint16(data[off : off+2])
		off += 2
	}

	b := &Branch{commit: commit, isSplit: isSplit, children: children}
	return b, nil
}
