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

// Leaf is a terminal trie node committing to up to LeafOrder value
// slots via a KZG polynomial: the account marker (the key with its
// last byte zeroed, see CreateAccount) at slot 0 once an account is
// created, and up to LeafOrder-1 value digests beyond it. Generalizes the
// teacher's LeafNode, which committed to 256 raw 16-byte values, to
// the spec's hashed, block-versioned, account-lifecycle value model.
type Leaf struct {
	id         nodeid.ID
	commit     curve.G1
	stem       field.Hash
	values     [LeafOrder]field.Hash
	blkIDs     [LeafOrder]uint16
	present    [LeafOrder]bool
	deleted    bool
}

// NewLeaf constructs an empty leaf at id for the stem key.
func NewLeaf(id nodeid.ID, stem field.Hash) *Leaf {
	return &Leaf{id: id, stem: stem}
}

func (l *Leaf) ID() nodeid.ID        { return l.id }
func (l *Leaf) SetID(id nodeid.ID)   { l.id = id }
func (l *Leaf) Commitment() curve.G1 { return l.commit }
func (l *Leaf) ShouldDelete() bool   { return l.deleted }
func (l *Leaf) Stem() field.Hash     { return l.stem }

func checkValIdx(valIdx uint8) error {
	if int(valIdx) >= LeafOrder {
		return errcode.ErrValIdxRange
	}
	return nil
}

// Put writes a new value at valIdx, or errors ErrReplaceValue if the
// slot is already occupied (Put never overwrites; use Replace).
func (l *Leaf) Put(key, valHash field.Hash, valIdx uint8, newBlockID uint16) error {
	if err := checkValIdx(valIdx); err != nil {
		return err
	}
	if l.present[valIdx] {
		return errcode.ErrReplaceValue
	}
	l.values[valIdx] = valHash
	l.blkIDs[valIdx] = newBlockID
	l.present[valIdx] = true
	return nil
}

// Replace overwrites an existing slot, checking it currently holds
// prevValHash.
func (l *Leaf) Replace(key, valHash, prevValHash field.Hash, valIdx uint8, newBlockID uint16) error {
	if err := checkValIdx(valIdx); err != nil {
		return err
	}
	if !l.present[valIdx] || l.values[valIdx] != prevValHash {
		return errcode.ErrReplaceValue
	}
	l.values[valIdx] = valHash
	l.blkIDs[valIdx] = newBlockID
	return nil
}

// Remove clears a value slot. If this empties every slot on the leaf
// and the leaf is not otherwise flagged present (no account marker
// left), it reports ErrDeleted so the parent branch drops its child
// slot too.
func (l *Leaf) Remove(key field.Hash, valIdx uint8, newBlockID uint16) error {
	if err := checkValIdx(valIdx); err != nil {
		return err
	}
	if !l.present[valIdx] {
		return errcode.ErrAlreadyDeleted
	}
	l.values[valIdx] = field.ZeroHash
	l.blkIDs[valIdx] = newBlockID
	l.present[valIdx] = false
	if l.empty() {
		l.deleted = true
		return errcode.ErrDeleted
	}
	return nil
}

// CreateAccount marks slot 0 present (the account marker slot), the
// way the spec's C_ACCOUNT layout reserves index 0 for account
// metadata. Slot 0 holds key with its last byte zeroed, not a derived
// hash of it — blockproc.ValidateProof reconstructs the same value
// independently (ys[0] = HashToSK(key with byte 31 zeroed)) to check
// the leaf's k=0 opening. Already having an account is not an error:
// create_account is idempotent.
func (l *Leaf) CreateAccount(key field.Hash, newBlockID uint16) error {
	if l.present[0] {
		return nil
	}
	keyZeroed := key
	keyZeroed[field.HashBytes-1] = 0
	l.values[0] = keyZeroed
	l.blkIDs[0] = newBlockID
	l.present[0] = true
	return nil
}

// DeleteAccount clears every value slot on the leaf and reports
// ErrDeleted, the whole-account removal counterpart to Remove.
func (l *Leaf) DeleteAccount(key field.Hash, newBlockID uint16) error {
	if !l.present[0] {
		return errcode.ErrAlreadyDeleted
	}
	for i := range l.values {
		l.values[i] = field.ZeroHash
		l.present[i] = false
		l.blkIDs[i] = newBlockID
	}
	l.deleted = true
	return errcode.ErrDeleted
}

func (l *Leaf) empty() bool {
	for _, p := range l.present {
		if p {
			return false
		}
	}
	return true
}

// GenerateProof pushes this leaf's full value polynomial and
// commitment onto the proof accumulators; it is always the
// innermost (leaf-to-root order's first) entry.
func (l *Leaf) GenerateProof(key field.Hash, fxs *[]polynomial.Polynomial, cs *[]curve.G1) error {
	fx := make(polynomial.Polynomial, BranchOrder)
	for i, p := range l.present {
		if p {
			fx[i] = field.HashToSK(l.values[i])
		}
	}
	*fxs = append(*fxs, fx)
	*cs = append(*cs, l.commit)
	return nil
}

// Finalize builds this leaf's commitment: every occupied slot's stored
// hash (the account marker at slot 0, value hashes beyond it) reduced
// to a scalar at its slot index, zero elsewhere, over the full root
// domain of settings, NTT'd into coefficient basis and committed via
// the SRS.
func (l *Leaf) Finalize(settings *kzg.Settings) error {
	fx := make([]field.Scalar, len(settings.Roots.Forward))
	for i, p := range l.present {
		if p {
			fx[i] = field.HashToSK(l.values[i])
		}
	}
	ntt.InverseFFTInPlace(fx, settings.Roots)
	l.commit = settings.SRS.CommitG1(fx)
	return nil
}

// Prune discards the overlay state this block_id introduced: any
// slot last touched by blockID reverts to absent.
func (l *Leaf) Prune(blockID uint16) error {
	for i := range l.blkIDs {
		if l.blkIDs[i] == blockID {
			l.values[i] = field.ZeroHash
			l.present[i] = false
		}
	}
	return nil
}

// Justify promotes every slot touched at a non-canonical block id to
// block id 0, the leaf-level counterpart to Branch.Justify.
func (l *Leaf) Justify(store Store) error {
	for i := range l.blkIDs {
		if l.present[i] {
			l.blkIDs[i] = 0
		}
	}
	oldID := l.id
	if err := store.Delete(oldID); err != nil && err != errcode.ErrNotExist {
		return err
	}
	if l.empty() {
		l.deleted = true
		return errcode.ErrDeleted
	}
	l.id = oldID.SetBlockID(0)
	return store.Cache(l)
}

// CommitIsInPath reports whether commitment matches this leaf's own
// commitment, the terminal check of Branch.CommitIsInPath's descent.
func (l *Leaf) CommitIsInPath(commitment curve.G1) bool {
	return curve.EqualG1(l.commit, commitment)
}

// Serialize encodes this leaf per §4.9: tag ∥ compressed_commit(48) ∥
// stem(32) ∥ slot_count(2, big-endian) ∥ one idx(1)∥value_hash(32)∥
// blk_id(2) entry per present slot.
func (l *Leaf) Serialize() []byte {
	count := 0
	for _, p := range l.present {
		if p {
			count++
		}
	}
	out := make([]byte, 0, 1+curve.CompressedG1Size+32+2+count*(1+32+2))
	out = append(out, tagLeaf)
	cc := curve.CompressG1(l.commit)
	out = append(out, cc[:]...)
	out = append(out, l.stem[:]...)
	var cnt [2]byte
	binary.BigEndian.PutUint16(cnt[:], uint16(count))
	out = append(out, cnt[:]...)
	for i, p := range l.present {
		if !p {
			continue
		}
		out = append(out, byte(i))
		out = append(out, l.values[i][:]...)
		var blk [2]byte
		binary.BigEndian.PutUint16(blk[:], l.blkIDs[i])
		out = append(out, blk[:]...)
	}
	return out
}

func parseLeaf(data []byte) (Node, error) {
	if len(data) < 1+curve.CompressedG1Size+32+2 {
		return nil, fmt.Errorf("trienode: %w: truncated leaf", errcode.ErrLoadNode)
	}
	off := 1
	commit, err := curve.DecompressG1(data[off : off+curve.CompressedG1Size])
	if err != nil {
		return nil, fmt.Errorf("trienode: %w: %v", errcode.ErrLoadNode, err)
	}
	off += curve.CompressedG1Size

	var stem field.Hash
	copy(stem[:], data[off:off+32])
	off += 32

	count := int(binary.BigEndian.Uint16(data[off : off+2]))
	off += 2

	l := &Leaf{commit: commit, stem: stem}
	for i := 0; i < count; i++ {
		if off+1+32+2 > len(data) {
			return nil, fmt.Errorf("trienode: %w: truncated leaf slots", errcode.ErrLoadNode)
		}
		idx := data[off]
		off++
		var vh field.Hash
		copy(vh[:], data[off:off+32])
		off += 32
		blk := binary.BigEndian.Uint16(data[off : off+2])
		off += 2

		if int(idx) < LeafOrder {
			l.values[idx] = vh
			l.present[idx] = true
			l.blkIDs[idx] = blk
		}
	}
	return l, nil
}
