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

package ledger

import (
	"github.com/bulletdb/bulletdb/blockproc"
	"github.com/bulletdb/bulletdb/errcode"
	"github.com/bulletdb/bulletdb/field"
)

func (l *Ledger) lookupBlockID(hash field.Hash) (uint16, error) {
	if hash.IsZero() {
		return 0, nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	id, ok := l.blockHashMap[hash]
	if !ok {
		return 0, errcode.ErrRoot
	}
	return id, nil
}

// mapDeleted turns the internal DELETED signal into success at the
// ledger boundary, per §7's "callers map it back to OK" rule.
func mapDeleted(err error) error {
	if err == errcode.ErrDeleted {
		return nil
	}
	return err
}

// CreateAccount initialises an empty account leaf for key at
// blockHash (descending from prevBlockHash's state, defaulting to
// canonical).
func (l *Ledger) CreateAccount(key field.Hash, blockHash, prevBlockHash field.Hash) error {
	if err := l.checkShard(key); err != nil {
		return err
	}
	blockID := l.blockIDFor(blockHash)
	prevID := l.existingBlockID(prevBlockHash)
	root, err := l.getRoot(blockID, prevID)
	if err != nil {
		return err
	}
	return mapDeleted(root.CreateAccount(l.alloc, key, blockID))
}

// DeleteAccount removes every value under key's account leaf.
func (l *Ledger) DeleteAccount(key field.Hash, blockHash, prevBlockHash field.Hash) error {
	if err := l.checkShard(key); err != nil {
		return err
	}
	blockID := l.blockIDFor(blockHash)
	prevID := l.existingBlockID(prevBlockHash)
	root, err := l.getRoot(blockID, prevID)
	if err != nil {
		return err
	}
	return mapDeleted(root.DeleteAccount(l.alloc, key, blockID))
}

// Put writes valHash at valIdx under key, requiring the slot to be
// currently empty.
func (l *Ledger) Put(key, valHash field.Hash, valIdx uint8, blockHash, prevBlockHash field.Hash) error {
	if err := l.checkShard(key); err != nil {
		return err
	}
	blockID := l.blockIDFor(blockHash)
	prevID := l.existingBlockID(prevBlockHash)
	root, err := l.getRoot(blockID, prevID)
	if err != nil {
		return err
	}
	return mapDeleted(root.Put(l.alloc, key, valHash, valIdx, blockID))
}

// Replace overwrites the value at valIdx under key, checking it
// currently holds prevValHash.
func (l *Ledger) Replace(key, valHash, prevValHash field.Hash, valIdx uint8, blockHash, prevBlockHash field.Hash) error {
	if err := l.checkShard(key); err != nil {
		return err
	}
	blockID := l.blockIDFor(blockHash)
	prevID := l.existingBlockID(prevBlockHash)
	root, err := l.getRoot(blockID, prevID)
	if err != nil {
		return err
	}
	return mapDeleted(root.Replace(l.alloc, key, valHash, prevValHash, valIdx, blockID))
}

// Remove clears the value slot at valIdx under key.
func (l *Ledger) Remove(key field.Hash, valIdx uint8, blockHash, prevBlockHash field.Hash) error {
	if err := l.checkShard(key); err != nil {
		return err
	}
	blockID := l.blockIDFor(blockHash)
	prevID := l.existingBlockID(prevBlockHash)
	root, err := l.getRoot(blockID, prevID)
	if err != nil {
		return err
	}
	return mapDeleted(root.Remove(l.alloc, key, valIdx, blockID))
}

// Finalize computes and persists blockHash's root commitment,
// returning the 32-byte block root hash.
func (l *Ledger) Finalize(blockHash field.Hash) (field.Hash, error) {
	blockID, err := l.lookupBlockID(blockHash)
	if err != nil {
		return field.Hash{}, err
	}
	return blockproc.FinalizeBlock(l.alloc, l.settings, l.shardPath, rootID(blockID), blockID)
}

// Prune discards blockHash's overlay entirely.
func (l *Ledger) Prune(blockHash field.Hash) error {
	blockID, err := l.lookupBlockID(blockHash)
	if err != nil {
		return err
	}
	return blockproc.PruneBlock(l.alloc, rootID(blockID), blockID)
}

// Justify promotes blockHash's overlay into canonical state.
func (l *Ledger) Justify(blockHash field.Hash) error {
	blockID, err := l.lookupBlockID(blockHash)
	if err != nil {
		return err
	}
	return blockproc.JustifyBlock(l.alloc, rootID(blockID), blockID)
}

// GenerateExistenceProof returns the serialized (Cs, Pis) proof for
// (key, val_idx) at blockHash (canonical if the zero hash).
func (l *Ledger) GenerateExistenceProof(key field.Hash, valIdx uint8, blockHash field.Hash) ([]byte, error) {
	if err := l.checkShard(key); err != nil {
		return nil, err
	}
	blockID, err := l.lookupBlockID(blockHash)
	if err != nil {
		return nil, err
	}
	lookupKey := key
	lookupKey[field.HashBytes-1] = valIdx
	cs, pis, err := blockproc.GenerateProof(l.alloc, l.settings, rootID(blockID), lookupKey)
	if err != nil {
		return nil, err
	}
	return encodeProof(cs, pis), nil
}

// ValidateProof decodes a proof produced by GenerateExistenceProof
// and checks it against (key, valHash, valIdx).
func (l *Ledger) ValidateProof(key, valHash field.Hash, valIdx uint8, proof []byte) (bool, error) {
	cs, pis, err := decodeProof(proof)
	if err != nil {
		return false, err
	}
	lookupKey := key
	lookupKey[field.HashBytes-1] = valIdx
	return blockproc.ValidateProof(l.settings, lookupKey, valHash, cs, pis), nil
}

// DBStoreValue, DBGetValue, DBDeleteValue, DBValueExists are the
// opaque payload-side storage operations keyed by the digest of the
// user's key (§4.13, §6 "Value storage key").
func (l *Ledger) DBStoreValue(keyHash field.Hash, value []byte) error {
	return l.db.PutValue(keyHash[:], value)
}

func (l *Ledger) DBGetValue(keyHash field.Hash) ([]byte, error) {
	return l.db.GetValue(keyHash[:])
}

func (l *Ledger) DBDeleteValue(keyHash field.Hash) error {
	return l.db.DelValue(keyHash[:])
}

func (l *Ledger) DBValueExists(keyHash field.Hash) (bool, error) {
	return l.db.ExistsValue(keyHash[:])
}
