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

// Package errcode defines the exhaustive error-code surface of the
// bulletdb engine. Every sentinel here corresponds to one of the codes
// enumerated in the external interface: domain errors are expected
// outcomes the caller branches on, infrastructure errors interrupt an
// operation, cryptographic errors fail a proof or setup step, and
// precondition errors are rejected at the API boundary before any
// state change.
package errcode

import "errors"

var (
	// ErrNotExist signals that a key, account, or value slot is absent.
	ErrNotExist = errors.New("bulletdb: not exist")
	// ErrNotInShard is returned when a key's hash does not fall under
	// the ledger's configured shard prefix.
	ErrNotInShard = errors.New("bulletdb: key not in shard")
	// ErrRoot signals a failure materializing or locating a root node.
	ErrRoot = errors.New("bulletdb: root error")
	// ErrDB wraps failures from the persistent key-value store.
	ErrDB = errors.New("bulletdb: db error")
	// ErrLoadNode signals that a node could not be loaded from cache
	// or the persistent store.
	ErrLoadNode = errors.New("bulletdb: load node error")
	// ErrKZGProof signals a failure proving or verifying a KZG opening.
	ErrKZGProof = errors.New("bulletdb: kzg proof error")
	// ErrDeleted is the internal upward signal meaning a subtree was
	// fully removed by a recursive call. Callers at the ledger
	// boundary map it back to nil.
	ErrDeleted = errors.New("bulletdb: deleted")
	// ErrAlreadyDeleted is returned when an account or value slot was
	// already removed by a previous operation in the same block.
	ErrAlreadyDeleted = errors.New("bulletdb: already deleted")
	// ErrDeleteValue signals a failure deleting a value from the
	// payload-side store.
	ErrDeleteValue = errors.New("bulletdb: delete value error")
	// ErrReplaceValue signals that a replace's expected previous value
	// did not match what was stored.
	ErrReplaceValue = errors.New("bulletdb: replace value error")
	// ErrNullParameter is returned when a required argument is nil or
	// zero-length.
	ErrNullParameter = errors.New("bulletdb: null parameter")
	// ErrValHashSize is returned when a value hash is not HASH_BYTES
	// long.
	ErrValHashSize = errors.New("bulletdb: value hash size")
	// ErrValIdxRange is returned when a value index is out of range
	// for LEAF_ORDER.
	ErrValIdxRange = errors.New("bulletdb: value index range")
	// ErrInvalidSetupSize is returned when an imported SRS does not
	// have the exact expected byte length.
	ErrInvalidSetupSize = errors.New("bulletdb: invalid setup size")
	// ErrNotExistRecache is returned when a recache is attempted
	// against a node id that is not present in cache or store.
	ErrNotExistRecache = errors.New("bulletdb: recache target not exist")
)
