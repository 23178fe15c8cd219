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

package ledger_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bulletdb/bulletdb/errcode"
	"github.com/bulletdb/bulletdb/field"
	"github.com/bulletdb/bulletdb/ledger"
)

func newTestLedger(t *testing.T, shardPrefix []byte) *ledger.Ledger {
	t.Helper()
	cfg := ledger.Config{
		Path:        filepath.Join(t.TempDir(), "ledger-test.db"),
		CacheSize:   64,
		MapSize:     1 << 20,
		Tag:         []byte("bulletdb-ledger-test"),
		Secret:      []byte("ledger-test-seed"),
		ShardPrefix: shardPrefix,
	}
	l, err := ledger.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestCreateAccountPutFinalizeAndValidateProof(t *testing.T) {
	l := newTestLedger(t, nil)

	var key, valHash, zero field.Hash
	key[0] = 0x11
	valHash[0] = 0x22
	var valIdx uint8 = 3

	require.NoError(t, l.CreateAccount(key, zero, zero))
	require.NoError(t, l.Put(key, valHash, valIdx, zero, zero))

	blockHash, err := l.Finalize(zero)
	require.NoError(t, err)
	require.False(t, blockHash.IsZero())

	proof, err := l.GenerateExistenceProof(key, valIdx, zero)
	require.NoError(t, err)
	require.NotEmpty(t, proof)

	ok, err := l.ValidateProof(key, valHash, valIdx, proof)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestValidateProofRejectsWrongValueHash(t *testing.T) {
	l := newTestLedger(t, nil)

	var key, valHash, wrongHash, zero field.Hash
	key[0] = 0x12
	valHash[0] = 0x33
	wrongHash[0] = 0x34
	var valIdx uint8 = 1

	require.NoError(t, l.CreateAccount(key, zero, zero))
	require.NoError(t, l.Put(key, valHash, valIdx, zero, zero))
	_, err := l.Finalize(zero)
	require.NoError(t, err)

	proof, err := l.GenerateExistenceProof(key, valIdx, zero)
	require.NoError(t, err)

	ok, err := l.ValidateProof(key, wrongHash, valIdx, proof)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestReplaceRejectsStalePrevValue(t *testing.T) {
	l := newTestLedger(t, nil)

	var key, v1, v2, zero field.Hash
	key[0] = 0x13
	v1[0] = 1
	v2[0] = 2

	require.NoError(t, l.Put(key, v1, 0, zero, zero))
	require.Error(t, l.Replace(key, v2, v2, 0, zero, zero)) // prevValHash must be v1
	require.NoError(t, l.Replace(key, v2, v1, 0, zero, zero))
}

func TestRemoveLastSlotReportsSuccessNotDeleted(t *testing.T) {
	l := newTestLedger(t, nil)

	var key, v, zero field.Hash
	key[0] = 0x14
	v[0] = 9

	require.NoError(t, l.Put(key, v, 0, zero, zero))
	require.NoError(t, l.Remove(key, 0, zero, zero)) // mapDeleted turns DELETED into nil
}

func TestCheckShardRejectsKeyOutsidePrefix(t *testing.T) {
	prefix := make([]byte, field.HashBytes)
	prefix[0] = 0xAA
	l := newTestLedger(t, prefix)

	var key, v, zero field.Hash
	key[0] = 0xBB // outside shard prefix
	err := l.Put(key, v, 0, zero, zero)
	require.ErrorIs(t, err, errcode.ErrNotInShard)

	key[0] = 0xAA
	require.NoError(t, l.Put(key, v, 0, zero, zero))
}

func TestJustifyPromotesOverlayIntoCanonical(t *testing.T) {
	l := newTestLedger(t, nil)

	var key, valHash, zero, blockHashSeed field.Hash
	key[0] = 0x15
	valHash[0] = 0x44
	blockHashSeed[0] = 0x99 // a non-zero "pending" block hash

	require.NoError(t, l.CreateAccount(key, blockHashSeed, zero))
	require.NoError(t, l.Put(key, valHash, 1, blockHashSeed, zero))
	_, err := l.Finalize(blockHashSeed)
	require.NoError(t, err)
	require.NoError(t, l.Justify(blockHashSeed))

	proof, err := l.GenerateExistenceProof(key, 1, zero)
	require.NoError(t, err)
	ok, err := l.ValidateProof(key, valHash, 1, proof)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestPruneDiscardsOverlayWithoutTouchingCanonical(t *testing.T) {
	l := newTestLedger(t, nil)

	var key, valHash, zero, blockHashSeed field.Hash
	key[0] = 0x16
	valHash[0] = 0x55
	blockHashSeed[0] = 0x77

	require.NoError(t, l.Put(key, valHash, 0, blockHashSeed, zero))
	require.NoError(t, l.Prune(blockHashSeed))

	_, err := l.GenerateExistenceProof(key, 0, zero)
	require.Error(t, err) // canonical state never saw the pruned overlay's write
}

func TestDBValueStorageRoundTrip(t *testing.T) {
	l := newTestLedger(t, nil)

	var keyHash field.Hash
	keyHash[0] = 0x01
	payload := []byte("hello world")

	ok, err := l.DBValueExists(keyHash)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, l.DBStoreValue(keyHash, payload))
	got, err := l.DBGetValue(keyHash)
	require.NoError(t, err)
	require.Equal(t, payload, got)

	require.NoError(t, l.DBDeleteValue(keyHash))
	ok, err = l.DBValueExists(keyHash)
	require.NoError(t, err)
	require.False(t, ok)
}
