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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bulletdb/bulletdb/curve"
	"github.com/bulletdb/bulletdb/errcode"
	"github.com/bulletdb/bulletdb/field"
	"github.com/bulletdb/bulletdb/kzg"
	"github.com/bulletdb/bulletdb/nodeid"
	"github.com/bulletdb/bulletdb/ntt"
	"github.com/bulletdb/bulletdb/polynomial"
	"github.com/bulletdb/bulletdb/srs"
)

func testSettings(t *testing.T) *kzg.Settings {
	t.Helper()
	roots, err := ntt.BuildRoots(LeafOrder)
	require.NoError(t, err)
	s, err := srs.New(LeafOrder-1, []byte("leaf-test-seed"))
	require.NoError(t, err)
	return &kzg.Settings{SRS: s, Roots: roots, Tag: []byte("bulletdb-leaf-test")}
}

func testLeafID() nodeid.ID {
	var key field.Hash
	for i := range key {
		key[i] = byte(i)
	}
	return nodeid.New(key[:], 13, 1)
}

func TestLeafPutThenReplace(t *testing.T) {
	var key, v1, v2 field.Hash
	v1[0] = 1
	v2[0] = 2

	l := NewLeaf(testLeafID(), key)
	require.NoError(t, l.Put(key, v1, 3, 1))
	require.Error(t, l.Put(key, v1, 3, 1)) // slot occupied

	require.NoError(t, l.Replace(key, v2, v1, 3, 1))
	require.Error(t, l.Replace(key, v2, v1, 3, 1)) // stale prevValHash
}

func TestLeafRemoveReportsDeletedWhenEmpty(t *testing.T) {
	var key, v1 field.Hash
	v1[0] = 7

	l := NewLeaf(testLeafID(), key)
	require.NoError(t, l.Put(key, v1, 0, 1))

	err := l.Remove(key, 0, 2)
	require.ErrorIs(t, err, errcode.ErrDeleted)
	require.True(t, l.ShouldDelete())
}

func TestLeafRemoveKeepsAliveWithOtherSlots(t *testing.T) {
	var key, v1, v2 field.Hash
	v1[0], v2[0] = 1, 2

	l := NewLeaf(testLeafID(), key)
	require.NoError(t, l.Put(key, v1, 0, 1))
	require.NoError(t, l.Put(key, v2, 1, 1))

	require.NoError(t, l.Remove(key, 0, 2))
	require.False(t, l.ShouldDelete())
}

func TestLeafValIdxOutOfRange(t *testing.T) {
	var key, v field.Hash
	l := NewLeaf(testLeafID(), key)
	err := l.Put(key, v, LeafOrder, 1)
	require.ErrorIs(t, err, errcode.ErrValIdxRange)
}

func TestLeafCreateAccountIsIdempotent(t *testing.T) {
	var key field.Hash
	key[0] = 9

	l := NewLeaf(testLeafID(), key)
	require.NoError(t, l.CreateAccount(key, 1))
	require.NoError(t, l.CreateAccount(key, 1)) // already present: a no-op, not an error

	keyZeroed := key
	keyZeroed[field.HashBytes-1] = 0
	require.Equal(t, keyZeroed, l.values[0])

	err := l.DeleteAccount(key, 2)
	require.ErrorIs(t, err, errcode.ErrDeleted)
}

func TestLeafCreateAccountSlot0MatchesProofVerifierFormula(t *testing.T) {
	settings := testSettings(t)

	var key field.Hash
	key[0] = 7

	l := NewLeaf(testLeafID(), key)
	require.NoError(t, l.CreateAccount(key, 1))
	require.NoError(t, l.Finalize(settings))

	var fxs []polynomial.Polynomial
	var cs []curve.G1
	require.NoError(t, l.GenerateProof(key, &fxs, &cs))

	keyZeroed := key
	keyZeroed[field.HashBytes-1] = 0
	require.True(t, field.Equal(fxs[0][0], field.HashToSK(keyZeroed)))
}

func TestLeafFinalizeCommitsAndGenerateProofMatches(t *testing.T) {
	settings := testSettings(t)

	var key, v field.Hash
	v[0] = 55

	l := NewLeaf(testLeafID(), key)
	require.NoError(t, l.Put(key, v, 2, 1))

	require.NoError(t, l.Finalize(settings))
	require.False(t, l.Commitment().IsInfinity())
}

func TestLeafSerializeParseRoundTrip(t *testing.T) {
	settings := testSettings(t)

	var key, v field.Hash
	v[0] = 11

	l := NewLeaf(testLeafID(), key)
	require.NoError(t, l.Put(key, v, 4, 1))
	require.NoError(t, l.Finalize(settings))

	data := l.Serialize()
	require.Equal(t, tagLeaf, data[0])

	parsed, err := parseLeaf(data)
	require.NoError(t, err)

	pl, ok := parsed.(*Leaf)
	require.True(t, ok)
	require.True(t, pl.CommitIsInPath(l.Commitment()))
	require.Equal(t, v, pl.values[4])
	require.True(t, pl.present[4])
}

func TestLeafPruneDiscardsBlockOverlay(t *testing.T) {
	var key, v field.Hash
	v[0] = 3

	l := NewLeaf(testLeafID(), key)
	require.NoError(t, l.Put(key, v, 0, 5))

	require.NoError(t, l.Prune(5))
	require.False(t, l.present[0])
}

func TestLeafJustifyPromotesBlockID(t *testing.T) {
	var key, v field.Hash
	v[0] = 4

	l := NewLeaf(testLeafID(), key)
	require.NoError(t, l.Put(key, v, 0, 7))

	err := l.Justify(&fakeStore{})
	require.NoError(t, err)
	require.Equal(t, uint16(0), l.blkIDs[0])
	require.Equal(t, uint16(0), l.id.BlockID())
}

// fakeStore is a minimal Store good enough for Justify/Prune tests
// that never actually recurse into children (leaves have none).
type fakeStore struct{}

func (fakeStore) Load(id nodeid.ID) (Node, error) { return nil, errcode.ErrNotExist }
func (fakeStore) Cache(n Node) error               { return nil }
func (fakeStore) Recache(oldID, newID nodeid.ID) (Node, error) {
	return nil, errcode.ErrNotExist
}
func (fakeStore) Delete(id nodeid.ID) error { return nil }
