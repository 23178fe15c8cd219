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

package allocator

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bulletdb/bulletdb/bulletstore"
	"github.com/bulletdb/bulletdb/errcode"
	"github.com/bulletdb/bulletdb/field"
	"github.com/bulletdb/bulletdb/nodeid"
	"github.com/bulletdb/bulletdb/trienode"
)

func openTestDB(t *testing.T) *bulletstore.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "alloc-test.db")
	db, err := bulletstore.Open(path, 1<<20)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testLeaf(idx byte) *trienode.Leaf {
	var key field.Hash
	key[0] = idx
	id := nodeid.New(key[:], 13, 0)
	return trienode.NewLeaf(id, key)
}

func TestCacheThenLoadHitsCache(t *testing.T) {
	db := openTestDB(t)
	a := New(db, 4)

	l := testLeaf(1)
	require.NoError(t, a.Cache(l))

	got, err := a.Load(l.ID())
	require.NoError(t, err)
	require.Equal(t, l.ID(), got.ID())
}

func TestLoadFallsBackToPersistentStore(t *testing.T) {
	db := openTestDB(t)
	a := New(db, 4)

	l := testLeaf(2)
	require.NoError(t, a.Persist(l))

	// A fresh allocator over the same db has an empty cache, so Load
	// must hydrate from the store.
	b := New(db, 4)
	got, err := b.Load(l.ID())
	require.NoError(t, err)
	require.Equal(t, l.ID(), got.ID())
}

func TestLoadMissingReturnsNotExist(t *testing.T) {
	db := openTestDB(t)
	a := New(db, 4)

	var key field.Hash
	id := nodeid.New(key[:], 13, 99)
	_, err := a.Load(id)
	require.ErrorIs(t, err, errcode.ErrNotExist)
}

func TestCacheEvictionWritesBackToStore(t *testing.T) {
	db := openTestDB(t)
	a := New(db, 1) // capacity 1 forces eviction on the second insert

	l1 := testLeaf(1)
	l2 := testLeaf(2)

	require.NoError(t, a.Cache(l1))
	require.NoError(t, a.Cache(l2)) // evicts l1, which must be written back

	id := l1.ID()
	data, err := db.GetNode(id[:])
	require.NoError(t, err)
	require.NotEmpty(t, data)
}

func TestRecacheMovesNode(t *testing.T) {
	db := openTestDB(t)
	a := New(db, 4)

	l := testLeaf(3)
	oldID := l.ID()
	require.NoError(t, a.Cache(l))

	newID := oldID.SetBlockID(7)
	moved, err := a.Recache(oldID, newID)
	require.NoError(t, err)
	require.Equal(t, newID, moved.ID())

	_, err = db.GetNode(oldID[:])
	require.ErrorIs(t, err, errcode.ErrNotExist)

	got, err := a.Load(newID)
	require.NoError(t, err)
	require.Equal(t, newID, got.ID())
}

func TestRecacheMissingReturnsNotExistRecache(t *testing.T) {
	db := openTestDB(t)
	a := New(db, 4)

	var key field.Hash
	oldID := nodeid.New(key[:], 13, 1)
	newID := oldID.SetBlockID(2)

	_, err := a.Recache(oldID, newID)
	require.ErrorIs(t, err, errcode.ErrNotExistRecache)
}

func TestDeleteRemovesFromCacheAndStore(t *testing.T) {
	db := openTestDB(t)
	a := New(db, 4)

	l := testLeaf(4)
	require.NoError(t, a.Cache(l))
	require.NoError(t, a.Delete(l.ID()))

	_, err := a.Load(l.ID())
	require.ErrorIs(t, err, errcode.ErrNotExist)
}
