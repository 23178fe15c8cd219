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

package bulletstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bulletdb/bulletdb/errcode"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, 1<<20)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGetNode(t *testing.T) {
	s := openTestStore(t)

	err := s.PutNode([]byte("node-1"), []byte("payload"))
	require.NoError(t, err)

	v, err := s.GetNode([]byte("node-1"))
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), v)
}

func TestGetNodeMissingReturnsNotExist(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetNode([]byte("absent"))
	require.ErrorIs(t, err, errcode.ErrNotExist)
}

func TestDelNode(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.PutNode([]byte("k"), []byte("v")))

	require.NoError(t, s.DelNode([]byte("k")))

	_, err := s.GetNode([]byte("k"))
	require.ErrorIs(t, err, errcode.ErrNotExist)
}

func TestDelNodeAbsentIsNotAnError(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.DelNode([]byte("never-existed")))
}

func TestExistsNode(t *testing.T) {
	s := openTestStore(t)
	ok, err := s.ExistsNode([]byte("k"))
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.PutNode([]byte("k"), []byte("v")))
	ok, err = s.ExistsNode([]byte("k"))
	require.NoError(t, err)
	require.True(t, ok)
}

func TestValueBucketIsIndependentOfNodeBucket(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.PutValue([]byte("shared-key"), []byte("value-bytes")))

	_, err := s.GetNode([]byte("shared-key"))
	require.ErrorIs(t, err, errcode.ErrNotExist)

	v, err := s.GetValue([]byte("shared-key"))
	require.NoError(t, err)
	require.Equal(t, []byte("value-bytes"), v)

	require.NoError(t, s.DelValue([]byte("shared-key")))
	ok, err := s.ExistsValue([]byte("shared-key"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestReopenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")
	s, err := Open(path, 1<<20)
	require.NoError(t, err)
	require.NoError(t, s.PutNode([]byte("durable"), []byte("data")))
	require.NoError(t, s.Close())

	s2, err := Open(path, 1<<20)
	require.NoError(t, err)
	defer s2.Close()

	v, err := s2.GetNode([]byte("durable"))
	require.NoError(t, err)
	require.Equal(t, []byte("data"), v)
}
