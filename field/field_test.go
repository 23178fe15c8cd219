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

package field

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScalarArithmetic(t *testing.T) {
	a := FromU64(7)
	b := FromU64(3)

	require.True(t, Equal(Add(a, b), FromU64(10)))
	require.True(t, Equal(Sub(a, b), FromU64(4)))
	require.True(t, Equal(Mul(a, b), FromU64(21)))
	require.True(t, Equal(Neg(Neg(a)), a))
	require.True(t, Equal(Exp(a, 2), FromU64(49)))
}

func TestInverse(t *testing.T) {
	a := FromU64(12345)
	inv := Inverse(a)
	require.True(t, Equal(Mul(a, inv), OneSK))
}

func TestIsZero(t *testing.T) {
	require.True(t, IsZero(ZeroSK))
	require.False(t, IsZero(OneSK))
}

func TestFromLEBytesNonZero(t *testing.T) {
	var raw [32]byte
	raw[0] = 0x2a
	s := FromLEBytes(raw[:])
	require.False(t, IsZero(s))
}

func TestToBytesRoundTrip(t *testing.T) {
	a := FromU64(999)
	b := FromCanonicalBytes(ToBytes(a)[:])
	require.True(t, Equal(a, b))
}

func TestHashZeroValue(t *testing.T) {
	require.True(t, ZeroHash.IsZero())
	h := DeriveHash([]byte("bulletdb"))
	require.False(t, h.IsZero())
}

func TestDeriveHashDeterministic(t *testing.T) {
	a := DeriveHash([]byte("same input"))
	b := DeriveHash([]byte("same input"))
	require.Equal(t, a, b)

	c := DeriveHash([]byte("different input"))
	require.NotEqual(t, a, c)
}

func TestDeriveKVHash(t *testing.T) {
	a := DeriveKVHash([]byte("key"), []byte("value"))
	b := DeriveKVHash([]byte("key"), []byte("value"))
	require.Equal(t, a, b)

	c := DeriveKVHash([]byte("key"), []byte("other value"))
	require.NotEqual(t, a, c)
}

func TestValueStorageKey(t *testing.T) {
	k := ValueStorageKey([]byte("account-1"))
	require.Equal(t, DeriveHash([]byte("account-1")), k)
}

func TestHashToSK(t *testing.T) {
	h := DeriveHash([]byte("scalar source"))
	s := HashToSK(h)
	require.True(t, Equal(s, FromLEBytes(h[:])))
}

func TestHashCompressedPointToScalarTagging(t *testing.T) {
	c := []byte{1, 2, 3, 4}
	a := HashCompressedPointToScalar(c, []byte("tag-a"))
	b := HashCompressedPointToScalar(c, []byte("tag-b"))
	require.False(t, Equal(a, b))
}
