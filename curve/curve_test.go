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

package curve

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bulletdb/bulletdb/field"
)

func TestAddSubNegG1(t *testing.T) {
	g1 := GeneratorG1()
	two := AddG1(g1, g1)
	back := SubG1(two, g1)
	require.True(t, EqualG1(back, g1))

	neg := NegG1(g1)
	sum := AddG1(g1, neg)
	require.True(t, IsInfinityG1(sum))
}

func TestScalarMulG1Distributes(t *testing.T) {
	g1 := GeneratorG1()
	three := ScalarMulG1(g1, field.FromU64(3))
	sumThree := AddG1(AddG1(g1, g1), g1)
	require.True(t, EqualG1(three, sumThree))
}

func TestCompressDecompressG1RoundTrip(t *testing.T) {
	p := ScalarMulG1(GeneratorG1(), field.FromU64(42))
	c := CompressG1(p)
	back, err := DecompressG1(c[:])
	require.NoError(t, err)
	require.True(t, EqualG1(p, back))
}

func TestCompressDecompressG2RoundTrip(t *testing.T) {
	p := ScalarMulG2(GeneratorG2(), field.FromU64(17))
	c := CompressG2(p)
	back, err := DecompressG2(c[:])
	require.NoError(t, err)
	require.True(t, back.Equal(&p))
}

func TestHashG1ToScalarTagSensitivity(t *testing.T) {
	p := ScalarMulG1(GeneratorG1(), field.FromU64(9))
	a := HashG1ToScalar(p, []byte("tag-one"))
	b := HashG1ToScalar(p, []byte("tag-two"))
	require.False(t, field.Equal(a, b))
}

func TestPairSelfConsistent(t *testing.T) {
	g1 := GeneratorG1()
	g2 := GeneratorG2()
	s := field.FromU64(5)
	sg1 := ScalarMulG1(g1, s)
	sg2 := ScalarMulG2(g2, s)

	// e(s*g1, g2) == e(g1, s*g2)
	ok, err := Pair(sg1, g2, g1, sg2)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestPairDetectsMismatch(t *testing.T) {
	g1 := GeneratorG1()
	g2 := GeneratorG2()
	sg1 := ScalarMulG1(g1, field.FromU64(5))
	sg2 := ScalarMulG2(g2, field.FromU64(6))

	ok, err := Pair(sg1, g2, g1, sg2)
	require.NoError(t, err)
	require.False(t, ok)
}
