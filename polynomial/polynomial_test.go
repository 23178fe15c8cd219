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

package polynomial

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bulletdb/bulletdb/field"
	"github.com/bulletdb/bulletdb/ntt"
)

func TestAddSub(t *testing.T) {
	a := Polynomial{field.FromU64(1), field.FromU64(2)}
	b := Polynomial{field.FromU64(3), field.FromU64(4), field.FromU64(5)}

	sum := Add(a, b)
	require.Len(t, sum, 3)
	require.True(t, field.Equal(sum[0], field.FromU64(4)))
	require.True(t, field.Equal(sum[1], field.FromU64(6)))
	require.True(t, field.Equal(sum[2], field.FromU64(5)))

	diff := Sub(b, a)
	require.True(t, field.Equal(diff[0], field.FromU64(2)))
	require.True(t, field.Equal(diff[1], field.FromU64(2)))
	require.True(t, field.Equal(diff[2], field.FromU64(5)))
}

func TestScaleAndMul(t *testing.T) {
	a := Polynomial{field.FromU64(1), field.FromU64(1)} // 1 + x
	scaled := Scale(a, field.FromU64(2))
	require.True(t, field.Equal(scaled[0], field.FromU64(2)))
	require.True(t, field.Equal(scaled[1], field.FromU64(2)))

	b := Polynomial{field.FromU64(1), field.FromU64(1)} // 1 + x
	prod := Mul(a, b)                                   // (1+x)^2 = 1 + 2x + x^2
	require.Len(t, prod, 3)
	require.True(t, field.Equal(prod[0], field.FromU64(1)))
	require.True(t, field.Equal(prod[1], field.FromU64(2)))
	require.True(t, field.Equal(prod[2], field.FromU64(1)))
}

func TestEvalHorner(t *testing.T) {
	// p(x) = 1 + 2x + 3x^2
	p := Polynomial{field.FromU64(1), field.FromU64(2), field.FromU64(3)}
	got := Eval(p, field.FromU64(2))
	require.True(t, field.Equal(got, field.FromU64(1+2*2+3*4)))
}

func TestDivMod(t *testing.T) {
	// (x^2 - 1) / (x - 1) = x + 1, remainder 0
	a := Polynomial{field.Neg(field.OneSK), field.ZeroSK, field.OneSK}
	b := Polynomial{field.Neg(field.OneSK), field.OneSK}

	q, r, err := DivMod(a, b)
	require.NoError(t, err)
	require.True(t, IsZeroPoly(r))
	require.True(t, field.Equal(Eval(q, field.FromU64(3)), field.FromU64(4)))
}

func IsZeroPoly(p Polynomial) bool {
	p = Normalize(p)
	return len(p) == 0
}

func TestDeriveQuotientRejectsPointOutsideDomain(t *testing.T) {
	r, err := ntt.BuildRoots(8)
	require.NoError(t, err)

	evals := make(Polynomial, 8)
	for i := range evals {
		evals[i] = field.FromU64(uint64(i))
	}

	_, err = DeriveQuotient(evals, field.FromU64(999999), field.ZeroSK, r)
	require.Error(t, err)
}

func TestDeriveQuotientOpensAtDomainPoint(t *testing.T) {
	r, err := ntt.BuildRoots(8)
	require.NoError(t, err)

	// A constant polynomial opens to the same quotient of zero
	// everywhere: f(x) = 5 evaluated at every root is 5, so
	// (f(w^i) - 5)/(w^i - z) is always 0 away from the opening index.
	evals := make(Polynomial, 8)
	for i := range evals {
		evals[i] = field.FromU64(5)
	}

	z := r.Forward[2]
	y := evals[2]
	q, err := DeriveQuotient(evals, z, y, r)
	require.NoError(t, err)
	for i, qi := range q {
		require.True(t, field.IsZero(qi), "index %d", i)
	}
}
