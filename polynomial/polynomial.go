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

// Package polynomial implements dense, low-degree-first polynomial
// arithmetic over Fr, plus the KZG quotient construction the teacher
// computes inline in its TreeConfig (config.go's innerQuotients /
// outerQuotients). Here the two cases are unified into DeriveQuotient
// per the spec: the evaluation domain always contains z for this
// engine's openings, so the "same-point" formula is the only path
// exercised, but the general, not-in-domain error is still reported.
package polynomial

import (
	"errors"

	"github.com/bulletdb/bulletdb/field"
	"github.com/bulletdb/bulletdb/ntt"
)

// Polynomial is a dense coefficient (or, depending on context,
// evaluation-basis) vector, low-degree first.
type Polynomial []field.Scalar

// Add returns a+b, padding the shorter operand with zeros.
func Add(a, b Polynomial) Polynomial {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make(Polynomial, n)
	for i := 0; i < n; i++ {
		var av, bv field.Scalar
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		out[i] = field.Add(av, bv)
	}
	return out
}

// Sub returns a-b, padding the shorter operand with zeros.
func Sub(a, b Polynomial) Polynomial {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make(Polynomial, n)
	for i := 0; i < n; i++ {
		var av, bv field.Scalar
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		out[i] = field.Sub(av, bv)
	}
	return out
}

// Scale returns c*a.
func Scale(a Polynomial, c field.Scalar) Polynomial {
	out := make(Polynomial, len(a))
	for i := range a {
		out[i] = field.Mul(a[i], c)
	}
	return out
}

// Mul returns the naive O(n^2) product of a and b.
func Mul(a, b Polynomial) Polynomial {
	if len(a) == 0 || len(b) == 0 {
		return Polynomial{}
	}
	out := make(Polynomial, len(a)+len(b)-1)
	for i, av := range a {
		for j, bv := range b {
			out[i+j] = field.Add(out[i+j], field.Mul(av, bv))
		}
	}
	return out
}

// Normalize drops trailing zero coefficients.
func Normalize(a Polynomial) Polynomial {
	n := len(a)
	for n > 0 && field.IsZero(a[n-1]) {
		n--
	}
	return a[:n]
}

// Eval evaluates a at x via Horner's method.
func Eval(a Polynomial, x field.Scalar) field.Scalar {
	var acc field.Scalar
	for i := len(a) - 1; i >= 0; i-- {
		acc = field.Add(field.Mul(acc, x), a[i])
	}
	return acc
}

// DivMod performs schoolbook long division of a by b, returning
// (quotient, remainder), dividing by b's leading-coefficient inverse
// at each step.
func DivMod(a, b Polynomial) (q, r Polynomial, err error) {
	b = Normalize(b)
	if len(b) == 0 {
		return nil, nil, errors.New("polynomial: division by zero polynomial")
	}
	rem := make(Polynomial, len(a))
	copy(rem, a)
	deg := func(p Polynomial) int {
		p = Normalize(p)
		return len(p) - 1
	}
	bDeg := deg(b)
	leadInv := field.Inverse(b[bDeg])

	qLen := 0
	if deg(rem) >= bDeg {
		qLen = deg(rem) - bDeg + 1
	}
	quot := make(Polynomial, qLen)

	for deg(rem) >= bDeg && deg(rem) >= 0 {
		rd := deg(rem)
		coeff := field.Mul(rem[rd], leadInv)
		shift := rd - bDeg
		quot[shift] = coeff
		for i, bv := range b {
			rem[shift+i] = field.Sub(rem[shift+i], field.Mul(coeff, bv))
		}
		rem = Normalize(rem)
		if len(rem) < len(a) {
			padded := make(Polynomial, len(a))
			copy(padded, rem)
			rem = padded
		}
	}
	return quot, Normalize(rem), nil
}

// DeriveQuotient computes, in evaluation basis over the NTT domain
// r, the polynomial Q such that Q(ω^i) = (F(ω^i) - y) / (ω^i - z)
// for ω^i != z, and the standard L'Hopital-style same-point formula
// at the index where ω^i == z. It returns an error if z is not one
// of r.Forward's entries, matching the spec's "absent" result.
func DeriveQuotient(evals Polynomial, z, y field.Scalar, r *ntt.Roots) (Polynomial, error) {
	index := -1
	for i, w := range r.Forward {
		if field.Equal(w, z) {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, errors.New("polynomial: z not in evaluation domain")
	}
	return innerQuotient(evals, index, r), nil
}

// innerQuotient is the teacher's innerQuotients, generalized to a
// caller-supplied root table rather than the hardcoded BRANCH_ORDER
// config.
func innerQuotient(f Polynomial, index int, r *ntt.Roots) Polynomial {
	n := len(r.Forward)
	q := make(Polynomial, n)
	y := f[index]
	for i := 0; i < n; i++ {
		if i == index {
			continue
		}
		omegaIdx := (n - i) % n
		invIdx := (index + n - i) % n
		iMinIdx := (i - index + n) % n

		tmp := field.Sub(f[i], y)
		tmp = field.Mul(tmp, r.Forward[omegaIdx])
		q[i] = field.Mul(tmp, r.OneMinusOmegaInv[invIdx])

		contrib := field.Mul(r.Forward[iMinIdx], q[i])
		contrib = field.Neg(contrib)
		q[index] = field.Add(q[index], contrib)
	}
	return q
}
