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

// Package ntt precomputes the BRANCH_ORDER-th roots of unity over Fr
// and provides the forward/inverse number-theoretic transform used to
// move branch polynomials between coefficient and evaluation bases.
// The teacher vendors this behind protolambda/go-kzg's FFTSettings;
// we keep the same two-table, bit-reversal-butterfly shape but own
// the implementation directly since BRANCH_ORDER (256) is fixed by
// the spec rather than configurable.
package ntt

import (
	"errors"
	"math/big"

	"github.com/bulletdb/bulletdb/field"
)

// Roots holds the forward and inverse n-th roots of unity for n =
// BRANCH_ORDER, plus n^-1, used by InverseFFTInPlace's final scale.
type Roots struct {
	N       int
	Forward []field.Scalar // Forward[i] = ω^i
	Inverse []field.Scalar // Inverse[i] = ω^-i
	InvN    field.Scalar

	// OneMinusOmegaInv[i] = 1/(1-ω^i) for i != 0, precomputed once so
	// polynomial.DeriveQuotient never mutates shared state at proof
	// time: Roots is read-only after construction (see spec's
	// concurrency model).
	OneMinusOmegaInv []field.Scalar
}

// frModulus is the BLS12-381 scalar field order q.
var frModulus, _ = new(big.Int).SetString(
	"52435875175126190479447740508185965837690552500527637822603658699938581184513", 10)

// BuildRoots computes ω = g^((q-1)/n) mod q with g = 5, the small
// generator the spec mandates, and returns the forward/inverse tables.
func BuildRoots(n int) (*Roots, error) {
	if n <= 0 || (n&(n-1)) != 0 {
		return nil, errors.New("ntt: n must be a power of two")
	}
	qm1 := new(big.Int).Sub(frModulus, big.NewInt(1))
	nBig := big.NewInt(int64(n))
	exp := new(big.Int).Div(qm1, nBig)
	if new(big.Int).Mod(qm1, nBig).Sign() != 0 {
		return nil, errors.New("ntt: n does not divide q-1")
	}

	gBig := big.NewInt(5)
	omegaBig := new(big.Int).Exp(gBig, exp, frModulus)
	var omega field.Scalar
	omega.SetBigInt(omegaBig)

	// Sanity: ω^n = 1, ω^(n/2) != 1.
	if !field.Equal(field.Exp(omega, uint64(n)), field.OneSK) {
		return nil, errors.New("ntt: omega^n != 1")
	}
	if n > 1 && field.Equal(field.Exp(omega, uint64(n/2)), field.OneSK) {
		return nil, errors.New("ntt: omega^(n/2) == 1")
	}

	omegaInv := field.Inverse(omega)

	fwd := make([]field.Scalar, n)
	inv := make([]field.Scalar, n)
	fwd[0] = field.OneSK
	inv[0] = field.OneSK
	for i := 1; i < n; i++ {
		fwd[i] = field.Mul(fwd[i-1], omega)
		inv[i] = field.Mul(inv[i-1], omegaInv)
	}

	var nScalar field.Scalar
	nScalar.SetUint64(uint64(n))
	invN := field.Inverse(nScalar)

	oneMinusInv := make([]field.Scalar, n)
	for i := 1; i < n; i++ {
		diff := field.Sub(field.OneSK, fwd[i])
		oneMinusInv[i] = field.Inverse(diff)
	}

	return &Roots{
		N:                n,
		Forward:          fwd,
		Inverse:          inv,
		InvN:             invN,
		OneMinusOmegaInv: oneMinusInv,
	}, nil
}
