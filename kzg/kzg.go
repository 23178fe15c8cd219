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

// Package kzg implements the single-point KZG opening/verification
// and the Fiat-Shamir-aggregated batch verifier the spec defines in
// §4.5. It follows the teacher's proof.go shape (calcR/calcT-style
// transcript hashing, ComputeKZGProof via outer/inner quotients) but
// implements the spec's batch_verify formula directly rather than the
// teacher's multi-level g(x)/h(x) aggregate, since this engine proves
// one polynomial opening per trie level rather than one aggregate
// multiproof.
package kzg

import (
	"github.com/bulletdb/bulletdb/curve"
	"github.com/bulletdb/bulletdb/errcode"
	"github.com/bulletdb/bulletdb/field"
	"github.com/bulletdb/bulletdb/ntt"
	"github.com/bulletdb/bulletdb/polynomial"
	"github.com/bulletdb/bulletdb/srs"
)

// Settings bundles the read-only, construction-time state every KZG
// operation needs: the SRS, the NTT root tables, and the domain
// separation tag mixed into every point-to-scalar hash.
type Settings struct {
	SRS   *srs.SRS
	Roots *ntt.Roots
	Tag   []byte
}

// Commit returns Σ SRS.G1Powers[i]·coeffs[i], i.e. commit_g1.
func (s *Settings) Commit(coeffs polynomial.Polynomial) curve.Commitment {
	return s.SRS.CommitG1(coeffs)
}

// Prove computes the KZG opening of evals (in evaluation basis) at
// the domain point indexed by evalIdx, per spec §4.5:
//  1. z = roots[evalIdx], y = evals[evalIdx]
//  2. Q = derive_quotient(evals, z, y)
//  3. q(x) via inverse FFT
//  4. return commit_g1(q)
func Prove(s *Settings, evals polynomial.Polynomial, evalIdx int) (curve.Proof, error) {
	if evalIdx < 0 || evalIdx >= len(s.Roots.Forward) {
		return curve.Proof{}, errcode.ErrKZGProof
	}
	z := s.Roots.Forward[evalIdx]
	y := evals[evalIdx]

	qEval, err := polynomial.DeriveQuotient(evals, z, y, s.Roots)
	if err != nil {
		return curve.Proof{}, errcode.ErrKZGProof
	}

	qCoeffs := make(polynomial.Polynomial, len(qEval))
	copy(qCoeffs, qEval)
	ntt.InverseFFTInPlace(qCoeffs, s.Roots)

	return s.Commit(qCoeffs), nil
}

// Verify checks a single KZG opening: C(z) = y, witnessed by proof pi.
//
//	lhs = C - [y]_1 + z·pi
//	e(lhs, g2) = e(pi, g2·s)
func Verify(s *Settings, c curve.Commitment, z, y field.Scalar, pi curve.Proof) bool {
	g1 := curve.GeneratorG1()
	yG1 := curve.ScalarMulG1(g1, y)
	zPi := curve.ScalarMulG1(pi, z)

	lhs := curve.SubG1(c, yG1)
	lhs = curve.AddG1(lhs, zPi)

	g2 := s.SRS.G2Powers[0]
	g2s := s.SRS.G2Powers[1]

	ok, err := curve.Pair(lhs, g2, pi, g2s)
	if err != nil {
		return false
	}
	return ok
}

// transcriptR derives r_i = hash_to_sk(Blake3(baseR || z_i || y_i ||
// compress(C_i) || compress(pi_i))), mixing commitment and proof
// bytes in that fixed order: changing the order is a soundness bug,
// per the spec.
func transcriptR(baseR []byte, z, y field.Scalar, c curve.Commitment, pi curve.Proof) field.Scalar {
	zb := field.ToBytes(z)
	yb := field.ToBytes(y)
	cb := curve.CompressG1(c)
	pib := curve.CompressG1(pi)

	buf := make([]byte, 0, len(baseR)+len(zb)+len(yb)+len(cb)+len(pib))
	buf = append(buf, baseR...)
	buf = append(buf, zb[:]...)
	buf = append(buf, yb[:]...)
	buf = append(buf, cb[:]...)
	buf = append(buf, pib[:]...)

	h := field.DeriveHash(buf)
	return field.HashToSK(h)
}

// BatchVerify implements the spec's Fiat-Shamir-aggregated multi-proof
// verification:
//  1. derive r_i per-proof from the transcript; reject if any r_i = 0
//  2. agg_left  = Σ r_i·pi_i
//  3. agg_right = Σ r_i·(C_i - [y_i]_1) + (r_i·z_i)·pi_i
//  4. verify e(agg_left, g2·s) = e(agg_right, g2)
func BatchVerify(s *Settings, pis []curve.Proof, cs []curve.Commitment, zs []field.Scalar, ys []field.Scalar, baseR []byte) bool {
	if len(pis) != len(cs) || len(cs) != len(zs) || len(zs) != len(ys) || len(pis) == 0 {
		return false
	}

	g1 := curve.GeneratorG1()
	var aggLeft, aggRight curve.G1
	first := true

	for i := range pis {
		r := transcriptR(baseR, zs[i], ys[i], cs[i], pis[i])
		if field.IsZero(r) {
			return false
		}

		leftTerm := curve.ScalarMulG1(pis[i], r)

		yG1 := curve.ScalarMulG1(g1, ys[i])
		cMinusY := curve.SubG1(cs[i], yG1)
		cMinusYr := curve.ScalarMulG1(cMinusY, r)

		rz := field.Mul(r, zs[i])
		piRz := curve.ScalarMulG1(pis[i], rz)

		rightTerm := curve.AddG1(cMinusYr, piRz)

		if first {
			aggLeft = leftTerm
			aggRight = rightTerm
			first = false
			continue
		}
		aggLeft = curve.AddG1(aggLeft, leftTerm)
		aggRight = curve.AddG1(aggRight, rightTerm)
	}

	g2 := s.SRS.G2Powers[0]
	g2s := s.SRS.G2Powers[1]

	ok, err := curve.Pair(aggLeft, g2s, aggRight, g2)
	if err != nil {
		return false
	}
	return ok
}
