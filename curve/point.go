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

// Package curve wraps BLS12-381 group elements the way the teacher's
// crypto package wraps banderwagon: jacobian points for accumulation,
// affine points for compressed serialization and pairing checks.
package curve

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/bulletdb/bulletdb/field"
)

// G1 and G2 are the two source groups; Commitment and Proof are both
// constant-size G1 elements, matching the spec's naming.
type (
	G1         = bls12381.G1Affine
	G1Jac      = bls12381.G1Jac
	G2         = bls12381.G2Affine
	G2Jac      = bls12381.G2Jac
	GT         = bls12381.GT
	Commitment = G1
	Proof      = G1
)

// CompressedG1Size and CompressedG2Size are the wire sizes the spec
// fixes for SRS import/export and proof serialization.
const (
	CompressedG1Size = 48
	CompressedG2Size = 96
)

// GeneratorG1 and GeneratorG2 are the standard BLS12-381 generators.
func GeneratorG1() G1 {
	_, _, g1, _ := bls12381.Generators()
	return g1
}

func GeneratorG2() G2 {
	_, _, _, g2 := bls12381.Generators()
	return g2
}

// ScalarMulG1 returns s*p.
func ScalarMulG1(p G1, s field.Scalar) G1 {
	var bi big.Int
	s.BigInt(&bi)
	var out G1
	out.ScalarMultiplication(&p, &bi)
	return out
}

// ScalarMulG2 returns s*p.
func ScalarMulG2(p G2, s field.Scalar) G2 {
	var bi big.Int
	s.BigInt(&bi)
	var out G2
	out.ScalarMultiplication(&p, &bi)
	return out
}

// AddG1 returns a+b.
func AddG1(a, b G1) G1 {
	var aj, bj, outj G1Jac
	aj.FromAffine(&a)
	bj.FromAffine(&b)
	outj.Set(&aj).AddAssign(&bj)
	var out G1
	out.FromJacobian(&outj)
	return out
}

// AddG2 returns a+b.
func AddG2(a, b G2) G2 {
	var aj, bj, outj G2Jac
	aj.FromAffine(&a)
	bj.FromAffine(&b)
	outj.Set(&aj).AddAssign(&bj)
	var out G2
	out.FromJacobian(&outj)
	return out
}

// SubG1 returns a-b.
func SubG1(a, b G1) G1 {
	var neg G1
	neg.Neg(&b)
	return AddG1(a, neg)
}

// NegG1 returns -a.
func NegG1(a G1) G1 {
	var out G1
	out.Neg(&a)
	return out
}

// IsInfinityG1 reports whether p is the point at infinity, the basis
// for a constant-time scalar_is_zero check (g*s == infinity).
func IsInfinityG1(p G1) bool {
	return p.IsInfinity()
}

// CompressG1 returns the 48-byte compressed encoding of p.
func CompressG1(p G1) [CompressedG1Size]byte {
	return p.Bytes()
}

// DecompressG1 parses a 48-byte compressed G1 point.
func DecompressG1(b []byte) (G1, error) {
	var out G1
	var arr [CompressedG1Size]byte
	copy(arr[:], b)
	_, err := out.SetBytes(arr[:])
	return out, err
}

// CompressG2 returns the 96-byte compressed encoding of p.
func CompressG2(p G2) [CompressedG2Size]byte {
	return p.Bytes()
}

// DecompressG2 parses a 96-byte compressed G2 point.
func DecompressG2(b []byte) (G2, error) {
	var out G2
	var arr [CompressedG2Size]byte
	copy(arr[:], b)
	_, err := out.SetBytes(arr[:])
	return out, err
}

// EqualG1 reports whether a and b are the same affine point.
func EqualG1(a, b G1) bool {
	return a.Equal(&b)
}

// HashG1ToScalar is the C6 hashing-tag primitive: Blake3(tag ||
// compress_g1(p)) reduced into Fr, used to fold a child's commitment
// into its parent's branch polynomial.
func HashG1ToScalar(p G1, tag []byte) field.Scalar {
	c := CompressG1(p)
	return field.HashCompressedPointToScalar(c[:], tag)
}

// Pair checks e(a1, a2) == e(b1, b2), the pairing equality at the
// heart of both single-point and batched KZG verification.
func Pair(a1 G1, a2 G2, b1 G1, b2 G2) (bool, error) {
	var negA1 G1
	negA1.Neg(&a1)
	lhs, err := bls12381.Pair([]G1{negA1, b1}, []G2{a2, b2})
	if err != nil {
		return false, err
	}
	var one GT
	one.SetOne()
	return lhs.Equal(&one), nil
}
