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

// Package field wraps the BLS12-381 scalar field Fr, the way the
// teacher's crypto package wraps bandersnatch's Fr: a thin type alias
// plus the handful of free functions the rest of the engine needs,
// rather than re-deriving field arithmetic by hand.
package field

import (
	"crypto/subtle"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Scalar is an element of Fr, the BLS12-381 scalar field.
type Scalar = fr.Element

// ZeroSK and OneSK are the additive and multiplicative identities.
var (
	ZeroSK Scalar
	OneSK  Scalar
)

func init() {
	ZeroSK.SetZero()
	OneSK.SetOne()
}

// FromU64 builds a scalar from a small unsigned integer.
func FromU64(v uint64) Scalar {
	var s Scalar
	s.SetUint64(v)
	return s
}

// FromLEBytes interprets b (at most 32 bytes) as a little-endian
// integer and reduces it modulo the field order.
func FromLEBytes(b []byte) Scalar {
	var rev [32]byte
	n := len(b)
	if n > 32 {
		n = 32
	}
	for i := 0; i < n; i++ {
		rev[31-i] = b[i]
	}
	var s Scalar
	s.SetBytes(rev[:])
	return s
}

// Mul returns a*b.
func Mul(a, b Scalar) Scalar {
	var out Scalar
	out.Mul(&a, &b)
	return out
}

// Add returns a+b.
func Add(a, b Scalar) Scalar {
	var out Scalar
	out.Add(&a, &b)
	return out
}

// Sub returns a-b.
func Sub(a, b Scalar) Scalar {
	var out Scalar
	out.Sub(&a, &b)
	return out
}

// Neg returns -a.
func Neg(a Scalar) Scalar {
	var out Scalar
	out.Neg(&a)
	return out
}

// Inverse returns 1/a, or zero if a is zero; callers check IsZero
// first, matching the teacher's "safe by construction" style.
func Inverse(a Scalar) Scalar {
	var out Scalar
	out.Inverse(&a)
	return out
}

// Exp returns a^e.
func Exp(a Scalar, e uint64) Scalar {
	var out, base Scalar
	out.SetOne()
	base.Set(&a)
	for e > 0 {
		if e&1 == 1 {
			out.Mul(&out, &base)
		}
		base.Mul(&base, &base)
		e >>= 1
	}
	return out
}

// IsZero reports whether s is the additive identity.
func IsZero(s Scalar) bool {
	return s.IsZero()
}

// Equal does a constant-time comparison of the canonical byte
// encodings of a and b, the way the spec requires for equal_scalars.
func Equal(a, b Scalar) bool {
	ab := a.Bytes()
	bb := b.Bytes()
	return subtle.ConstantTimeCompare(ab[:], bb[:]) == 1
}

// ToBytes returns the canonical 32-byte big-endian encoding of s.
func ToBytes(s Scalar) [32]byte {
	return s.Bytes()
}
