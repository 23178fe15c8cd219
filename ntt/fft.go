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

package ntt

import "github.com/bulletdb/bulletdb/field"

// FFTInPlace performs bit-reversal permutation followed by iterative
// Cooley-Tukey butterflies, transforming a from coefficient basis to
// evaluation basis over r.Forward. len(a) must equal r.N.
func FFTInPlace(a []field.Scalar, r *Roots) {
	bitReverse(a)
	butterflies(a, r.Forward)
}

// InverseFFTInPlace transforms a from evaluation basis back to
// coefficient basis: FFTInPlace with the inverse root table, then
// scale every element by n^-1.
func InverseFFTInPlace(a []field.Scalar, r *Roots) {
	bitReverse(a)
	butterflies(a, r.Inverse)
	for i := range a {
		a[i] = field.Mul(a[i], r.InvN)
	}
}

func bitReverse(a []field.Scalar) {
	n := len(a)
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			a[i], a[j] = a[j], a[i]
		}
	}
}

// butterflies applies the iterative radix-2 Cooley-Tukey network.
// roots must be the full table of n-th roots ω^0..ω^(n-1) for the
// transform direction being computed.
func butterflies(a []field.Scalar, roots []field.Scalar) {
	n := len(a)
	for size := 2; size <= n; size <<= 1 {
		halfSize := size / 2
		stride := n / size
		for start := 0; start < n; start += size {
			for i := 0; i < halfSize; i++ {
				w := roots[i*stride]
				u := a[start+i]
				v := field.Mul(a[start+i+halfSize], w)
				a[start+i] = field.Add(u, v)
				a[start+i+halfSize] = field.Sub(u, v)
			}
		}
	}
}
