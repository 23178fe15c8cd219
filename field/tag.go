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

import "github.com/zeebo/blake3"

// This package takes a point's compressed bytes rather than a curve
// type, to avoid a field->curve import cycle (curve already imports
// field for scalar multiplication).

// HashCompressedPointToScalar computes Blake3(tag || compressedPoint)
// reduced into Fr. This is the C6 hashing-tag primitive
// (hash_p1_to_scalar), called with a point's compressed encoding so
// this package need not import curve.
func HashCompressedPointToScalar(compressed []byte, tag []byte) Scalar {
	h := blake3.New()
	h.Write(tag)
	h.Write(compressed)
	sum := h.Sum(nil)
	return FromLEBytes(sum)
}
