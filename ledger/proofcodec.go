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

package ledger

import (
	"fmt"

	"github.com/bulletdb/bulletdb/curve"
	"github.com/bulletdb/bulletdb/errcode"
)

// encodeProof serializes an existence proof per §6: n_C(1) ∥
// Cs(48·n_C) ∥ n_Pi(1) ∥ Pis(48·n_Pi).
func encodeProof(cs, pis []curve.G1) []byte {
	out := make([]byte, 0, 2+len(cs)*curve.CompressedG1Size+len(pis)*curve.CompressedG1Size)
	out = append(out, byte(len(cs)))
	for _, c := range cs {
		b := curve.CompressG1(c)
		out = append(out, b[:]...)
	}
	out = append(out, byte(len(pis)))
	for _, p := range pis {
		b := curve.CompressG1(p)
		out = append(out, b[:]...)
	}
	return out
}

func decodeProof(data []byte) (cs, pis []curve.G1, err error) {
	if len(data) < 1 {
		return nil, nil, fmt.Errorf("ledger: %w: empty proof", errcode.ErrKZGProof)
	}
	off := 0
	nC := int(data[off])
	off++
	cs = make([]curve.G1, nC)
	for i := 0; i < nC; i++ {
		if off+curve.CompressedG1Size > len(data) {
			return nil, nil, fmt.Errorf("ledger: %w: truncated commitments", errcode.ErrKZGProof)
		}
		p, derr := curve.DecompressG1(data[off : off+curve.CompressedG1Size])
		if derr != nil {
			return nil, nil, fmt.Errorf("ledger: %w: %v", errcode.ErrKZGProof, derr)
		}
		cs[i] = p
		off += curve.CompressedG1Size
	}
	if off >= len(data) {
		return nil, nil, fmt.Errorf("ledger: %w: missing proof count", errcode.ErrKZGProof)
	}
	nPi := int(data[off])
	off++
	pis = make([]curve.G1, nPi)
	for i := 0; i < nPi; i++ {
		if off+curve.CompressedG1Size > len(data) {
			return nil, nil, fmt.Errorf("ledger: %w: truncated proofs", errcode.ErrKZGProof)
		}
		p, derr := curve.DecompressG1(data[off : off+curve.CompressedG1Size])
		if derr != nil {
			return nil, nil, fmt.Errorf("ledger: %w: %v", errcode.ErrKZGProof, derr)
		}
		pis[i] = p
		off += curve.CompressedG1Size
	}
	return cs, pis, nil
}
