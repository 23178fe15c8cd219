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

package srs

import (
	"fmt"

	"github.com/bulletdb/bulletdb/curve"
	"github.com/bulletdb/bulletdb/errcode"
)

// BranchOrder is the fixed degree+1 the spec ties the SRS size to: a
// branch polynomial has BRANCH_ORDER coefficients, so its commitment
// needs exactly that many G1 powers, plus two G2 powers for
// verification.
const BranchOrder = 256

// ExportedSize is the exact byte length of an exported/imported SRS:
// BRANCH_ORDER compressed G1 points followed by BRANCH_ORDER
// compressed G2 points.
const ExportedSize = BranchOrder*curve.CompressedG1Size + BranchOrder*curve.CompressedG2Size

// Export serializes s as BRANCH_ORDER compressed G1 points followed
// by BRANCH_ORDER compressed G2 points. Only the first two G2 powers
// are ever populated (verification needs no more); the remaining
// BRANCH_ORDER-2 G2 slots are exported as the G2 generator so a
// pregenerated setup file always has the exact expected byte layout.
func (s *SRS) Export() []byte {
	out := make([]byte, 0, ExportedSize)
	for i := 0; i < BranchOrder; i++ {
		c := curve.CompressG1(s.G1Powers[i])
		out = append(out, c[:]...)
	}
	g2 := curve.GeneratorG2()
	for i := 0; i < BranchOrder; i++ {
		var p curve.G2
		if i < len(s.G2Powers) {
			p = s.G2Powers[i]
		} else {
			p = g2 // placeholder; unused by verification
		}
		c := curve.CompressG2(p)
		out = append(out, c[:]...)
	}
	return out
}

// Import parses a pregenerated SRS in the wire layout Export
// produces. Size mismatches return ErrInvalidSetupSize exactly, as
// the spec requires.
func Import(data []byte) (*SRS, error) {
	if len(data) != ExportedSize {
		return nil, errcode.ErrInvalidSetupSize
	}
	g1Powers := make([]curve.G1, BranchOrder)
	off := 0
	for i := 0; i < BranchOrder; i++ {
		p, err := curve.DecompressG1(data[off : off+curve.CompressedG1Size])
		if err != nil {
			return nil, fmt.Errorf("srs: decompressing g1[%d]: %w", i, err)
		}
		g1Powers[i] = p
		off += curve.CompressedG1Size
	}
	g2Powers := make([]curve.G2, 2)
	for i := 0; i < 2; i++ {
		p, err := curve.DecompressG2(data[off : off+curve.CompressedG2Size])
		if err != nil {
			return nil, fmt.Errorf("srs: decompressing g2[%d]: %w", i, err)
		}
		g2Powers[i] = p
		off += curve.CompressedG2Size
	}
	return &SRS{G1Powers: g1Powers, G2Powers: g2Powers}, nil
}
