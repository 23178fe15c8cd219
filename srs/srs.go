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

// Package srs builds and (de)serializes the structured reference
// string, the way the teacher's generateSetup (verkle.go) and
// GetKZGConfig (config.go) do, but as an explicit, disposable value
// rather than a process-lifetime singleton: the toxic waste scalar s
// must not survive past construction, so SRS is built once by New or
// Import and handed to the ledger, never regenerated from a stored s.
package srs

import (
	"crypto/rand"
	"fmt"

	"github.com/bulletdb/bulletdb/curve"
	"github.com/bulletdb/bulletdb/field"
)

// SRS is the structured reference string: {g1·s^i} for i in
// [0, degree], and the two g2 powers verification needs.
type SRS struct {
	G1Powers []curve.G1 // len = degree+1
	G2Powers []curve.G2 // len = 2: g2·s^0, g2·s^1
}

// New generates a fresh SRS of the given degree from secret (an
// operator-supplied seed, reduced into Fr) or, if secret is empty,
// from OS randomness. s itself is zeroed before returning; only the
// derived public powers are kept.
func New(degree int, secret []byte) (*SRS, error) {
	var s field.Scalar
	if len(secret) == 0 {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("srs: reading randomness: %w", err)
		}
		s = field.FromLEBytes(buf)
		defer wipe(buf)
	} else {
		s = field.FromLEBytes(secret)
		defer wipe(secret)
	}
	defer func() { s.SetZero() }()

	g1 := curve.GeneratorG1()
	g2 := curve.GeneratorG2()

	g1Powers := make([]curve.G1, degree+1)
	g2Powers := make([]curve.G2, 2)

	sPow := field.OneSK
	for i := 0; i <= degree; i++ {
		g1Powers[i] = curve.ScalarMulG1(g1, sPow)
		if i == 1 {
			g2Powers[1] = curve.ScalarMulG2(g2, sPow)
		}
		sPow = field.Mul(sPow, s)
	}
	g2Powers[0] = g2

	return &SRS{G1Powers: g1Powers, G2Powers: g2Powers}, nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// CommitG1 returns Σ G1Powers[i]·coeffs[i].
func (s *SRS) CommitG1(coeffs []field.Scalar) curve.G1 {
	var acc curve.G1
	first := true
	for i, c := range coeffs {
		if field.IsZero(c) {
			continue
		}
		term := curve.ScalarMulG1(s.G1Powers[i], c)
		if first {
			acc = term
			first = false
			continue
		}
		acc = curve.AddG1(acc, term)
	}
	return acc
}

// CommitG2 returns Σ G2Powers[i]·coeffs[i], used only for the
// verification-side pair of powers (i in {0,1}).
func (s *SRS) CommitG2(coeffs []field.Scalar) curve.G2 {
	var acc curve.G2
	first := true
	for i, c := range coeffs {
		if i >= len(s.G2Powers) || field.IsZero(c) {
			continue
		}
		term := curve.ScalarMulG2(s.G2Powers[i], c)
		if first {
			acc = term
			first = false
			continue
		}
		acc = curve.AddG2(acc, term)
	}
	return acc
}
