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

package blockproc

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/bulletdb/bulletdb/curve"
	"github.com/bulletdb/bulletdb/errcode"
	"github.com/bulletdb/bulletdb/field"
	"github.com/bulletdb/bulletdb/kzg"
	"github.com/bulletdb/bulletdb/nodeid"
	"github.com/bulletdb/bulletdb/polynomial"
	"github.com/bulletdb/bulletdb/trienode"
)

// GenerateProof walks the trie for key, collecting the leaf-to-root
// chain of polynomials and commitments, then opens each at the
// appropriate evaluation index — two openings of the innermost
// (leaf) polynomial, one opening per branch level above it — in
// parallel, one task per polynomial.
func GenerateProof(store trienode.Store, settings *kzg.Settings, rootID nodeid.ID, key field.Hash) ([]curve.G1, []curve.Proof, error) {
	root, err := loadRootBranch(store, rootID)
	if err != nil {
		return nil, nil, err
	}

	var fxs []polynomial.Polynomial
	var cs []curve.G1
	var splitMap uint32
	if err := root.GenerateProof(store, key, &fxs, &cs, &splitMap); err != nil {
		return nil, nil, err
	}

	n := len(fxs)
	pis := make([]curve.Proof, n+1)

	g, _ := errgroup.WithContext(context.Background())
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if i == 0 {
				return prove0(settings, fxs[0], key, pis)
			}
			idx := key[(n-1)-i]
			p, err := kzg.Prove(settings, fxs[i], int(idx))
			if err != nil {
				return err
			}
			pis[i+1] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, errcode.ErrKZGProof
	}
	return cs, pis, nil
}

func prove0(settings *kzg.Settings, fx polynomial.Polynomial, key field.Hash, pis []curve.Proof) error {
	p0, err := kzg.Prove(settings, fx, 0)
	if err != nil {
		return err
	}
	p1, err := kzg.Prove(settings, fx, int(key[field.HashBytes-1]))
	if err != nil {
		return err
	}
	pis[0] = p0
	pis[1] = p1
	return nil
}

// ValidateProof reconstructs the z/y challenge pairs for a claimed
// (key, val_hash) pair and batch-verifies the supplied (Cs, Pis)
// against them.
func ValidateProof(settings *kzg.Settings, key, valHash field.Hash, cs []curve.G1, pis []curve.Proof) bool {
	n := len(cs)
	if len(pis) != n+1 || n == 0 {
		return false
	}

	zs := make([]field.Scalar, n+1)
	ys := make([]field.Scalar, n+1)
	csFull := make([]curve.G1, n+1)

	zs[0] = settings.Roots.Forward[0]
	keyZeroed := key
	keyZeroed[field.HashBytes-1] = 0
	ys[0] = field.HashToSK(keyZeroed)
	csFull[0] = cs[0]

	zs[1] = settings.Roots.Forward[key[field.HashBytes-1]]
	ys[1] = field.HashToSK(valHash)
	csFull[1] = cs[0]

	for k := 2; k <= n; k++ {
		i := k - 1
		zs[k] = settings.Roots.Forward[key[(n-1)-i]]
		ys[k] = curve.HashG1ToScalar(csFull[k-1], settings.Tag)
		csFull[k] = cs[k-1]
	}

	baseR := field.DeriveHash(settings.Tag)
	return kzg.BatchVerify(settings, pis, csFull, zs, ys, baseR[:])
}
