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

// Package blockproc implements the block processor (C13): the
// parallel finalize/justify/prune walks over a block's root overlay,
// and existence-proof generation/validation across the composed
// branch/leaf polynomials. Parallelism here mirrors the teacher's use
// of golang.org/x/sync/errgroup for batched work, generalized from a
// single fixed fan-out to the spec's four-way root finalize split and
// its per-Fx proof generation fan-out.
package blockproc

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/bulletdb/bulletdb/curve"
	"github.com/bulletdb/bulletdb/errcode"
	"github.com/bulletdb/bulletdb/field"
	"github.com/bulletdb/bulletdb/kzg"
	"github.com/bulletdb/bulletdb/nodeid"
	"github.com/bulletdb/bulletdb/ntt"
	"github.com/bulletdb/bulletdb/polynomial"
	"github.com/bulletdb/bulletdb/trienode"
)

// batches is BATCHES from §4.14: the root's 256-wide child range is
// split into four equal, disjoint partitions finalized concurrently.
const batches = 4

func loadRootBranch(store trienode.Store, rootID nodeid.ID) (*trienode.Branch, error) {
	n, err := store.Load(rootID)
	if err != nil {
		return nil, fmt.Errorf("blockproc: loading root: %w: %w", errcode.ErrRoot, err)
	}
	root, ok := n.(*trienode.Branch)
	if !ok {
		return nil, errcode.ErrRoot
	}
	return root, nil
}

// FinalizeBlock computes and persists the root commitment for
// blockID, returning the 32-byte block root hash:
// hash_p1_to_scalar(root_commit, tag).
func FinalizeBlock(store trienode.Store, settings *kzg.Settings, shardPath field.Hash, rootID nodeid.ID, blockID uint16) (field.Hash, error) {
	root, err := loadRootBranch(store, rootID)
	if err != nil {
		return field.Hash{}, err
	}

	fx := make([]field.Scalar, trienode.BranchOrder)
	batchSize := trienode.BranchOrder / batches

	g, _ := errgroup.WithContext(context.Background())
	for i := 0; i < batches; i++ {
		start := i * batchSize
		end := start + batchSize
		g.Go(func() error {
			return root.Finalize(store, settings, shardPath, blockID, nil, start, end, fx)
		})
	}
	if err := g.Wait(); err != nil {
		return field.Hash{}, err
	}

	coeffs := make(polynomial.Polynomial, len(fx))
	copy(coeffs, fx)
	ntt.InverseFFTInPlace(coeffs, settings.Roots)
	commit := settings.SRS.CommitG1(coeffs)
	root.SetCommitment(commit)

	if err := store.Cache(root); err != nil {
		return field.Hash{}, err
	}

	sk := curve.HashG1ToScalar(commit, settings.Tag)
	skBytes := field.ToBytes(sk)
	var out field.Hash
	copy(out[:], skBytes[:])
	return out, nil
}
