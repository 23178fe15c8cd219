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
	"errors"

	"github.com/bulletdb/bulletdb/errcode"
	"github.com/bulletdb/bulletdb/nodeid"
	"github.com/bulletdb/bulletdb/trienode"
)

// PruneBlock discards blockID's root overlay and everything it
// touched. A missing root is not an error: there is nothing to
// discard.
func PruneBlock(store trienode.Store, rootID nodeid.ID, blockID uint16) error {
	root, err := loadRootBranch(store, rootID)
	if errors.Is(err, errcode.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return root.Prune(store, blockID)
}

// JustifyBlock promotes blockID's root overlay into canonical state.
// A DELETED result (the justified tree ended up empty) is mapped
// back to success at this boundary, matching every other Ledger-
// facing operation's DELETED-to-OK convention.
func JustifyBlock(store trienode.Store, rootID nodeid.ID, blockID uint16) error {
	root, err := loadRootBranch(store, rootID)
	if err != nil {
		return err
	}
	err = root.Justify(store)
	if err == errcode.ErrDeleted {
		return nil
	}
	return err
}
