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

// HashBytes is the width of a Hash: the engine's opaque key digest,
// value digest, and (viewed as 32 nibbles) trie index array.
const HashBytes = 32

// Hash is a 32-byte digest, reused across the engine both as an
// opaque value and as a path of one-byte nibbles.
type Hash [HashBytes]byte

// ZeroHash is the all-zero digest, used as the "slot empty" sentinel
// in both branch children and leaf value slots.
var ZeroHash Hash

// IsZero reports whether h is the all-zero hash.
func (h Hash) IsZero() bool {
	return h == ZeroHash
}

// DeriveHash returns Blake3(b).
func DeriveHash(b []byte) Hash {
	var out Hash
	sum := blake3.Sum256(b)
	copy(out[:], sum[:])
	return out
}

// DeriveKVHash returns Blake3(k || v), the digest bound into a leaf
// slot when a caller stores k/v as an opaque payload pair.
func DeriveKVHash(k, v []byte) Hash {
	h := blake3.New()
	h.Write(k)
	h.Write(v)
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// ValueStorageKey returns the external, hashed-key storage key for a
// user key: Blake3(user_key). The spec picks this form (rather than
// per-leaf NodeId-derived keys) for the payload-side store.
func ValueStorageKey(userKey []byte) Hash {
	return DeriveHash(userKey)
}

// HashToSK deserializes h as an Fr scalar, reducing modulo the field
// order if the raw bytes exceed it.
func HashToSK(h Hash) Scalar {
	return FromLEBytes(h[:])
}
