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

// Package bulletstore is the thin ordered-map façade over the
// embedded persistent key-value store (C9): transactional
// put/get/del/exists over byte keys and byte values, the way the
// teacher's storage layer treats its backing database as an opaque
// collaborator rather than something the trie logic reasons about
// directly. Built on go.etcd.io/bbolt, a single-writer/multi-reader
// embedded B+tree, matching the spec's BulletDB contract exactly.
package bulletstore

import (
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/bulletdb/bulletdb/errcode"
)

var (
	nodesBucket  = []byte("nodes")
	valuesBucket = []byte("values")
)

// Store wraps a single bbolt database file holding two buckets: trie
// nodes keyed by NodeId bytes, and opaque values keyed by
// Blake3(user_key).
type Store struct {
	db *bbolt.DB
}

// Open creates or opens the database file at path, sized with
// mapSize as an initial capacity hint, and ensures both buckets
// exist.
func Open(path string, mapSize int) (*Store, error) {
	opts := &bbolt.Options{InitialMmapSize: mapSize}
	db, err := bbolt.Open(path, 0600, opts)
	if err != nil {
		return nil, fmt.Errorf("bulletstore: open: %w", errcode.ErrDB)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(nodesBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(valuesBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("bulletstore: init buckets: %w", errcode.ErrDB)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying file handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// PutNode writes raw node bytes under key, inside its own write txn.
func (s *Store) PutNode(key, value []byte) error {
	return s.put(nodesBucket, key, value)
}

// GetNode reads node bytes for key inside a read txn, copying out of
// the txn-owned page before returning (bbolt's value slices are only
// valid for the lifetime of the transaction).
func (s *Store) GetNode(key []byte) ([]byte, error) {
	return s.get(nodesBucket, key)
}

// DelNode removes key from the node bucket; absence is not an error.
func (s *Store) DelNode(key []byte) error {
	return s.del(nodesBucket, key)
}

// ExistsNode reports whether key is present in the node bucket.
func (s *Store) ExistsNode(key []byte) (bool, error) {
	return s.exists(nodesBucket, key)
}

// PutValue, GetValue, DelValue, ExistsValue are the same four
// operations against the payload-side bucket.
func (s *Store) PutValue(key, value []byte) error {
	return s.put(valuesBucket, key, value)
}

func (s *Store) GetValue(key []byte) ([]byte, error) {
	return s.get(valuesBucket, key)
}

func (s *Store) DelValue(key []byte) error {
	return s.del(valuesBucket, key)
}

func (s *Store) ExistsValue(key []byte) (bool, error) {
	return s.exists(valuesBucket, key)
}

func (s *Store) put(bucket, key, value []byte) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucket).Put(key, value)
	})
	if err != nil {
		return fmt.Errorf("bulletstore: put: %w", errcode.ErrDB)
	}
	return nil
}

func (s *Store) get(bucket, key []byte) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucket).Get(key)
		if v == nil {
			return errcode.ErrNotExist
		}
		out = make([]byte, len(v))
		copy(out, v)
		return nil
	})
	if err == errcode.ErrNotExist {
		return nil, errcode.ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("bulletstore: get: %w", errcode.ErrDB)
	}
	return out, nil
}

func (s *Store) del(bucket, key []byte) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucket).Delete(key)
	})
	if err != nil {
		return fmt.Errorf("bulletstore: del: %w", errcode.ErrDB)
	}
	return nil
}

func (s *Store) exists(bucket, key []byte) (bool, error) {
	found := false
	err := s.db.View(func(tx *bbolt.Tx) error {
		found = tx.Bucket(bucket).Get(key) != nil
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("bulletstore: exists: %w", errcode.ErrDB)
	}
	return found, nil
}
