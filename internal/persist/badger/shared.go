// SPDX-License-Identifier: MIT

package badger

import (
	"bytes"

	"github.com/dgraph-io/badger/v3"
	"github.com/ccjeff/chogori-platform/internal/persist"
)

// Shared is a persist.Saver over a byte-prefixed slice of a badger.DB
// shared with other buckets, so a single node process can keep its
// catalog, partition-ownership, and oracle-checkpoint state in one
// database file without their keyspaces colliding.
type Shared struct {
	db     *badger.DB
	prefix []byte
}

var _ persist.Saver = (*Shared)(nil)

// NewShared returns a Saver addressing only keys under prefix within db.
// Closing it is a no-op: the caller owns db's lifetime.
func NewShared(db *badger.DB, prefix []byte) (*Shared, error) {
	p := make([]byte, len(prefix))
	copy(p, prefix)
	return &Shared{db: db, prefix: p}, nil
}

func (s *Shared) fullKey(key persist.Key) []byte {
	return append(append([]byte{}, s.prefix...), key...)
}

func (s *Shared) Put(key persist.Key, data []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.fullKey(key), data)
	})
}

func (s *Shared) Get(key persist.Key) ([]byte, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		it, err := txn.Get(s.fullKey(key))
		if err != nil {
			return err
		}
		data, err = it.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, persist.ErrNotFound
	}
	if len(data) == 0 {
		return nil, persist.ErrNotFound
	}
	return data, nil
}

func (s *Shared) List() ([]persist.Key, error) {
	var keys []persist.Key
	err := s.db.View(func(txn *badger.Txn) error {
		iter := txn.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(s.prefix); iter.ValidForPrefix(s.prefix); iter.Next() {
			k := iter.Item().Key()
			keys = append(keys, persist.Key(bytes.TrimPrefix(k, s.prefix)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func (s *Shared) Delete(key persist.Key) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(s.fullKey(key))
	})
}

// Close is a no-op: Shared does not own the underlying database.
func (s *Shared) Close() error { return nil }
