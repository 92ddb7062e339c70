// Package store persists perft results in a Badger database so repeated
// runs over the same positions skip recomputation. Keys combine the
// position FEN with the search depth; values are the node counts.
package store

import (
	"encoding/binary"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// Store is a durable perft result cache.
type Store struct {
	db *badger.DB
}

// Open opens or creates the database in dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open perft store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func resultKey(fen string, depth int) []byte {
	return []byte(fmt.Sprintf("perft|%d|%s", depth, fen))
}

// Get returns the stored node count for (fen, depth). The second return is
// false when no result has been stored yet.
func (s *Store) Get(fen string, depth int) (uint64, bool, error) {
	var nodes uint64
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(resultKey(fen, depth))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) != 8 {
				return fmt.Errorf("corrupt perft entry: %d bytes", len(val))
			}
			nodes = binary.BigEndian.Uint64(val)
			found = true
			return nil
		})
	})
	if err != nil {
		return 0, false, fmt.Errorf("load perft result: %w", err)
	}
	return nodes, found, nil
}

// Put stores the node count for (fen, depth), overwriting any prior value.
func (s *Store) Put(fen string, depth int, nodes uint64) error {
	var val [8]byte
	binary.BigEndian.PutUint64(val[:], nodes)
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(resultKey(fen, depth), val[:])
	})
	if err != nil {
		return fmt.Errorf("save perft result: %w", err)
	}
	return nil
}
