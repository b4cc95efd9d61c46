package store

import (
	"context"
	"encoding/binary"

	"github.com/dgraph-io/badger/v2"

	"github.com/anthropics/gobbletsolve/engine"
)

// key prefixes separate the position namespace from the metadata
// namespace within a single badger database.
const (
	posPrefix  = 'p'
	metaPrefix = 'm'
)

// BadgerStore is a CheckpointStore backed by an embedded badger/v2
// database: durable, crash-safe, and batched through badger's own
// WriteBatch for atomic multi-entry commits.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (creating if absent) a badger database at dir.
func OpenBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerStore{db: db}, nil
}

func posKey(key uint64) []byte {
	b := make([]byte, 9)
	b[0] = posPrefix
	binary.BigEndian.PutUint64(b[1:], key)
	return b
}

func metaKey(name string) []byte {
	b := make([]byte, 1+len(name))
	b[0] = metaPrefix
	copy(b[1:], name)
	return b
}

func encodeOutcome(o engine.Outcome) []byte {
	return []byte{byte(int8(o))}
}

func decodeOutcome(v []byte) engine.Outcome {
	return engine.Outcome(int8(v[0]))
}

// Put writes a single entry in its own transaction.
func (s *BadgerStore) Put(ctx context.Context, e Entry) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(posKey(e.Key), encodeOutcome(e.Outcome))
	})
}

// PutMany writes every entry atomically via a badger WriteBatch: the
// batch either commits in full or not at all, so a checkpoint can
// never persist a partially-written frontier.
func (s *BadgerStore) PutMany(ctx context.Context, entries []Entry) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for _, e := range entries {
		if err := wb.Set(posKey(e.Key), encodeOutcome(e.Outcome)); err != nil {
			return err
		}
	}
	return wb.Flush()
}

// PutMeta writes one metadata key/value pair.
func (s *BadgerStore) PutMeta(ctx context.Context, key string, value []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(metaKey(key), value)
	})
}

// ScanAll iterates every position entry under the position prefix.
func (s *BadgerStore) ScanAll(ctx context.Context, fn func(Entry) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte{posPrefix}
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			k := item.Key()
			key := binary.BigEndian.Uint64(k[1:])
			var entry Entry
			err := item.Value(func(v []byte) error {
				entry = Entry{Key: key, Outcome: decodeOutcome(v)}
				return nil
			})
			if err != nil {
				return err
			}
			if err := fn(entry); err != nil {
				return err
			}
		}
		return nil
	})
}

// ScanMeta iterates every metadata key/value pair.
func (s *BadgerStore) ScanMeta(ctx context.Context, fn func(string, []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte{metaPrefix}
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			name := string(item.Key()[1:])
			var value []byte
			err := item.Value(func(v []byte) error {
				value = append([]byte(nil), v...)
				return nil
			})
			if err != nil {
				return err
			}
			if err := fn(name, value); err != nil {
				return err
			}
		}
		return nil
	})
}

// Clear drops every position entry and metadata key.
func (s *BadgerStore) Clear(ctx context.Context) error {
	return s.db.DropAll()
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
