package relay

import (
	"time"

	"github.com/dgraph-io/badger/v4"
)

const stashKeyPrefix = "relay:"

// BadgerStash is the longer-lived fallback channel. Entries survive a server
// restart but still carry a TTL so abandoned hand-offs do not accumulate.
type BadgerStash struct {
	db  *badger.DB
	ttl time.Duration
}

// OpenBadgerStash opens (or creates) a Badger database at dir.
func OpenBadgerStash(dir string, ttl time.Duration) (*BadgerStash, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerStash{db: db, ttl: ttl}, nil
}

func (s *BadgerStash) Put(key, value string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(stashKeyPrefix+key), []byte(value)).WithTTL(s.ttl)
		return txn.SetEntry(e)
	})
}

func (s *BadgerStash) Get(key string) (string, bool, error) {
	var value string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(stashKeyPrefix + key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			value = string(val)
			return nil
		})
	})
	if err == badger.ErrKeyNotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *BadgerStash) Delete(key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(stashKeyPrefix + key))
	})
}

// Close releases the underlying database.
func (s *BadgerStash) Close() error {
	return s.db.Close()
}
