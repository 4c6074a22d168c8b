// Package dupcheck is a small BoltDB-backed replay guard for form
// submissions. The input form can fire the same POST twice (double click,
// flaky connection retry); when the client sends an Idempotency-Key header
// the first response is stored under that key and replayed for any repeat,
// so no duplicate visit row is ever inserted.
package dupcheck

import (
	"time"

	bolt "github.com/boltdb/bolt"
)

const bucketName = "submissions"

// Store wraps a BoltDB file holding one bucket of key -> first-response
// pairs.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the database file and ensures the bucket exists.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database file lock.
func (s *Store) Close() error {
	return s.db.Close()
}

// Seen returns the response previously stored for key, if any.
func (s *Store) Seen(key string) ([]byte, bool, error) {
	var stored []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(bucketName)).Get([]byte(key)); v != nil {
			stored = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return stored, stored != nil, nil
}

// Remember stores response under key unless a response is already present.
// It returns the value now stored for the key and whether this call wrote
// it: (response, true) on first use, (original, false) on a replay that
// raced the first write.
func (s *Store) Remember(key string, response []byte) ([]byte, bool, error) {
	var stored []byte
	wrote := false
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if v := b.Get([]byte(key)); v != nil {
			stored = append([]byte(nil), v...)
			return nil
		}
		stored = response
		wrote = true
		return b.Put([]byte(key), response)
	})
	if err != nil {
		return nil, false, err
	}
	return stored, wrote, nil
}
