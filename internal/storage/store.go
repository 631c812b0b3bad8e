package storage

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Storage keys used by the repositories. Each key holds one JSON-encoded blob
// that is always read and written whole.
const (
	ProductsKey = "ssanjae-offline-products-v1"
	DraftKey    = "ssanjae-offline-order-draft-v1"
	OrdersKey   = "ssanjae-offline-orders-v1"
)

const bucketName = "storefront"

// Store is a file-backed key-value store. All storefront state lives in one
// bucket of one bbolt file, one JSON blob per key.
type Store struct {
	db *bolt.DB
}

func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("storage: failed to open %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: failed to create bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Get returns the blob stored under key, or nil if the key is absent.
func (s *Store) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketName)).Get([]byte(key))
		if v != nil {
			value = make([]byte, len(v))
			copy(value, v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage: failed to read key %s: %w", key, err)
	}
	return value, nil
}

// Put overwrites the blob stored under key.
func (s *Store) Put(key string, value []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("storage: failed to write key %s: %w", key, err)
	}
	return nil
}

// Delete removes the blob stored under key. Deleting an absent key is a no-op.
func (s *Store) Delete(key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("storage: failed to delete key %s: %w", key, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
