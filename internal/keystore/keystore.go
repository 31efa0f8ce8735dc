// Package keystore persists identity private keys and per-counterparty
// session keys in a local bbolt database, one bucket per scope. Values are
// stored base64-encoded. Storage is local to the device profile; nothing is
// synchronized anywhere.
package keystore

import (
	"fmt"
	"path/filepath"

	bolt "go.etcd.io/bbolt"

	"github.com/roudra323/Chitchat-DApp-Project/internal/domain"
	"github.com/roudra323/Chitchat-DApp-Project/internal/keycodec"
)

const dbFile = "keys.db"

// Store is a bbolt-backed domain.KeyStore.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if needed) the key database under dir.
func Open(dir string) (*Store, error) {
	db, err := bolt.Open(filepath.Join(dir, dbFile), 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("keystore: open: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Save(scope, id string, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists([]byte(scope))
		if err != nil {
			return err
		}
		return bkt.Put([]byte(id), []byte(keycodec.BytesToBase64(value)))
	})
}

func (s *Store) Load(scope, id string) ([]byte, bool, error) {
	var encoded []byte
	if err := s.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(scope))
		if bkt == nil {
			return nil
		}
		if v := bkt.Get([]byte(id)); v != nil {
			encoded = append([]byte(nil), v...)
		}
		return nil
	}); err != nil {
		return nil, false, err
	}
	if encoded == nil {
		return nil, false, nil
	}
	value, err := keycodec.Base64ToBytes(string(encoded))
	if err != nil {
		return nil, false, fmt.Errorf("keystore: corrupt entry %s/%s: %w", scope, id, err)
	}
	return value, true, nil
}

func (s *Store) Has(scope, id string) (bool, error) {
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(scope))
		found = bkt != nil && bkt.Get([]byte(id)) != nil
		return nil
	})
	return found, err
}

func (s *Store) Clear(scope, id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(scope))
		if bkt == nil {
			return nil
		}
		return bkt.Delete([]byte(id))
	})
}

// ClearAll removes the account's private key and every cached session key.
// Used on logout.
func (s *Store) ClearAll(account domain.Address) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if bkt := tx.Bucket([]byte(domain.ScopeIdentityPrivate)); bkt != nil {
			if err := bkt.Delete([]byte(account)); err != nil {
				return err
			}
		}
		if tx.Bucket([]byte(domain.ScopeSessionKey)) != nil {
			if err := tx.DeleteBucket([]byte(domain.ScopeSessionKey)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) Close() error { return s.db.Close() }

var _ domain.KeyStore = (*Store)(nil)
