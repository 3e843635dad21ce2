// Package bbolt provides a bbolt-backed document store for the usuarios and
// certificados collections.
package bbolt

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"certbook/internal/certs"
	cberrors "certbook/internal/errors"
	"certbook/internal/store"
	"certbook/internal/users"
)

var (
	usersBucket = []byte("usuarios")
	certsBucket = []byte("certificados")
)

// Store implements store.Store backed by a single bbolt database file.
// Record ids are derived from the bucket sequence, so lexical key order is
// insertion order.
type Store struct {
	db *bbolt.DB
}

var _ store.Store = (*Store)(nil)

// Open opens (or creates) the database file and ensures both buckets exist.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening bbolt db: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		if _, bucketErr := tx.CreateBucketIfNotExists(usersBucket); bucketErr != nil {
			return bucketErr
		}
		_, bucketErr := tx.CreateBucketIfNotExists(certsBucket)
		return bucketErr
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing buckets: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) UserStore() store.UserStore               { return userStore{db: s.db} }
func (s *Store) CertificateStore() store.CertificateStore { return certStore{db: s.db} }

// CheckConnection verifies the database file is still readable.
func (s *Store) CheckConnection(_ context.Context) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(usersBucket) == nil || tx.Bucket(certsBucket) == nil {
			return cberrors.ErrStoreUnavailable
		}
		return nil
	})
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func nextID(b *bbolt.Bucket) (string, error) {
	seq, err := b.NextSequence()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", seq), nil
}

type userStore struct {
	db *bbolt.DB
}

func (s userStore) Insert(_ context.Context, user users.User) (string, error) {
	var id string
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(usersBucket)
		if b == nil {
			return cberrors.ErrStoreUnavailable
		}
		var idErr error
		id, idErr = nextID(b)
		if idErr != nil {
			return idErr
		}
		user.ID = id
		data, marshalErr := json.Marshal(user)
		if marshalErr != nil {
			return marshalErr
		}
		return b.Put([]byte(id), data)
	})
	if err != nil {
		return "", fmt.Errorf("inserting user: %w", err)
	}
	return id, nil
}

func (s userStore) FindByEmail(_ context.Context, email string) (*users.User, error) {
	var found *users.User
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(usersBucket)
		if b == nil {
			return cberrors.ErrStoreUnavailable
		}
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var user users.User
			if unmarshalErr := json.Unmarshal(v, &user); unmarshalErr != nil {
				return unmarshalErr
			}
			if user.Email == email {
				found = &user
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("finding user by email: %w", err)
	}
	return found, nil
}

type certStore struct {
	db *bbolt.DB
}

func (s certStore) Insert(_ context.Context, certificate certs.Certificate) (string, error) {
	var id string
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(certsBucket)
		if b == nil {
			return cberrors.ErrStoreUnavailable
		}
		var idErr error
		id, idErr = nextID(b)
		if idErr != nil {
			return idErr
		}
		certificate.ID = id
		data, marshalErr := json.Marshal(certificate)
		if marshalErr != nil {
			return marshalErr
		}
		return b.Put([]byte(id), data)
	})
	if err != nil {
		return "", fmt.Errorf("inserting certificate: %w", err)
	}
	return id, nil
}

func (s certStore) List(_ context.Context) ([]certs.Certificate, error) {
	certificates := []certs.Certificate{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(certsBucket)
		if b == nil {
			return cberrors.ErrStoreUnavailable
		}
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var certificate certs.Certificate
			if unmarshalErr := json.Unmarshal(v, &certificate); unmarshalErr != nil {
				return unmarshalErr
			}
			certificates = append(certificates, certificate)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing certificates: %w", err)
	}
	return certificates, nil
}

func (s certStore) Get(_ context.Context, id string) (*certs.Certificate, error) {
	var found *certs.Certificate
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(certsBucket)
		if b == nil {
			return cberrors.ErrStoreUnavailable
		}
		data := b.Get([]byte(id))
		if data == nil {
			return nil
		}
		var certificate certs.Certificate
		if unmarshalErr := json.Unmarshal(data, &certificate); unmarshalErr != nil {
			return unmarshalErr
		}
		found = &certificate
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("getting certificate: %w", err)
	}
	return found, nil
}

func (s certStore) Update(_ context.Context, id string, certificate certs.Certificate) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(certsBucket)
		if b == nil {
			return cberrors.ErrStoreUnavailable
		}
		data := b.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%s: %w", id, cberrors.ErrCertificateNotFound)
		}
		var existing certs.Certificate
		if unmarshalErr := json.Unmarshal(data, &existing); unmarshalErr != nil {
			return unmarshalErr
		}
		// The digest is fixed at creation; edits overwrite every other field.
		certificate.ID = existing.ID
		certificate.Digest = existing.Digest
		updated, marshalErr := json.Marshal(certificate)
		if marshalErr != nil {
			return marshalErr
		}
		return b.Put([]byte(id), updated)
	})
	if err != nil {
		return fmt.Errorf("updating certificate: %w", err)
	}
	return nil
}

func (s certStore) Delete(_ context.Context, id string) error {
	// No existence check: deleting an unknown id succeeds.
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(certsBucket)
		if b == nil {
			return cberrors.ErrStoreUnavailable
		}
		return b.Delete([]byte(id))
	})
	if err != nil {
		return fmt.Errorf("deleting certificate: %w", err)
	}
	return nil
}
