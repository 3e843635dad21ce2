// Package store defines the persistence abstraction over the usuarios and
// certificados collections. Implementations are constructed once at process
// start and injected into the web layer.
package store

import (
	"context"

	"certbook/internal/certs"
	"certbook/internal/users"
)

// UserStore persists registered accounts.
type UserStore interface {
	Insert(ctx context.Context, user users.User) (string, error)
	// FindByEmail returns the first user registered under the given email, or
	// nil when no account matches. Duplicate registrations are possible; lookup
	// order follows insertion order.
	FindByEmail(ctx context.Context, email string) (*users.User, error)
}

// CertificateStore persists certificate records keyed by store-generated ids.
type CertificateStore interface {
	Insert(ctx context.Context, certificate certs.Certificate) (string, error)
	// List returns all records in insertion order.
	List(ctx context.Context) ([]certs.Certificate, error)
	// Get returns nil when the id does not resolve.
	Get(ctx context.Context, id string) (*certs.Certificate, error)
	// Update overwrites every field except ID and Digest. Updating an unknown
	// id returns ErrCertificateNotFound.
	Update(ctx context.Context, id string, certificate certs.Certificate) error
	// Delete removes a record. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error
}

// Store bundles both collections behind one handle.
type Store interface {
	UserStore() UserStore
	CertificateStore() CertificateStore
	CheckConnection(ctx context.Context) error
	Close() error
}
