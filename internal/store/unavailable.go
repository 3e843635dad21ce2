package store

import (
	"context"
	"fmt"

	"certbook/internal/certs"
	cberrors "certbook/internal/errors"
	"certbook/internal/users"
)

// Unavailable is the store used when the database could not be opened at
// startup. The process keeps serving; every operation fails uniformly.
type Unavailable struct {
	reason error
}

// NewUnavailable wraps the startup failure so it surfaces on every operation.
func NewUnavailable(reason error) *Unavailable {
	return &Unavailable{reason: reason}
}

func (s *Unavailable) UserStore() UserStore               { return unavailableUsers{s} }
func (s *Unavailable) CertificateStore() CertificateStore { return unavailableCerts{s} }

func (s *Unavailable) CheckConnection(_ context.Context) error {
	return s.err()
}

func (s *Unavailable) Close() error {
	return nil
}

func (s *Unavailable) err() error {
	if s.reason != nil {
		return fmt.Errorf("%w: %v", cberrors.ErrStoreUnavailable, s.reason)
	}
	return cberrors.ErrStoreUnavailable
}

type unavailableUsers struct{ parent *Unavailable }

func (s unavailableUsers) Insert(_ context.Context, _ users.User) (string, error) {
	return "", s.parent.err()
}

func (s unavailableUsers) FindByEmail(_ context.Context, _ string) (*users.User, error) {
	return nil, s.parent.err()
}

type unavailableCerts struct{ parent *Unavailable }

func (s unavailableCerts) Insert(_ context.Context, _ certs.Certificate) (string, error) {
	return "", s.parent.err()
}

func (s unavailableCerts) List(_ context.Context) ([]certs.Certificate, error) {
	return nil, s.parent.err()
}

func (s unavailableCerts) Get(_ context.Context, _ string) (*certs.Certificate, error) {
	return nil, s.parent.err()
}

func (s unavailableCerts) Update(_ context.Context, _ string, _ certs.Certificate) error {
	return s.parent.err()
}

func (s unavailableCerts) Delete(_ context.Context, _ string) error {
	return s.parent.err()
}
