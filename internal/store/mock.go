package store

import (
	"context"

	"github.com/stretchr/testify/mock"

	"certbook/internal/certs"
	"certbook/internal/users"
)

// MockStore bundles the collection mocks behind the Store interface for
// handler tests.
type MockStore struct {
	Users         *MockUserStore
	Certificates  *MockCertificateStore
	ConnectionErr error
}

func NewMockStore() *MockStore {
	return &MockStore{Users: new(MockUserStore), Certificates: new(MockCertificateStore)}
}

func (m *MockStore) UserStore() UserStore               { return m.Users }
func (m *MockStore) CertificateStore() CertificateStore { return m.Certificates }

func (m *MockStore) CheckConnection(_ context.Context) error {
	return m.ConnectionErr
}

func (m *MockStore) Close() error {
	return nil
}

// MockUserStore is a testify mock implementing UserStore.
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Insert(ctx context.Context, user users.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (*users.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*users.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockCertificateStore is a testify mock implementing CertificateStore.
type MockCertificateStore struct {
	mock.Mock
}

func (m *MockCertificateStore) Insert(ctx context.Context, certificate certs.Certificate) (string, error) {
	args := m.Called(ctx, certificate)
	return args.String(0), args.Error(1)
}

func (m *MockCertificateStore) List(ctx context.Context) ([]certs.Certificate, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]certs.Certificate); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCertificateStore) Get(ctx context.Context, id string) (*certs.Certificate, error) {
	args := m.Called(ctx, id)
	if certificate, ok := args.Get(0).(*certs.Certificate); ok {
		return certificate, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCertificateStore) Update(ctx context.Context, id string, certificate certs.Certificate) error {
	args := m.Called(ctx, id, certificate)
	return args.Error(0)
}

func (m *MockCertificateStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
