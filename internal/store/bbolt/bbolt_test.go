package bbolt

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"certbook/internal/certs"
	cberrors "certbook/internal/errors"
	"certbook/internal/users"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "certbook.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func testCertificate(domain string) certs.Certificate {
	return certs.Certificate{
		Company:    "Acme",
		Domain:     domain,
		IssueDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ExpiryDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Issuer:     "CA1",
		Algorithm:  certs.AlgorithmSHA256,
		Digest:     "abc123",
	}
}

func TestOpen_BadPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing", "nested", "certbook.db"))
	assert.Error(t, err)
}

func TestCheckConnection(t *testing.T) {
	st := openTestStore(t)
	assert.NoError(t, st.CheckConnection(context.Background()))
}

func TestUserStore_InsertAndFind(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	id, err := st.UserStore().Insert(ctx, users.User{
		FirstName:       "Ana",
		PaternalSurname: "Ruiz",
		MaternalSurname: "Diaz",
		BirthDate:       "1990-01-01",
		Email:           "ana@example.com",
		PasswordHash:    "$2a$10$hash",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	found, err := st.UserStore().FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, id, found.ID)
	assert.Equal(t, "Ana", found.FirstName)
	assert.Equal(t, "Ruiz", found.PaternalSurname)
	assert.Equal(t, "Diaz", found.MaternalSurname)
	assert.Equal(t, "1990-01-01", found.BirthDate)
	assert.Equal(t, "$2a$10$hash", found.PasswordHash)
}

func TestUserStore_FindByEmail_NoMatch(t *testing.T) {
	st := openTestStore(t)

	found, err := st.UserStore().FindByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestUserStore_DuplicateEmailsAccepted(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	firstID, err := st.UserStore().Insert(ctx, users.User{FirstName: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)
	secondID, err := st.UserStore().Insert(ctx, users.User{FirstName: "Otra", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.NotEqual(t, firstID, secondID)

	// Lookup returns the earliest registration.
	found, err := st.UserStore().FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Ana", found.FirstName)
}

func TestCertificateStore_InsertAndGet(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	certificate := testCertificate("acme.com")
	id, err := st.CertificateStore().Insert(ctx, certificate)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	got, err := st.CertificateStore().Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, certificate.Company, got.Company)
	assert.Equal(t, certificate.Domain, got.Domain)
	assert.True(t, certificate.IssueDate.Equal(got.IssueDate))
	assert.True(t, certificate.ExpiryDate.Equal(got.ExpiryDate))
	assert.Equal(t, certificate.Issuer, got.Issuer)
	assert.Equal(t, certificate.Algorithm, got.Algorithm)
	assert.Equal(t, certificate.Digest, got.Digest)
}

func TestCertificateStore_Get_Unknown(t *testing.T) {
	st := openTestStore(t)

	got, err := st.CertificateStore().Get(context.Background(), "ffffffffffffffff")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCertificateStore_List_InsertionOrder(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	domains := []string{"c.example", "a.example", "b.example"}
	for _, domain := range domains {
		_, err := st.CertificateStore().Insert(ctx, testCertificate(domain))
		require.NoError(t, err)
	}

	listed, err := st.CertificateStore().List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	for i, domain := range domains {
		assert.Equal(t, domain, listed[i].Domain)
	}
}

func TestCertificateStore_List_Empty(t *testing.T) {
	st := openTestStore(t)

	listed, err := st.CertificateStore().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestCertificateStore_Update_PreservesDigest(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	id, err := st.CertificateStore().Insert(ctx, testCertificate("acme.com"))
	require.NoError(t, err)

	updated := testCertificate("acme.org")
	updated.Issuer = "CA2"
	updated.Digest = "should-be-ignored"
	require.NoError(t, st.CertificateStore().Update(ctx, id, updated))

	got, err := st.CertificateStore().Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "acme.org", got.Domain)
	assert.Equal(t, "CA2", got.Issuer)
	// Edits never recompute the stored digest.
	assert.Equal(t, "abc123", got.Digest)
}

func TestCertificateStore_Update_Unknown(t *testing.T) {
	st := openTestStore(t)

	err := st.CertificateStore().Update(context.Background(), "ffffffffffffffff", testCertificate("acme.com"))
	assert.True(t, errors.Is(err, cberrors.ErrCertificateNotFound))
}

func TestCertificateStore_Delete(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	id, err := st.CertificateStore().Insert(ctx, testCertificate("acme.com"))
	require.NoError(t, err)

	require.NoError(t, st.CertificateStore().Delete(ctx, id))

	got, err := st.CertificateStore().Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCertificateStore_Delete_UnknownSucceeds(t *testing.T) {
	st := openTestStore(t)

	assert.NoError(t, st.CertificateStore().Delete(context.Background(), "ffffffffffffffff"))
}
