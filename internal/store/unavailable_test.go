package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"certbook/internal/certs"
	cberrors "certbook/internal/errors"
	"certbook/internal/users"
)

func TestUnavailable_AllOperationsFail(t *testing.T) {
	st := NewUnavailable(errors.New("open certbook.db: permission denied"))
	ctx := context.Background()

	err := st.CheckConnection(ctx)
	assert.True(t, errors.Is(err, cberrors.ErrStoreUnavailable))
	assert.Contains(t, err.Error(), "permission denied")

	_, err = st.UserStore().Insert(ctx, users.User{})
	assert.True(t, errors.Is(err, cberrors.ErrStoreUnavailable))

	_, err = st.UserStore().FindByEmail(ctx, "ana@example.com")
	assert.True(t, errors.Is(err, cberrors.ErrStoreUnavailable))

	_, err = st.CertificateStore().Insert(ctx, certs.Certificate{})
	assert.True(t, errors.Is(err, cberrors.ErrStoreUnavailable))

	_, err = st.CertificateStore().List(ctx)
	assert.True(t, errors.Is(err, cberrors.ErrStoreUnavailable))

	_, err = st.CertificateStore().Get(ctx, "1")
	assert.True(t, errors.Is(err, cberrors.ErrStoreUnavailable))

	err = st.CertificateStore().Update(ctx, "1", certs.Certificate{})
	assert.True(t, errors.Is(err, cberrors.ErrStoreUnavailable))

	err = st.CertificateStore().Delete(ctx, "1")
	assert.True(t, errors.Is(err, cberrors.ErrStoreUnavailable))
}

func TestUnavailable_NilReason(t *testing.T) {
	st := NewUnavailable(nil)
	assert.True(t, errors.Is(st.CheckConnection(context.Background()), cberrors.ErrStoreUnavailable))
	assert.NoError(t, st.Close())
}
