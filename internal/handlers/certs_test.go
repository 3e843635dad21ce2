package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"certbook/internal/certs"
	"certbook/internal/handlers"
	"certbook/internal/store"
)

func TestCertsAPI_List(t *testing.T) {
	mockCerts := new(store.MockCertificateStore)
	mockCerts.On("List", mock.Anything).Return([]certs.Certificate{
		{
			ID:         "1",
			Company:    "Acme",
			Domain:     "old.example",
			ExpiryDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			Digest:     "abc123",
		},
		{
			ID:         "2",
			Domain:     "new.example",
			ExpiryDate: time.Date(2999, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}, nil)

	router := chi.NewRouter()
	handlers.RegisterCertRoutes(router, mockCerts)

	req := httptest.NewRequest(http.MethodGet, "/api/certs", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var views []certs.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 2)
	assert.Equal(t, "old.example", views[0].Domain)
	assert.True(t, views[0].Expired)
	assert.Equal(t, "abc123", views[0].Digest)
	assert.False(t, views[1].Expired)
	mockCerts.AssertExpectations(t)
}

func TestCertsAPI_Empty(t *testing.T) {
	mockCerts := new(store.MockCertificateStore)
	mockCerts.On("List", mock.Anything).Return([]certs.Certificate{}, nil)

	router := chi.NewRouter()
	handlers.RegisterCertRoutes(router, mockCerts)

	req := httptest.NewRequest(http.MethodGet, "/api/certs", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestCertsAPI_StoreError(t *testing.T) {
	mockCerts := new(store.MockCertificateStore)
	mockCerts.On("List", mock.Anything).Return(nil, errors.New("boom"))

	router := chi.NewRouter()
	handlers.RegisterCertRoutes(router, mockCerts)

	req := httptest.NewRequest(http.MethodGet, "/api/certs", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
