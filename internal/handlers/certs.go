package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"certbook/internal/certs"
	"certbook/internal/logger"
	"certbook/internal/store"
	"certbook/middleware"
)

// RegisterCertRoutes exposes the certificate inventory as JSON, with the same
// transient expired flag the management view computes.
func RegisterCertRoutes(r chi.Router, certificateStore store.CertificateStore) {
	r.Get("/api/certs", func(w http.ResponseWriter, req *http.Request) {
		certificates, err := certificateStore.List(req.Context())
		if err != nil {
			requestID := middleware.GetRequestID(req.Context())
			logger.HTTPError(req.Method, req.URL.Path, http.StatusInternalServerError, err).
				Str("request_id", requestID).
				Msg("failed to list certificates")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		views := certs.AnnotateAll(certificates, time.Now())
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(views); err != nil {
			requestID := middleware.GetRequestID(req.Context())
			logger.HTTPError(req.Method, req.URL.Path, http.StatusInternalServerError, err).
				Str("request_id", requestID).
				Msg("failed to encode certificates response")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	})
}
