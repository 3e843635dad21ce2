package handlers

import (
	"net/http"

	"certbook/internal/logger"
	"certbook/middleware"
)

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	logger.HTTPEvent(r.Method, r.URL.Path, http.StatusOK, 0).
		Str("request_id", requestID).
		Msg("readiness check")
	w.WriteHeader(http.StatusOK)
}
