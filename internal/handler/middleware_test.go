package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"

	"github.com/vitayushchyk/data-factory-test-task/internal/logger"
)

func TestRequestIDContext(t *testing.T) {
	t.Parallel()

	var captured string
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestIDContext)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		captured = logger.RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, captured)
}

func TestRequestIDContext_NoRequestID(t *testing.T) {
	t.Parallel()

	// Without the chi RequestID middleware upstream there is nothing to copy.
	var captured string
	h := RequestIDContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = logger.RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, captured)
}
