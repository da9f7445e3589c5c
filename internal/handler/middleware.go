package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/vitayushchyk/data-factory-test-task/internal/logger"
)

// RequestIDContext copies the request id minted by chi's RequestID middleware
// into the logger context, so logger.FromContext enriches every log line of
// the request with it. Must be mounted after middleware.RequestID.
func RequestIDContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reqID := middleware.GetReqID(r.Context()); reqID != "" {
			r = r.WithContext(logger.WithRequestID(r.Context(), reqID))
		}
		next.ServeHTTP(w, r)
	})
}
