package middleware

import (
	"net/http"

	apperrors "reservations/pkg/errors"
	httputil "reservations/pkg/http"
)

// MaxRequestSize caps request bodies at limit bytes. Requests announcing a
// larger Content-Length are refused up front; others fail while decoding.
func MaxRequestSize(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				_ = httputil.WriteError(w, apperrors.PayloadTooLarge(limit))
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
