package middleware

import "net/http"

// MaxBody caps the readable request body at limit bytes. Handlers decoding
// an oversized body receive the standard http.MaxBytesError.
func MaxBody(limit int64) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
