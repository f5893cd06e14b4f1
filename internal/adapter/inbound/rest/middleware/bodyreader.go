package middleware

import (
	"bytes"
	"io"
	"net/http"
)

// maxBodyBytes caps request bodies; manifests are the largest payload and
// stay well under this.
const maxBodyBytes = 10 << 20

// BodyReader reads and buffers the request body so downstream handlers can
// decode it without worrying about partial reads.
func BodyReader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body == nil {
			next.ServeHTTP(w, r)
			return
		}
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}
		r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}
