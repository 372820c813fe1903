package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
	"strings"
)

func HashToken(token string) [sha256.Size]byte {
	return sha256.Sum256([]byte(token))
}

// RequireAPIToken rejects requests that do not present token, either as a
// bearer Authorization header or as a token query parameter. An empty token
// disables the check.
func RequireAPIToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		expected := HashToken(token)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := r.URL.Query().Get("token")
			if authHeader := r.Header.Get("Authorization"); authHeader != "" {
				presented = strings.TrimPrefix(authHeader, "Bearer ")
			}
			if presented == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			actual := HashToken(presented)
			if subtle.ConstantTimeCompare(expected[:], actual[:]) != 1 {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
