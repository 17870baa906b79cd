package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// UmpireHeader carries the umpire token for clients that cannot set
// an Authorization header.
const UmpireHeader = "X-Umpire-Token"

// NewToken returns a fresh random umpire token.
func NewToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// TokenFromRequest extracts the umpire token from a Bearer Authorization
// header or the X-Umpire-Token header.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return strings.TrimSpace(r.Header.Get(UmpireHeader))
}

// RequireUmpire creates middleware that only lets the umpire through.
// An empty token leaves the routes open.
func RequireUmpire(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := TokenFromRequest(r)
			if got == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				http.Error(w, "Forbidden: umpire token required", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
