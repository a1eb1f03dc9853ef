package middleware

import (
	"net/http"
)

// RequireVerified allows access only to sessions belonging to verified accounts.
func RequireVerified(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			writeJSONError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		if !claims.IsVerified {
			writeJSONError(w, http.StatusForbidden, "Account not verified. Please check your email.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
