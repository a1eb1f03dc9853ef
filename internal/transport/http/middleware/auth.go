package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-anon-inbox/internal/domain"
)

type contextKey string

const claimsKey contextKey = "claims"

type tokenVerifier interface {
	Verify(token string) (*domain.TokenClaims, error)
}

// Auth returns middleware that validates the session token and injects its claims
// into the context. The token is read from a Bearer header, falling back to the
// session cookie.
func Auth(verifier tokenVerifier, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r)
			if tokenStr == "" {
				if c, err := r.Cookie(cookieName); err == nil {
					tokenStr = c.Value
				}
			}
			if tokenStr == "" {
				writeJSONError(w, http.StatusUnauthorized, "Not authenticated")
				return
			}
			claims, err := verifier.Verify(tokenStr)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "Not authenticated")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

// WithClaims returns a copy of ctx carrying the session claims.
func WithClaims(ctx context.Context, c *domain.TokenClaims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// ClaimsFromContext extracts session claims from the request context.
func ClaimsFromContext(ctx context.Context) (*domain.TokenClaims, bool) {
	c, ok := ctx.Value(claimsKey).(*domain.TokenClaims)
	return c, ok
}
