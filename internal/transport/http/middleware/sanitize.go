package middleware

import (
	"net/http"

	"github.com/microcosm-cc/bluemonday"
)

// SanitizePath strips markup from the request path before routing, so path
// parameters such as usernames never carry HTML into handlers or logs.
func SanitizePath() func(http.Handler) http.Handler {
	p := bluemonday.StrictPolicy()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if clean := p.Sanitize(r.URL.Path); clean != r.URL.Path {
				r.URL.Path = clean
				r.URL.RawPath = ""
			}
			next.ServeHTTP(w, r)
		})
	}
}
