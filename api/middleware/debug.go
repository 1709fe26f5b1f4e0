package middleware

import (
	"net/http"

	"github.com/craftcollective/craft-market/api/responses"
)

// Debug flags requests so error bodies include internal messages and stack traces.
func Debug(enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(responses.WithDebug(r.Context(), true)))
		})
	}
}
