package validators

import (
	"net/http"
	"strings"
)

// QueryString returns the trimmed query parameter, or "" when absent.
func QueryString(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// QueryRaw returns the query parameter exactly as sent. Search terms keep their
// surrounding spaces so " mug" only matches text containing " mug".
func QueryRaw(r *http.Request, key string) string {
	return r.URL.Query().Get(key)
}
