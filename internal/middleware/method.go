package middleware

import (
	"net/http"
	"strings"
)

const (
	MethodOverrideField  = "_method"
	MethodOverrideHeader = "X-HTTP-Method-Override"
)

var overridable = map[string]bool{
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// MethodOverride lets HTML forms, which can only POST, reach PUT and DELETE
// routes through a _method field or the override header.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}

		method := r.Header.Get(MethodOverrideHeader)
		if method == "" && isFormRequest(r) {
			method = r.FormValue(MethodOverrideField)
		}

		method = strings.ToUpper(strings.TrimSpace(method))
		if overridable[method] {
			r.Method = method
		}

		next.ServeHTTP(w, r)
	})
}

func isFormRequest(r *http.Request) bool {
	contentType := r.Header.Get("Content-Type")
	return strings.HasPrefix(contentType, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(contentType, "multipart/form-data")
}
