package middleware

import "net/http"

// APIKey enforces the static x-api-key header on protected endpoints.
func APIKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				http.Error(w, "api auth disabled", http.StatusUnauthorized)
				return
			}
			if r.Header.Get("x-api-key") != key {
				http.Error(w, "invalid api key", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
