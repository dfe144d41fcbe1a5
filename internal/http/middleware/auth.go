// Package middleware holds the HTTP middleware shared across routes.
package middleware

import "net/http"

type contextKey string

// UserKey is the request-context key holding the session's username.
const UserKey contextKey = "username"

// RequireUser rejects requests whose session has not named a user yet.
// Profiles are keyed by username, so every profile-scoped route needs one.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if username, ok := r.Context().Value(UserKey).(string); !ok || username == "" {
			http.Error(w, "no user selected", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
