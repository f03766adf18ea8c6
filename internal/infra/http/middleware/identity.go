package middleware

import (
	"context"
	"encoding/json"
	"net/http"
)

// UserIDHeader is set by the upstream identity gateway. Authentication itself
// happens there; this service only requires the resolved user id.
const UserIDHeader = "X-User-ID"

type contextKey string

const userIDKey contextKey = "user_id"

func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(UserIDHeader)
		if userID == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{
				"error":   "NOT_AUTHENTICATED",
				"message": "missing authenticated user",
			})
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID returns the authenticated user id stored by Identity.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}
