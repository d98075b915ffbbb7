package transport

import (
	"context"
	"net/http"
)

// SessionCookie is the name of the login cookie.
const SessionCookie = "worklog_session"

type userKey struct{}

// TokenResolver resolves a user ID from an opaque session token.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (int64, error)
}

// UserFromContext returns the authenticated user ID from context.
func UserFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userKey{}).(int64)
	return userID, ok
}

// AuthMiddleware enforces cookie-token authentication.
func AuthMiddleware(resolver TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			userID, err := resolver.ResolveToken(r.Context(), cookie.Value)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			ctx := context.WithValue(r.Context(), userKey{}, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// NoAuthMiddleware attaches a fixed user to every request. Used when
// authentication is disabled in config.
func NoAuthMiddleware(userID int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), userKey{}, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
