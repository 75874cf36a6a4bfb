package httpx

import (
	"net/http"
	"strings"

	"bookshop/internal/auth"
)

// AuthMiddleware requires a valid bearer token and stores its subject in the
// request context.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				JSONMessage(w, http.StatusUnauthorized, "User not logged in")
				return
			}
			token := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := auth.ParseToken(secret, token)
			if err != nil {
				JSONMessage(w, http.StatusUnauthorized, "User not authenticated")
				return
			}

			ctx := ContextWithUsername(r.Context(), claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
