package middleware

import (
	"net/http"

	"luxury-market/internal/auth"

	"go.uber.org/zap"
)

// AdminAuthMiddleware gates the admin surface behind the session cookie.
// There is a single shared admin role, so a valid token is the entire
// authorization story: no identity, no claims.
func AdminAuthMiddleware(sessions *auth.Sessions, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.CookieName)
			if err != nil || cookie.Value == "" {
				logger.Debug("Missing admin session cookie")
				RespondWithError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			if !sessions.Verify(cookie.Value) {
				logger.Debug("Invalid or expired admin session token")
				RespondWithError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
