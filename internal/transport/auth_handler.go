package transport

import (
	"crypto/subtle"
	"net/http"

	"luxury-market/internal/auth"
	"luxury-market/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LoginRequest represents the admin login payload
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// AuthHandler handles admin login and logout. Login compares the submitted
// password against the configured admin secret and sets the session cookie;
// logout just discards it.
type AuthHandler struct {
	sessions      *auth.Sessions
	adminPassword string
	secureCookies bool
	logger        *zap.Logger
}

func NewAuthHandler(sessions *auth.Sessions, adminPassword string, secureCookies bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		sessions:      sessions,
		adminPassword: adminPassword,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

// RegisterRoutes registers the auth routes. The login rate limiter is
// supplied by the server so tests can tune it.
func (h *AuthHandler) RegisterRoutes(r chi.Router, loginLimiter func(http.Handler) http.Handler) {
	r.Route("/api/admin", func(r chi.Router) {
		r.With(loginLimiter).Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})
}

// Login handles admin authentication
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Login validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.adminPassword)) != 1 {
		h.logger.Warn("Admin login failed", zap.String("remote_addr", r.RemoteAddr))
		middleware.RespondWithError(w, http.StatusUnauthorized, "incorrect password")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    h.sessions.Create(),
		Path:     "/",
		MaxAge:   int(auth.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	h.logger.Info("Admin logged in")
	middleware.RespondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	middleware.RespondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
