package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"chitraboard/internal/authz"
	"chitraboard/internal/models"
	"chitraboard/internal/security"
	"chitraboard/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const ProfileContextKey ContextKey = "profile"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
	limiter     *security.RateLimiter
	csrf        *security.CSRFGenerator
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, limiter *security.RateLimiter, csrf *security.CSRFGenerator) *Middleware {
	return &Middleware{
		authService: authService,
		limiter:     limiter,
		csrf:        csrf,
	}
}

// RequireAuth is middleware that requires a valid session
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			respondError(w, http.StatusUnauthorized, ErrUnauthorized)
			return
		}

		profile, err := m.authService.ValidateSession(cookie.Value)
		if err != nil {
			// Clear invalid cookie
			http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
			respondError(w, http.StatusUnauthorized, ErrUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ProfileContextKey, profile)
		next(w, r.WithContext(ctx))
	}
}

// RequireAction requires a valid session whose role holds the given
// capability. Wraps RequireAuth.
func (m *Middleware) RequireAction(action authz.Action, next http.HandlerFunc) http.HandlerFunc {
	return m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		profile := GetProfileFromContext(r.Context())
		if profile == nil || !authz.Can(profile.Role, action) {
			respondError(w, http.StatusForbidden, "Forbidden")
			return
		}
		next(w, r)
	})
}

// RequireAdmin requires a valid admin session
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		profile := GetProfileFromContext(r.Context())
		if profile == nil || profile.Role != models.RoleAdmin {
			respondError(w, http.StatusForbidden, "Forbidden")
			return
		}
		next(w, r)
	})
}

// RateLimit throttles requests per client IP
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r)
		if !m.limiter.Allow(ip) {
			respondError(w, http.StatusTooManyRequests, "Too many requests, please try again later")
			return
		}
		next(w, r)
	}
}

// CSRFProtect validates the X-CSRF-Token header on state-changing
// requests against the caller's session
func (m *Middleware) CSRFProtect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			respondError(w, http.StatusUnauthorized, ErrUnauthorized)
			return
		}

		token := r.Header.Get("X-CSRF-Token")
		if token == "" || !m.csrf.ValidateToken(cookie.Value, token) {
			respondError(w, http.StatusForbidden, "Invalid CSRF token")
			return
		}
		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// GetProfileFromContext retrieves the signed-in profile from the
// request context
func GetProfileFromContext(ctx context.Context) *models.Profile {
	profile, ok := ctx.Value(ProfileContextKey).(*models.Profile)
	if !ok {
		return nil
	}
	return profile
}
