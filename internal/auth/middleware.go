package auth

import (
	"context"
	"net/http"
	"strings"

	"carpool-service/internal/store"
	"carpool-service/pkg/jwt"
	"carpool-service/pkg/logger"
)

type ctxKey string

const claimsCtxKey ctxKey = "auth_claims"

// Middleware gates routes on authentication and role. The current user is
// carried as a request-scoped context value, never process-wide state.
type Middleware struct {
	users    store.IUserStorage
	sessions SessionStore
	log      logger.ILogger
}

func NewMiddleware(users store.IUserStorage, sessions SessionStore, log logger.ILogger) *Middleware {
	return &Middleware{users: users, sessions: sessions, log: log}
}

// OptionalAuth extracts claims into context when a Bearer token is present,
// valid, and still has a live session. Requests without one pass through.
func (m *Middleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			if claims, err := jwt.Validate(auth[7:]); err == nil {
				if alive, err := m.sessions.SessionExists(r.Context(), claims.ID); err == nil && alive {
					r = r.WithContext(context.WithValue(r.Context(), claimsCtxKey, claims))
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth rejects requests with no authenticated session.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetClaims(r.Context()) == nil {
			http.Error(w, `{"message":"Authentication required"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin requires an authenticated session whose user currently holds
// the admin role. The role is read from the database, not the token, so a
// token minted before promotion or demotion never lies.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetClaims(r.Context())
		if claims == nil {
			http.Error(w, `{"message":"Authentication required"}`, http.StatusUnauthorized)
			return
		}
		isAdmin, err := m.users.IsAdmin(r.Context(), claims.UserID)
		if err != nil {
			m.log.Error("admin check failed", logger.Error(err))
			http.Error(w, `{"message":"Internal server error"}`, http.StatusInternalServerError)
			return
		}
		if !isAdmin {
			http.Error(w, `{"message":"Admin access required"}`, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetClaims retrieves the parsed claims from context (nil if absent).
func GetClaims(ctx context.Context) *jwt.Claims {
	c, _ := ctx.Value(claimsCtxKey).(*jwt.Claims)
	return c
}

// WithClaims returns a context carrying claims; used by handler tests.
func WithClaims(ctx context.Context, claims *jwt.Claims) context.Context {
	return context.WithValue(ctx, claimsCtxKey, claims)
}
