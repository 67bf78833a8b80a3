package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ivlev/moneta/internal/domain"
	"github.com/ivlev/moneta/internal/infrastructure/auth"
	"github.com/ivlev/moneta/internal/infrastructure/metrics"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// IdentityContextKey is the context key for the acting identity
	IdentityContextKey ContextKey = "identity"
)

// AuthMiddleware resolves the caller's identity from a Bearer token
// once at the boundary; every engine call downstream receives it
// explicitly.
func AuthMiddleware(jwtManager *auth.JWTManager, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token from Authorization header
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				authFailure(w, m, "missing_header", "missing authorization header")
				return
			}

			// Parse Bearer token
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				authFailure(w, m, "malformed_header", "invalid authorization header format")
				return
			}

			claims, err := jwtManager.Verify(parts[1])
			if err != nil {
				authFailure(w, m, "invalid_token", "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), IdentityContextKey, claims.Identity())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StaticIdentity injects a fixed identity into every request. Used
// when authentication is disabled.
func StaticIdentity(identity domain.Identity) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), IdentityContextKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext extracts the acting identity from context
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(IdentityContextKey).(domain.Identity)
	return identity, ok
}

func authFailure(w http.ResponseWriter, m *metrics.Metrics, reason, message string) {
	if m != nil {
		m.AuthFailures.WithLabelValues(reason).Inc()
	}

	http.Error(w, message, http.StatusUnauthorized)
}
