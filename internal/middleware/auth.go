package middleware

import (
	"context"
	"net/http"
	"strings"

	"crm-backend/internal/auth"
	"crm-backend/internal/utils"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const identityKey contextKey = "identity"

// IdentityFromContext extracts the authenticated identity attached by
// RequireAuth. The second result is false for unauthenticated requests.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(auth.Identity)
	return identity, ok
}

// ContextWithIdentity attaches an identity the way RequireAuth does
func ContextWithIdentity(ctx context.Context, identity auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// RequireAuth validates the bearer token in the Authorization header and
// attaches the resolved identity to the request context. Requests without a
// valid token are rejected before the wrapped handler runs.
func RequireAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.WriteErrorResponse(w, http.StatusUnauthorized, "authorization header required")
				return
			}

			// Extract token from "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.WriteErrorResponse(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			claims, err := auth.ValidateToken(parts[1], secret)
			if err != nil {
				utils.WriteErrorResponse(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := ContextWithIdentity(r.Context(), claims.Identity())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
