package auth

import (
	"context"
	"net/http"
	"strings"
)

// contextKey is an unexported type used for context keys in this package.
//
// WHY A CUSTOM TYPE FOR CONTEXT KEYS?
// context.WithValue uses any as the key type. If you use a plain string like
// context.WithValue(ctx, "clerkID", id), ANY package that knows the string
// can read or shadow your value. A package-private type prevents collisions:
// only THIS package can create a key of type contextKey, so only this package
// can attach or read identities.
type contextKey string

const identityKey contextKey = "clerkID"

// RequireAuth is a middleware that enforces authentication on protected routes.
//
// It reads the session JWT — from the "token" HttpOnly cookie or an
// "Authorization: Bearer" header — validates it, and stores the Clerk
// subject in the request context. If the token is missing or invalid, it
// returns 401 Unauthorized and stops the request chain.
//
// Chi applies middlewares in a chain: req → M1 → M2 → Handler → M2 → M1 → resp
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clerkID, err := extractIdentity(r, tokens)
			if err != nil {
				http.Error(w, `{"error":"unauthorized","message":"valid authentication required"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, clerkID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth extracts the identity if a valid token is present but does
// NOT block the request if it's missing or invalid.
//
// Used on routes like GET /api/me/starred where an anonymous caller gets an
// empty result rather than a 401.
func OptionalAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if clerkID, err := extractIdentity(r, tokens); err == nil && clerkID != "" {
				ctx := context.WithValue(r.Context(), identityKey, clerkID)
				r = r.WithContext(ctx)
			}
			// Always continue — no 401 even if no token
			next.ServeHTTP(w, r)
		})
	}
}

// IdentityFromContext retrieves the caller's Clerk subject from the request
// context.
//
// Returns ("", false) if the request is anonymous.
func IdentityFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(identityKey).(string)
	return id, ok && id != ""
}

// WithIdentity returns a context carrying the given Clerk subject.
// Exists so service tests can exercise the guard without HTTP plumbing.
func WithIdentity(ctx context.Context, clerkID string) context.Context {
	return context.WithValue(ctx, identityKey, clerkID)
}

// extractIdentity reads the session token from the cookie or the
// Authorization header and validates it. Shared by RequireAuth and
// OptionalAuth.
func extractIdentity(r *http.Request, tokens *TokenService) (string, error) {
	if cookie, err := r.Cookie("token"); err == nil && cookie.Value != "" {
		return tokens.Validate(cookie.Value)
	}

	// Fall back to "Authorization: Bearer <jwt>" for non-browser clients.
	header := r.Header.Get("Authorization")
	if raw, found := strings.CutPrefix(header, "Bearer "); found {
		return tokens.Validate(raw)
	}

	return "", http.ErrNoCookie
}
