package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/MrJamesThe3rd/khusela/internal/auth"
	"github.com/MrJamesThe3rd/khusela/internal/http/respond"
)

type Verifier interface {
	Verify(ctx context.Context, token string) (*auth.Identity, error)
}

// BearerToken returns the token from the Authorization header, or "".
func BearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}

	return strings.TrimSpace(token)
}

// Authenticate puts the caller's identity into the request context.
func Authenticate(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				respond.Error(w, http.StatusUnauthorized, "Access denied. No token provided.")
				return
			}

			id, err := v.Verify(r.Context(), token)
			if err != nil {
				if auth.IsInvalid(err) {
					respond.Error(w, http.StatusUnauthorized, "Invalid or expired token.")
					return
				}

				respond.Internal(w, r, "Failed to verify token.", err)

				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

// RequireRole admits only callers holding one of roles. It must run after Authenticate.
func RequireRole(roles ...auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, _ := auth.FromContext(r.Context())
			if !id.Can(roles...) {
				respond.Error(w, http.StatusForbidden, "Access denied. Insufficient permissions.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
