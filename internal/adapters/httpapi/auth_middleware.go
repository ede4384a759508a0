package httpapi

import (
	"net/http"
	"strings"

	"github.com/hobbyhub-app/hobby-directory-api/internal/app/accounts"
	"github.com/hobbyhub-app/hobby-directory-api/internal/authz"
	"github.com/hobbyhub-app/hobby-directory-api/internal/domain"
)

// NewAuthMiddleware resolves Authorization: Bearer <token> into the caller's
// identity and stores it in request context. Requests without the header pass
// through anonymously; role checks happen per-route in RequireRoles. A header
// that is present but invalid is always a 401, even on public routes.
func NewAuthMiddleware(svc *accounts.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) {
				writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "malformed Authorization header", nil)
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(header, prefix))
			if raw == "" {
				writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token", nil)
				return
			}

			identity, session, err := svc.Authenticate(r.Context(), raw)
			if err != nil {
				writeAppError(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), identity, session)))
		})
	}
}

// RequireRoles guards a route subtree: anonymous callers get 401, callers
// whose role does not cover any of the required roles get 403.
func RequireRoles(required ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var identity *domain.Identity
			if id, ok := IdentityFromContext(r.Context()); ok {
				identity = &id
			}

			switch authz.Decide(identity, false, required) {
			case authz.Allow:
				next.ServeHTTP(w, r)
			case authz.RequireLogin:
				writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
			default:
				writeError(w, r, http.StatusForbidden, "PERMISSION_DENIED", "insufficient role", nil)
			}
		})
	}
}
