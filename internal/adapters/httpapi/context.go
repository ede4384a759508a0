package httpapi

import (
	"context"

	"github.com/hobbyhub-app/hobby-directory-api/internal/domain"
)

type identityKey struct{}
type sessionKey struct{}

func withIdentity(ctx context.Context, id domain.Identity, session domain.SessionID) context.Context {
	ctx = context.WithValue(ctx, identityKey{}, id)
	return context.WithValue(ctx, sessionKey{}, session)
}

// IdentityFromContext returns the authenticated caller, if any.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	v, ok := ctx.Value(identityKey{}).(domain.Identity)
	return v, ok && v.ID != ""
}

// SessionFromContext returns the session backing the caller's token.
func SessionFromContext(ctx context.Context) (domain.SessionID, bool) {
	v, ok := ctx.Value(sessionKey{}).(domain.SessionID)
	return v, ok && v != ""
}
