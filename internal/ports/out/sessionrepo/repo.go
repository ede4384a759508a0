package sessionrepo

import (
	"context"
	"time"

	"github.com/hobbyhub-app/hobby-directory-api/internal/domain"
)

// Session is an issued credential. Tokens embed the session ID so sign-out
// can revoke outstanding tokens server-side.
type Session struct {
	ID         domain.SessionID
	IdentityID domain.IdentityID

	CreatedAt time.Time
	ExpiresAt time.Time

	// RevokedAt is nil while the session is live.
	RevokedAt *time.Time
}

// Repository persists sessions.
type Repository interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, id domain.SessionID) (Session, error)

	// Revoke marks the session revoked at the provided instant. Revoking an
	// already-revoked session is a no-op.
	Revoke(ctx context.Context, id domain.SessionID, at time.Time) error
}
