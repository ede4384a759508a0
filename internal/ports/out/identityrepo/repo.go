package identityrepo

import (
	"context"
	"time"

	"github.com/hobbyhub-app/hobby-directory-api/internal/domain"
)

// Identity is the persistence shape used by the identity repository. It is an
// internal record, not an HTTP DTO: unlike domain.Identity it carries the
// password hash, which must never leave the accounts service.
type Identity struct {
	ID    domain.IdentityID
	Email string
	Role  domain.Role

	DisplayName      string
	OrganizationName *string
	Phone            *string

	PasswordHash string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository provides access to persisted identities.
//
// Email lookups are case-insensitive; implementations store the address as
// provided but index it folded.
type Repository interface {
	Create(ctx context.Context, id Identity) error
	Update(ctx context.Context, id Identity) error

	GetByID(ctx context.Context, id domain.IdentityID) (Identity, error)
	GetByEmail(ctx context.Context, email string) (Identity, error)
}
