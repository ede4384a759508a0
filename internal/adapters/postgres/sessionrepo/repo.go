package sessionrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/hobbyhub-app/hobby-directory-api/internal/adapters/postgres"
	"github.com/hobbyhub-app/hobby-directory-api/internal/domain"
	"github.com/hobbyhub-app/hobby-directory-api/internal/ports/out/sessionrepo"
)

// Repo is a Postgres implementation of sessionrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, s sessionrepo.Session) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(s.ID))
	if err != nil {
		return fmt.Errorf("invalid session id: %w", err)
	}
	identityID, err := uuid.Parse(string(s.IdentityID))
	if err != nil {
		return fmt.Errorf("invalid identity id: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO sessions (id, identity_id, created_at, expires_at, revoked_at)
		VALUES ($1, $2, $3, $4, $5)
	`,
		id,
		identityID,
		s.CreatedAt.UTC(),
		s.ExpiresAt.UTC(),
		revokedAtForDB(s.RevokedAt),
	)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return sessionrepo.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, id domain.SessionID) (sessionrepo.Session, error) {
	if r.pool == nil {
		return sessionrepo.Session{}, errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(id))
	if err != nil {
		return sessionrepo.Session{}, sessionrepo.ErrNotFound
	}

	var (
		sid        uuid.UUID
		identityID uuid.UUID
		createdAt  time.Time
		expiresAt  time.Time
		revokedAt  *time.Time
	)
	err = r.pool.QueryRow(ctx, `
		SELECT id, identity_id, created_at, expires_at, revoked_at
		FROM sessions
		WHERE id = $1
	`, uid).Scan(&sid, &identityID, &createdAt, &expiresAt, &revokedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sessionrepo.Session{}, sessionrepo.ErrNotFound
		}
		return sessionrepo.Session{}, err
	}

	out := sessionrepo.Session{
		ID:         domain.SessionID(sid.String()),
		IdentityID: domain.IdentityID(identityID.String()),
		CreatedAt:  createdAt.UTC(),
		ExpiresAt:  expiresAt.UTC(),
	}
	if revokedAt != nil {
		v := revokedAt.UTC()
		out.RevokedAt = &v
	}
	return out, nil
}

func (r *Repo) Revoke(ctx context.Context, id domain.SessionID, at time.Time) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(id))
	if err != nil {
		return sessionrepo.ErrNotFound
	}

	// Keep the first revocation instant.
	ct, err := r.pool.Exec(ctx, `
		UPDATE sessions
		SET revoked_at = COALESCE(revoked_at, $2)
		WHERE id = $1
	`, uid, at.UTC())
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return sessionrepo.ErrNotFound
	}
	return nil
}

func revokedAtForDB(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
