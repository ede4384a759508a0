package identityrepo

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
	"github.com/hobbyhub-app/hobby-directory-api/internal/ports/out/identityrepo"
)

// Repo is a Postgres implementation of identityrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, rec identityrepo.Identity) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(rec.ID))
	if err != nil {
		return fmt.Errorf("invalid identity id: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO identities (
			id,
			email,
			role,
			display_name,
			organization_name,
			phone,
			password_hash,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		id,
		rec.Email,
		string(rec.Role),
		rec.DisplayName,
		rec.OrganizationName,
		rec.Phone,
		rec.PasswordHash,
		rec.CreatedAt.UTC(),
		rec.UpdatedAt.UTC(),
	)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			switch pe.ConstraintName {
			case "identities_email_unique":
				return identityrepo.ErrEmailTaken
			case "identities_pkey":
				return identityrepo.ErrAlreadyExists
			default:
				return err
			}
		}
		return err
	}
	return nil
}

func (r *Repo) Update(ctx context.Context, rec identityrepo.Identity) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(rec.ID))
	if err != nil {
		return fmt.Errorf("invalid identity id: %w", err)
	}

	ct, err := r.pool.Exec(ctx, `
		UPDATE identities
		SET email = $2,
		    role = $3,
		    display_name = $4,
		    organization_name = $5,
		    phone = $6,
		    password_hash = $7,
		    updated_at = $8
		WHERE id = $1
	`,
		id,
		rec.Email,
		string(rec.Role),
		rec.DisplayName,
		rec.OrganizationName,
		rec.Phone,
		rec.PasswordHash,
		rec.UpdatedAt.UTC(),
	)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode && pe.ConstraintName == "identities_email_unique" {
			return identityrepo.ErrEmailTaken
		}
		return err
	}
	if ct.RowsAffected() == 0 {
		return identityrepo.ErrNotFound
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.IdentityID) (identityrepo.Identity, error) {
	if r.pool == nil {
		return identityrepo.Identity{}, errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(id))
	if err != nil {
		return identityrepo.Identity{}, identityrepo.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, selectIdentity+` WHERE id = $1`, uid)
	return scanIdentity(row)
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (identityrepo.Identity, error) {
	if r.pool == nil {
		return identityrepo.Identity{}, errors.New("nil postgres pool")
	}
	row := r.pool.QueryRow(ctx, selectIdentity+` WHERE lower(email) = lower($1)`, email)
	return scanIdentity(row)
}

const selectIdentity = `
	SELECT
		id,
		email,
		role,
		display_name,
		organization_name,
		phone,
		password_hash,
		created_at,
		updated_at
	FROM identities
`

func scanIdentity(row interface {
	Scan(dest ...any) error
}) (identityrepo.Identity, error) {
	var (
		id               uuid.UUID
		email            string
		role             string
		displayName      string
		organizationName *string
		phone            *string
		passwordHash     string
		createdAt        time.Time
		updatedAt        time.Time
	)
	if err := row.Scan(
		&id,
		&email,
		&role,
		&displayName,
		&organizationName,
		&phone,
		&passwordHash,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return identityrepo.Identity{}, identityrepo.ErrNotFound
		}
		return identityrepo.Identity{}, err
	}
	return identityrepo.Identity{
		ID:               domain.IdentityID(id.String()),
		Email:            email,
		Role:             domain.Role(role),
		DisplayName:      displayName,
		OrganizationName: organizationName,
		Phone:            phone,
		PasswordHash:     passwordHash,
		CreatedAt:        createdAt.UTC(),
		UpdatedAt:        updatedAt.UTC(),
	}, nil
}
