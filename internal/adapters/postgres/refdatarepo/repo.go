package refdatarepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hobbyhub-app/hobby-directory-api/internal/domain"
	"github.com/hobbyhub-app/hobby-directory-api/internal/ports/out/refdatarepo"
)

// Repo is a Postgres implementation of refdatarepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, icon
		FROM categories
		ORDER BY name ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Category, 0)
	for rows.Next() {
		var id, name, icon string
		if err := rows.Scan(&id, &name, &icon); err != nil {
			return nil, err
		}
		out = append(out, domain.Category{ID: domain.CategoryID(id), Name: name, Icon: icon})
	}
	return out, rows.Err()
}

func (r *Repo) ListTags(ctx context.Context) ([]domain.Tag, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, color
		FROM tags
		ORDER BY name ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Tag, 0)
	for rows.Next() {
		var id, name, color string
		if err := rows.Scan(&id, &name, &color); err != nil {
			return nil, err
		}
		out = append(out, domain.Tag{ID: domain.TagID(id), Name: name, Color: color})
	}
	return out, rows.Err()
}

func (r *Repo) GetCategory(ctx context.Context, id domain.CategoryID) (domain.Category, error) {
	if r.pool == nil {
		return domain.Category{}, errors.New("nil postgres pool")
	}
	var c domain.Category
	var cid, name, icon string
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, icon
		FROM categories
		WHERE id = $1
	`, string(id)).Scan(&cid, &name, &icon)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Category{}, refdatarepo.ErrNotFound
		}
		return domain.Category{}, err
	}
	c = domain.Category{ID: domain.CategoryID(cid), Name: name, Icon: icon}
	return c, nil
}
