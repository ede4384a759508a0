package activityrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/hobbyhub-app/hobby-directory-api/internal/adapters/postgres"
	"github.com/hobbyhub-app/hobby-directory-api/internal/domain"
	"github.com/hobbyhub-app/hobby-directory-api/internal/ports/out/activityrepo"
)

// Repo is a Postgres implementation of activityrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, a domain.Activity) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(a.ID))
	if err != nil {
		return fmt.Errorf("invalid activity id: %w", err)
	}
	organizerID, err := uuid.Parse(string(a.OrganizerID))
	if err != nil {
		return fmt.Errorf("invalid organizer id: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO activities (
			id,
			title,
			description,
			type,
			category_id,
			location,
			price,
			currency,
			start_date,
			end_date,
			max_participants,
			age_range,
			organizer_id,
			contact_email,
			contact_phone,
			tags,
			image_url,
			is_deleted,
			created_at,
			updated_at
		) VALUES (
			$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20
		)
	`,
		id,
		a.Title,
		a.Description,
		string(a.Type),
		string(a.CategoryID),
		a.Location,
		a.Price,
		a.Currency,
		timePtrForDB(a.StartDate),
		timePtrForDB(a.EndDate),
		a.MaxParticipants,
		a.AgeRange,
		organizerID,
		a.ContactEmail,
		a.ContactPhone,
		tagsForDB(a.Tags),
		a.ImageURL,
		a.IsDeleted,
		a.CreatedAt.UTC(),
		a.UpdatedAt.UTC(),
	)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return activityrepo.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repo) Update(ctx context.Context, a domain.Activity) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(a.ID))
	if err != nil {
		return fmt.Errorf("invalid activity id: %w", err)
	}

	ct, err := r.pool.Exec(ctx, `
		UPDATE activities
		SET title = $2,
		    description = $3,
		    type = $4,
		    category_id = $5,
		    location = $6,
		    price = $7,
		    currency = $8,
		    start_date = $9,
		    end_date = $10,
		    max_participants = $11,
		    age_range = $12,
		    contact_email = $13,
		    contact_phone = $14,
		    tags = $15,
		    image_url = $16,
		    is_deleted = $17,
		    updated_at = $18
		WHERE id = $1
	`,
		id,
		a.Title,
		a.Description,
		string(a.Type),
		string(a.CategoryID),
		a.Location,
		a.Price,
		a.Currency,
		timePtrForDB(a.StartDate),
		timePtrForDB(a.EndDate),
		a.MaxParticipants,
		a.AgeRange,
		a.ContactEmail,
		a.ContactPhone,
		tagsForDB(a.Tags),
		a.ImageURL,
		a.IsDeleted,
		a.UpdatedAt.UTC(),
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return activityrepo.ErrNotFound
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.ActivityID) (domain.Activity, error) {
	if r.pool == nil {
		return domain.Activity{}, errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(id))
	if err != nil {
		return domain.Activity{}, activityrepo.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, selectActivity+` WHERE id = $1`, uid)
	return scanActivity(row)
}

func (r *Repo) List(ctx context.Context, f activityrepo.Filters, page, limit int) ([]domain.Activity, int, error) {
	if r.pool == nil {
		return nil, 0, errors.New("nil postgres pool")
	}
	where, args := buildWhere(f)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM activities `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	query := fmt.Sprintf(
		"%s %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d",
		selectActivity, where, len(args)+1, len(args)+2,
	)
	rows, err := r.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := collectActivities(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *Repo) ListAll(ctx context.Context, f activityrepo.Filters) ([]domain.Activity, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	where, args := buildWhere(f)
	rows, err := r.pool.Query(ctx, selectActivity+` `+where+` ORDER BY created_at DESC, id DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectActivities(rows)
}

func (r *Repo) CountByOrganizer(ctx context.Context, organizerID domain.IdentityID) (int, error) {
	if r.pool == nil {
		return 0, errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(organizerID))
	if err != nil {
		return 0, nil
	}
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM activities WHERE organizer_id = $1`, uid).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// --- helpers ---

const selectActivity = `
	SELECT
		id,
		title,
		description,
		type,
		category_id,
		location,
		price,
		currency,
		start_date,
		end_date,
		max_participants,
		age_range,
		organizer_id,
		contact_email,
		contact_phone,
		tags,
		image_url,
		is_deleted,
		created_at,
		updated_at
	FROM activities
`

func buildWhere(f activityrepo.Filters) (string, []any) {
	conds := make([]string, 0, 8)
	args := make([]any, 0, 8)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if !f.IncludeDeleted {
		conds = append(conds, "is_deleted = false")
	}
	if f.OrganizerID != "" {
		if uid, err := uuid.Parse(string(f.OrganizerID)); err == nil {
			conds = append(conds, "organizer_id = "+arg(uid))
		} else {
			conds = append(conds, "false")
		}
	}
	if f.Type != "" {
		conds = append(conds, "type = "+arg(string(f.Type)))
	}
	if f.CategoryID != "" {
		conds = append(conds, "category_id = "+arg(string(f.CategoryID)))
	}
	if f.Search != "" {
		p := arg("%" + strings.ToLower(f.Search) + "%")
		conds = append(conds, "(lower(title) LIKE "+p+" OR lower(description) LIKE "+p+")")
	}
	if f.Location != "" {
		conds = append(conds, "lower(location) LIKE "+arg("%"+strings.ToLower(f.Location)+"%"))
	}
	if f.MinPrice != nil {
		conds = append(conds, "price >= "+arg(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		conds = append(conds, "price <= "+arg(*f.MaxPrice))
	}

	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

func collectActivities(rows pgx.Rows) ([]domain.Activity, error) {
	out := make([]domain.Activity, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanActivity(row interface {
	Scan(dest ...any) error
}) (domain.Activity, error) {
	var (
		id              uuid.UUID
		title           string
		description     string
		typ             string
		categoryID      string
		location        string
		price           float64
		currency        string
		startDate       *time.Time
		endDate         *time.Time
		maxParticipants *int
		ageRange        *string
		organizerID     uuid.UUID
		contactEmail    string
		contactPhone    *string
		tags            []string
		imageURL        *string
		isDeleted       bool
		createdAt       time.Time
		updatedAt       time.Time
	)
	if err := row.Scan(
		&id,
		&title,
		&description,
		&typ,
		&categoryID,
		&location,
		&price,
		&currency,
		&startDate,
		&endDate,
		&maxParticipants,
		&ageRange,
		&organizerID,
		&contactEmail,
		&contactPhone,
		&tags,
		&imageURL,
		&isDeleted,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Activity{}, activityrepo.ErrNotFound
		}
		return domain.Activity{}, err
	}

	out := domain.Activity{
		ID:              domain.ActivityID(id.String()),
		Title:           title,
		Description:     description,
		Type:            domain.ActivityType(typ),
		CategoryID:      domain.CategoryID(categoryID),
		Location:        location,
		Price:           price,
		Currency:        currency,
		MaxParticipants: maxParticipants,
		AgeRange:        ageRange,
		OrganizerID:     domain.IdentityID(organizerID.String()),
		ContactEmail:    contactEmail,
		ContactPhone:    contactPhone,
		ImageURL:        imageURL,
		IsDeleted:       isDeleted,
		CreatedAt:       createdAt.UTC(),
		UpdatedAt:       updatedAt.UTC(),
	}
	if startDate != nil {
		v := startDate.UTC()
		out.StartDate = &v
	}
	if endDate != nil {
		v := endDate.UTC()
		out.EndDate = &v
	}
	if len(tags) > 0 {
		out.Tags = make([]domain.TagID, 0, len(tags))
		for _, tg := range tags {
			out.Tags = append(out.Tags, domain.TagID(tg))
		}
	}
	return out, nil
}

func timePtrForDB(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

func tagsForDB(tags []domain.TagID) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, string(t))
	}
	return out
}
