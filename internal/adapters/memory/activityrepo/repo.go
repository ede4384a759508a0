package activityrepo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hobbyhub-app/hobby-directory-api/internal/domain"
	"github.com/hobbyhub-app/hobby-directory-api/internal/ports/out/activityrepo"
)

// Repo is an in-memory implementation of activityrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu   sync.RWMutex
	byID map[domain.ActivityID]domain.Activity
}

func NewRepo() *Repo {
	return &Repo{
		byID: make(map[domain.ActivityID]domain.Activity),
	}
}

func (r *Repo) Create(ctx context.Context, a domain.Activity) error {
	_ = ctx
	if a.ID == "" {
		return activityrepo.ErrAlreadyExists // treat empty ID as invalid
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[a.ID]; ok {
		return activityrepo.ErrAlreadyExists
	}
	r.byID[a.ID] = cloneActivity(a)
	return nil
}

func (r *Repo) Update(ctx context.Context, a domain.Activity) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[a.ID]; !ok {
		return activityrepo.ErrNotFound
	}
	r.byID[a.ID] = cloneActivity(a)
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.ActivityID) (domain.Activity, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return domain.Activity{}, activityrepo.ErrNotFound
	}
	return cloneActivity(a), nil
}

func (r *Repo) List(ctx context.Context, f activityrepo.Filters, page, limit int) ([]domain.Activity, int, error) {
	all, err := r.ListAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total := len(all)
	start := (page - 1) * limit
	if start >= total {
		return []domain.Activity{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (r *Repo) ListAll(ctx context.Context, f activityrepo.Filters) ([]domain.Activity, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Activity, 0)
	for _, a := range r.byID {
		if matches(a, f) {
			out = append(out, cloneActivity(a))
		}
	}
	sortActivities(out)
	return out, nil
}

func (r *Repo) CountByOrganizer(ctx context.Context, organizerID domain.IdentityID) (int, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, a := range r.byID {
		if a.OrganizerID == organizerID {
			n++
		}
	}
	return n, nil
}

func matches(a domain.Activity, f activityrepo.Filters) bool {
	if !f.IncludeDeleted && a.IsDeleted {
		return false
	}
	if f.OrganizerID != "" && a.OrganizerID != f.OrganizerID {
		return false
	}
	if f.Type != "" && a.Type != f.Type {
		return false
	}
	if f.CategoryID != "" && a.CategoryID != f.CategoryID {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(a.Title), q) &&
			!strings.Contains(strings.ToLower(a.Description), q) {
			return false
		}
	}
	if f.Location != "" && !strings.Contains(strings.ToLower(a.Location), strings.ToLower(f.Location)) {
		return false
	}
	if f.MinPrice != nil && a.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && a.Price > *f.MaxPrice {
		return false
	}
	return true
}

// sortActivities orders by CreatedAt descending with ID descending as the
// tiebreak, matching the Repository ordering contract.
func sortActivities(as []domain.Activity) {
	sort.Slice(as, func(i, j int) bool {
		a, b := as[i], as[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return string(a.ID) > string(b.ID)
	})
}

func cloneActivity(a domain.Activity) domain.Activity {
	cp := a
	cp.StartDate = cloneTimePtr(a.StartDate)
	cp.EndDate = cloneTimePtr(a.EndDate)
	cp.MaxParticipants = cloneIntPtr(a.MaxParticipants)
	cp.AgeRange = cloneStringPtr(a.AgeRange)
	cp.ContactPhone = cloneStringPtr(a.ContactPhone)
	cp.ImageURL = cloneStringPtr(a.ImageURL)
	if a.Tags != nil {
		cp.Tags = append([]domain.TagID(nil), a.Tags...)
	}
	return cp
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneTimePtr(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
