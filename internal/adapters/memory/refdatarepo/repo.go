package refdatarepo

import (
	"context"
	"sort"
	"sync"

	"github.com/hobbyhub-app/hobby-directory-api/internal/domain"
	"github.com/hobbyhub-app/hobby-directory-api/internal/ports/out/refdatarepo"
)

// Repo is an in-memory implementation of refdatarepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu         sync.RWMutex
	categories map[domain.CategoryID]domain.Category
	tags       map[domain.TagID]domain.Tag
}

func NewRepo(categories []domain.Category, tags []domain.Tag) *Repo {
	r := &Repo{
		categories: make(map[domain.CategoryID]domain.Category),
		tags:       make(map[domain.TagID]domain.Tag),
	}
	for _, c := range categories {
		r.categories[c.ID] = c
	}
	for _, t := range tags {
		r.tags[t.ID] = t
	}
	return r
}

// NewSeeded returns a repo pre-loaded with the default catalog used by
// development and tests.
func NewSeeded() *Repo {
	return NewRepo(DefaultCategories(), DefaultTags())
}

func (r *Repo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *Repo) ListTags(ctx context.Context) ([]domain.Tag, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Tag, 0, len(r.tags))
	for _, t := range r.tags {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *Repo) GetCategory(ctx context.Context, id domain.CategoryID) (domain.Category, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.categories[id]
	if !ok {
		return domain.Category{}, refdatarepo.ErrNotFound
	}
	return c, nil
}

// DefaultCategories is the built-in category catalog.
func DefaultCategories() []domain.Category {
	return []domain.Category{
		{ID: "arts-crafts", Name: "Arts & Crafts", Icon: "palette"},
		{ID: "games", Name: "Games", Icon: "dice"},
		{ID: "music", Name: "Music", Icon: "music"},
		{ID: "outdoors", Name: "Outdoors", Icon: "tree"},
		{ID: "sports", Name: "Sports", Icon: "trophy"},
		{ID: "technology", Name: "Technology", Icon: "cpu"},
		{ID: "wellness", Name: "Wellness", Icon: "heart"},
	}
}

// DefaultTags is the built-in tag catalog.
func DefaultTags() []domain.Tag {
	return []domain.Tag{
		{ID: "beginner-friendly", Name: "Beginner friendly", Color: "#2e7d32"},
		{ID: "family", Name: "Family", Color: "#1565c0"},
		{ID: "free", Name: "Free", Color: "#6a1b9a"},
		{ID: "indoor", Name: "Indoor", Color: "#ef6c00"},
		{ID: "outdoor", Name: "Outdoor", Color: "#00695c"},
		{ID: "weekly", Name: "Weekly", Color: "#c62828"},
	}
}
