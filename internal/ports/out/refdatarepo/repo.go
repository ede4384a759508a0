package refdatarepo

import (
	"context"

	"github.com/hobbyhub-app/hobby-directory-api/internal/domain"
)

// Repository serves static reference data. The application treats categories
// and tags as read-only; seeding/maintenance happens out of band.
//
// Ordering expectation: both listings return results ordered by Name
// ascending, ID ascending as a tiebreak.
type Repository interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListTags(ctx context.Context) ([]domain.Tag, error)

	GetCategory(ctx context.Context, id domain.CategoryID) (domain.Category, error)
}
