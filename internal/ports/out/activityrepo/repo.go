package activityrepo

import (
	"context"

	"github.com/hobbyhub-app/hobby-directory-api/internal/domain"
)

// Filters narrow a listing query. Zero values mean "not filtered".
type Filters struct {
	// Search matches Title or Description by case-insensitive substring.
	Search string
	// Type restricts to one listing kind.
	Type domain.ActivityType
	// CategoryID restricts to one category.
	CategoryID domain.CategoryID
	// Location matches by case-insensitive substring.
	Location string
	// MinPrice/MaxPrice bound the price range inclusively; nil means unbounded.
	MinPrice *float64
	MaxPrice *float64
	// OrganizerID restricts to one owner.
	OrganizerID domain.IdentityID
	// IncludeDeleted also returns soft-deleted records. Default listing
	// queries leave this false.
	IncludeDeleted bool
}

// Repository provides access to persisted activities.
//
// Result ordering expectations:
//   - List returns results ordered by CreatedAt descending, ID descending as
//     a tiebreak, so pages are deterministic.
type Repository interface {
	Create(ctx context.Context, a domain.Activity) error
	Update(ctx context.Context, a domain.Activity) error

	GetByID(ctx context.Context, id domain.ActivityID) (domain.Activity, error)

	// List returns the offset page selected by (page, limit) plus the total
	// count of matching records. page is 1-based; limit must be >= 1.
	List(ctx context.Context, f Filters, page, limit int) ([]domain.Activity, int, error)

	// ListAll returns every matching record without paging, in the same
	// order as List. Used for owner statistics.
	ListAll(ctx context.Context, f Filters) ([]domain.Activity, error)

	// CountByOrganizer reports how many records (including soft-deleted ones)
	// belong to the organizer.
	CountByOrganizer(ctx context.Context, organizerID domain.IdentityID) (int, error)
}
