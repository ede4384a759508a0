package activities

import (
	"time"

	"github.com/hobbyhub-app/hobby-directory-api/internal/domain"
)

// Optional is a tri-state field used to distinguish:
// - unspecified (omitted)
// - specified as null
// - specified with a value
type Optional[T any] struct {
	specified bool
	isNull    bool
	value     T
}

func Unspecified[T any]() Optional[T] { return Optional[T]{} }
func Null[T any]() Optional[T]        { return Optional[T]{specified: true, isNull: true} }
func Some[T any](v T) Optional[T]     { return Optional[T]{specified: true, value: v} }

func (o Optional[T]) IsSpecified() bool { return o.specified }
func (o Optional[T]) IsNull() bool      { return o.specified && o.isNull }
func (o Optional[T]) Value() T          { return o.value }

// ListFilters narrow the public directory listing.
type ListFilters struct {
	Search     string
	Type       domain.ActivityType
	CategoryID domain.CategoryID
	Location   string
	MinPrice   *float64
	MaxPrice   *float64
}

// CreateActivityInput is the payload for creating a listing.
type CreateActivityInput struct {
	Title       string
	Description string
	Type        domain.ActivityType
	CategoryID  domain.CategoryID

	Location string
	Price    float64
	Currency string

	StartDate *time.Time
	EndDate   *time.Time

	MaxParticipants *int
	AgeRange        *string

	ContactEmail string
	ContactPhone *string

	Tags []domain.TagID
}

// UpdateActivityInput is a partial update; unspecified fields keep their
// stored value, null clears nullable fields.
type UpdateActivityInput struct {
	Title       Optional[string] // cannot be null
	Description Optional[string] // cannot be null
	Type        Optional[domain.ActivityType]
	CategoryID  Optional[domain.CategoryID]

	Location Optional[string]
	Price    Optional[float64]
	Currency Optional[string]

	StartDate Optional[time.Time] // may be null
	EndDate   Optional[time.Time] // may be null

	MaxParticipants Optional[int]    // may be null
	AgeRange        Optional[string] // may be null

	ContactEmail Optional[string]
	ContactPhone Optional[string] // may be null

	Tags Optional[[]domain.TagID]
}

// OwnerStats aggregates an organizer's listings for the dashboard.
type OwnerStats struct {
	// Total counts every record belonging to the organizer, soft-deleted
	// ones included.
	Total int
	// Active counts records not soft-deleted.
	Active int
	// Pending counts active records whose start date lies in the future.
	Pending int
	// Participants sums MaxParticipants across active records.
	Participants int
	// ThisMonth counts records created within the current calendar month.
	ThisMonth int
}
