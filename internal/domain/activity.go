package domain

import (
	"fmt"
	"strings"
	"time"
)

// ActivityType is the closed set of listing kinds.
type ActivityType string

const (
	TypeActivity         ActivityType = "activity"
	TypeEvent            ActivityType = "event"
	TypeHobbyOpportunity ActivityType = "hobby_opportunity"
	TypeClub             ActivityType = "club"
	TypeCompetition      ActivityType = "competition"
)

// ParseActivityType maps an external type string onto the closed enum,
// case-insensitively.
func ParseActivityType(s string) (ActivityType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "activity":
		return TypeActivity, nil
	case "event":
		return TypeEvent, nil
	case "hobby_opportunity", "hobbyopportunity":
		return TypeHobbyOpportunity, nil
	case "club":
		return TypeClub, nil
	case "competition":
		return TypeCompetition, nil
	default:
		return "", fmt.Errorf("unknown activity type %q", s)
	}
}

// IsValid reports whether t is one of the closed enum values.
func (t ActivityType) IsValid() bool {
	switch t {
	case TypeActivity, TypeEvent, TypeHobbyOpportunity, TypeClub, TypeCompetition:
		return true
	}
	return false
}

// Activity is a listed hobby/event record managed by an organizer.
//
// Soft-deleted activities (IsDeleted=true) are excluded from default listing
// queries but remain addressable by ID.
type Activity struct {
	ID          ActivityID
	Title       string
	Description string
	Type        ActivityType
	CategoryID  CategoryID

	Location string
	Price    float64
	Currency string

	StartDate *time.Time
	EndDate   *time.Time

	MaxParticipants *int
	AgeRange        *string

	OrganizerID  IdentityID
	ContactEmail string
	ContactPhone *string

	Tags []TagID

	ImageURL *string

	IsDeleted bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Category is static reference data; read-only to the application.
type Category struct {
	ID   CategoryID
	Name string
	Icon string
}

// Tag is static reference data; read-only to the application.
type Tag struct {
	ID    TagID
	Name  string
	Color string
}
