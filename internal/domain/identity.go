package domain

import "time"

// Identity is the domain representation of an authenticated actor's profile.
// It is owned by the accounts service; everything else treats it as read-only.
type Identity struct {
	ID    IdentityID
	Email string
	Role  Role

	DisplayName string
	// OrganizationName is only meaningful for organizer accounts; nil means unset.
	OrganizationName *string
	// Phone is optional contact metadata; nil means unset.
	Phone *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
