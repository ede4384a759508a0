package accounts

import (
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

// SignUpInput is the payload for registering a new account.
type SignUpInput struct {
	Email       string
	Password    string
	DisplayName string

	// Role defaults to user when empty. Admin accounts cannot be
	// self-registered.
	Role domain.Role

	OrganizationName *string
	Phone            *string
}

// UpdateProfileInput is a partial profile update; unspecified fields keep
// their stored value, null clears nullable fields.
type UpdateProfileInput struct {
	DisplayName      Optional[string] // cannot be null
	OrganizationName Optional[string] // may be null
	Phone            Optional[string] // may be null
}

// Credentials is the result of a successful sign-up or sign-in.
type Credentials struct {
	Identity domain.Identity
	Token    string
	Session  domain.SessionID
}
