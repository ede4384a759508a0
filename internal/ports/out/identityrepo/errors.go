package identityrepo

import "errors"

var (
	// ErrNotFound indicates the requested identity does not exist.
	ErrNotFound = errors.New("identity not found")

	// ErrEmailTaken indicates an identity already exists for the provided email.
	ErrEmailTaken = errors.New("identity email already taken")

	// ErrAlreadyExists indicates an identity already exists with the provided ID.
	ErrAlreadyExists = errors.New("identity already exists")
)
