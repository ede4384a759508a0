package refdatarepo

import "errors"

var (
	ErrNotFound = errors.New("reference record not found")
)
