package service

import "errors"

var (
	// ErrNotFound is returned when neither the cache nor the backend holds the entity.
	ErrNotFound = errors.New("entity not found")
	// ErrConflict is returned when a natural key (name, email) is already taken.
	ErrConflict = errors.New("entity already exists")
	// ErrInvalidReference is returned when a product points at a missing category or brand.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrInvalidInput is returned for values the domain rejects, such as a negative price.
	ErrInvalidInput = errors.New("invalid input")
)
