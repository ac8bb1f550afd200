package store

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by ID or email.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when attempting to create a user with an existing ID.
	ErrUserExists = errors.New("user already exists")
	// ErrEmailExists is returned when attempting to create a user with an email that's already registered.
	ErrEmailExists = errors.New("email already in use")
	// ErrProductNotFound is returned when a product cannot be found by ID.
	ErrProductNotFound = errors.New("product not found")
	// ErrProductExists is returned when attempting to create a product with an existing ID.
	ErrProductExists = errors.New("product already exists")
	// ErrReviewExists is returned when attempting to create a review with an existing ID.
	ErrReviewExists = errors.New("review already exists")
)
