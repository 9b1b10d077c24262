package repository

import "errors"

var (
	// ErrCategoryNotFound is returned when a category cannot be found.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrGenreNotFound is returned when a genre cannot be found.
	ErrGenreNotFound = errors.New("genre not found")

	// ErrCastMemberNotFound is returned when a cast member cannot be found.
	ErrCastMemberNotFound = errors.New("cast member not found")

	// ErrVideoNotFound is returned when a video cannot be found.
	ErrVideoNotFound = errors.New("video not found")

	// ErrDuplicateEntity is returned when attempting to create an aggregate
	// whose identity already exists.
	ErrDuplicateEntity = errors.New("entity already exists")

	// ErrObjectNotFound is returned when a stored object cannot be found.
	ErrObjectNotFound = errors.New("object not found")

	// ErrBucketNotFound is returned when the configured bucket does not exist.
	ErrBucketNotFound = errors.New("bucket not found")
)
