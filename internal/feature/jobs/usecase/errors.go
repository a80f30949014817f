package usecase

import "errors"

var (
	// ErrJobNotFound is returned when a job cannot be found by id.
	ErrJobNotFound = errors.New("job not found")

	// ErrCategoryNotFound is returned when a category cannot be found.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCompanyNotFound is returned when a company cannot be found by id.
	ErrCompanyNotFound = errors.New("company not found")

	// ErrInvalidInput is returned when a create or update request carries
	// values outside the allowed sets. The wrapping error names the field.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownStat is returned for a stats key that does not exist.
	ErrUnknownStat = errors.New("unknown stats key")
)
