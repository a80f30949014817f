package usecase

import "errors"

var (
	// ErrAccountNotActive is returned when a pending or suspended user applies.
	ErrAccountNotActive = errors.New("only active accounts can apply")

	ErrJobNotFound = errors.New("job not found")

	// ErrJobClosed is returned when applying to a job that is not active.
	ErrJobClosed = errors.New("job is not accepting applications")

	// ErrAlreadyApplied is returned for a second application by the same user
	// to the same job.
	ErrAlreadyApplied = errors.New("already applied to this job")

	ErrApplicationNotFound = errors.New("application not found")

	ErrInvalidInput = errors.New("invalid input")
)
