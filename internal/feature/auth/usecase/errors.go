package usecase

import "errors"

var (
	// ErrMissingField is returned when a required registration field is empty.
	// The wrapping error names the field.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidEmail is returned when the email address is malformed.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrWeakPassword is returned when the password does not meet the strength rules.
	ErrWeakPassword = errors.New("password must be at least 8 characters and contain upper case, lower case and a digit")

	// ErrEmailTaken is returned when attempting to register an email that already exists.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned for an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountSuspended is returned when a suspended user tries to log in.
	ErrAccountSuspended = errors.New("account is suspended, contact support")

	// ErrPaymentPending is returned when a user whose registration fee is not
	// yet confirmed tries to log in.
	ErrPaymentPending = errors.New("account is pending, complete your payment first")

	// ErrSessionInvalid is returned when a session is missing, expired, or
	// refers to a user that can no longer authenticate.
	ErrSessionInvalid = errors.New("session is no longer valid")

	// ErrNoSession is returned when an operation needs an authenticated user.
	ErrNoSession = errors.New("not logged in")

	// ErrUserNotFound is returned when a user cannot be found by id.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidInput is returned for admin transitions that make no sense,
	// such as suspending your own account.
	ErrInvalidInput = errors.New("invalid input")
)
