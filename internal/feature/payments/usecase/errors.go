package usecase

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")

	// ErrAlreadyActive is returned when an active user submits a payment.
	ErrAlreadyActive = errors.New("account is already active")

	ErrAccountSuspended = errors.New("account is suspended, contact support")

	ErrPaymentNotFound = errors.New("payment not found")

	// ErrPaymentNotPending is returned when confirming or rejecting a payment
	// that was already reviewed.
	ErrPaymentNotPending = errors.New("payment was already reviewed")

	ErrInvalidInput = errors.New("invalid input")
)
