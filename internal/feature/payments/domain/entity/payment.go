// Package entity defines the registration payment entity.
package entity

import (
	"time"

	"github.com/shopspring/decimal"

	authentity "jobboard_backend/internal/feature/auth/domain/entity"
)

// PaymentState is the review state of one submitted payment. It is distinct
// from the user's PaymentStatus.
type PaymentState string

const (
	StatePending   PaymentState = "pending"
	StateCompleted PaymentState = "completed"
	StateFailed    PaymentState = "failed"
)

// Payment is a submitted registration fee awaiting admin review.
// QRCodeImage holds the uploaded proof.
type Payment struct {
	ID            string                   `json:"id"`
	UserID        string                   `json:"userId"`
	Amount        decimal.Decimal          `json:"amount"`
	Currency      string                   `json:"currency"`
	Method        authentity.PaymentMethod `json:"method"`
	Status        PaymentState             `json:"status"`
	QRCodeImage   string                   `json:"qrCodeImage,omitempty"`
	TransactionID string                   `json:"transactionId,omitempty"`
	ConfirmedBy   string                   `json:"confirmedBy,omitempty"`
	ConfirmedAt   *time.Time               `json:"confirmedAt,omitempty"`
	CreatedAt     time.Time                `json:"createdAt"`
}

// IsPending reports whether the payment awaits review.
func (p Payment) IsPending() bool { return p.Status == StatePending }
