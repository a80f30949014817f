// Package usecase implements the manual payment flow: a user submits proof
// of the registration fee and an admin confirms or rejects it.
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	authentity "jobboard_backend/internal/feature/auth/domain/entity"
	"jobboard_backend/internal/feature/payments/domain/entity"
	"jobboard_backend/internal/platform/recordstore"
)

// PaymentRepository abstracts the persistence layer for payments. Submit,
// Confirm and Reject also update the owning user and undo their own write
// when that fails.
// Interfaces are defined by the consumer (usecase), not the provider (adapters).
type PaymentRepository interface {
	All(ctx context.Context) ([]entity.Payment, error)
	Get(ctx context.Context, id string) (entity.Payment, bool, error)
	ByUser(ctx context.Context, userID string) ([]entity.Payment, error)
	Pending(ctx context.Context) ([]entity.Payment, error)
	Submit(ctx context.Context, p entity.Payment, now time.Time) (entity.Payment, error)
	Confirm(ctx context.Context, id, adminID string, now time.Time) (entity.Payment, error)
	Reject(ctx context.Context, id, adminID string, now time.Time) (entity.Payment, error)
}

type UserFinder interface {
	GetByEmail(ctx context.Context, email string) (authentity.User, bool, error)
}

// Fee is the registration fee charged to every new account.
type Fee struct {
	Amount   decimal.Decimal
	Currency string
}

// DefaultFee is used when no fee is configured.
var DefaultFee = Fee{Amount: decimal.RequireFromString("29.99"), Currency: "USD"}

// SubmitInput is what the payment page posts.
type SubmitInput struct {
	Email  string
	Method authentity.PaymentMethod
	Proof  string
}

type paymentUsecase struct {
	payments PaymentRepository
	users    UserFinder
	fee      Fee
	now      func() time.Time
	log      *zap.Logger
}

// NewPaymentUsecase returns a payment usecase charging fee.
func NewPaymentUsecase(payments PaymentRepository, users UserFinder, fee Fee, l *zap.Logger) *paymentUsecase {
	if l == nil {
		l = zap.NewNop()
	}
	if fee.Amount.IsZero() {
		fee = DefaultFee
	}
	return &paymentUsecase{payments: payments, users: users, fee: fee, now: time.Now, log: l}
}

// Submit records a pending payment of the registration fee for the account
// with the given email and marks the account as paid.
func (u *paymentUsecase) Submit(ctx context.Context, in SubmitInput) (entity.Payment, error) {
	if !in.Method.Valid() {
		return entity.Payment{}, fmt.Errorf("%w: method %q", ErrInvalidInput, in.Method)
	}
	if strings.TrimSpace(in.Proof) == "" {
		return entity.Payment{}, fmt.Errorf("%w: payment proof is required", ErrInvalidInput)
	}
	user, ok, err := u.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return entity.Payment{}, err
	}
	if !ok {
		return entity.Payment{}, ErrUserNotFound
	}
	switch user.Status {
	case authentity.StatusActive:
		return entity.Payment{}, ErrAlreadyActive
	case authentity.StatusSuspended:
		return entity.Payment{}, ErrAccountSuspended
	}

	now := u.now().UTC()
	p, err := u.payments.Submit(ctx, entity.Payment{
		ID:          recordstore.NewID("pay-"),
		UserID:      user.ID,
		Amount:      u.fee.Amount,
		Currency:    u.fee.Currency,
		Method:      in.Method,
		Status:      entity.StatePending,
		QRCodeImage: in.Proof,
		CreatedAt:   now,
	}, now)
	if err != nil {
		return entity.Payment{}, err
	}
	u.log.Info("payment submitted",
		zap.String("payment_id", p.ID),
		zap.String("user_id", user.ID),
		zap.String("method", string(p.Method)),
	)
	return p, nil
}

// Confirm completes a pending payment and activates its user.
func (u *paymentUsecase) Confirm(ctx context.Context, id, adminID string) (entity.Payment, error) {
	p, err := u.payments.Confirm(ctx, id, adminID, u.now().UTC())
	if err != nil {
		return entity.Payment{}, err
	}
	u.log.Info("payment confirmed",
		zap.String("payment_id", id),
		zap.String("user_id", p.UserID),
		zap.String("admin_id", adminID),
	)
	return p, nil
}

// Reject fails a pending payment so the user can submit a new one.
func (u *paymentUsecase) Reject(ctx context.Context, id, adminID string) (entity.Payment, error) {
	p, err := u.payments.Reject(ctx, id, adminID, u.now().UTC())
	if err != nil {
		return entity.Payment{}, err
	}
	u.log.Info("payment rejected",
		zap.String("payment_id", id),
		zap.String("user_id", p.UserID),
		zap.String("admin_id", adminID),
	)
	return p, nil
}

// Get returns the payment or ErrPaymentNotFound.
func (u *paymentUsecase) Get(ctx context.Context, id string) (entity.Payment, error) {
	p, ok, err := u.payments.Get(ctx, id)
	if err != nil {
		return entity.Payment{}, err
	}
	if !ok {
		return entity.Payment{}, ErrPaymentNotFound
	}
	return p, nil
}

// All returns every payment.
func (u *paymentUsecase) All(ctx context.Context) ([]entity.Payment, error) {
	return u.payments.All(ctx)
}

// Pending returns the payments awaiting review.
func (u *paymentUsecase) Pending(ctx context.Context) ([]entity.Payment, error) {
	return u.payments.Pending(ctx)
}

// ByUser returns the payments submitted by userID.
func (u *paymentUsecase) ByUser(ctx context.Context, userID string) ([]entity.Payment, error) {
	return u.payments.ByUser(ctx, userID)
}
