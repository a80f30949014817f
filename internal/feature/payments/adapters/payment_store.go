// Package adapters provides the record store implementation of the payment
// repository.
package adapters

import (
	"context"
	"slices"
	"time"

	"go.uber.org/zap"

	authentity "jobboard_backend/internal/feature/auth/domain/entity"
	"jobboard_backend/internal/feature/payments/domain/entity"
	"jobboard_backend/internal/feature/payments/usecase"
	"jobboard_backend/internal/platform/kv"
	"jobboard_backend/internal/platform/recordstore"
)

const PaymentsKey = "payments"

// UserAccounts applies the payment-driven user transitions.
type UserAccounts interface {
	MarkPaid(ctx context.Context, id string, method authentity.PaymentMethod, proof string, now time.Time) (authentity.User, bool, error)
	ConfirmPayment(ctx context.Context, id string, now time.Time) (authentity.User, bool, error)
	ResetPayment(ctx context.Context, id string, now time.Time) (authentity.User, bool, error)
}

// PaymentStore keeps all payments in one collection. Every state change is
// written to the payment first and then to its user; a failed user write
// restores the payment.
type PaymentStore struct {
	c     *recordstore.Collection[entity.Payment]
	users UserAccounts
	log   *zap.Logger
}

var _ usecase.PaymentRepository = (*PaymentStore)(nil)

// NewPaymentStore returns a payment collection that settles users through users.
func NewPaymentStore(store kv.Store, namespace string, users UserAccounts, l *zap.Logger, opts ...recordstore.Option) *PaymentStore {
	if l == nil {
		l = zap.NewNop()
	}
	return &PaymentStore{
		c:     recordstore.NewCollection(store, namespace+PaymentsKey, func(p entity.Payment) string { return p.ID }, opts...),
		users: users,
		log:   l,
	}
}

// Collection exposes the underlying collection for seeding.
func (s *PaymentStore) Collection() *recordstore.Collection[entity.Payment] {
	return s.c
}

// All returns every payment.
func (s *PaymentStore) All(ctx context.Context) ([]entity.Payment, error) {
	return s.c.All(ctx)
}

// Get returns the payment with id.
func (s *PaymentStore) Get(ctx context.Context, id string) (entity.Payment, bool, error) {
	return s.c.Get(ctx, id)
}

// ByUser returns the payments submitted by userID.
func (s *PaymentStore) ByUser(ctx context.Context, userID string) ([]entity.Payment, error) {
	return s.c.Filter(ctx, func(p entity.Payment) bool { return p.UserID == userID })
}

// Pending returns the payments awaiting review.
func (s *PaymentStore) Pending(ctx context.Context) ([]entity.Payment, error) {
	return s.c.Filter(ctx, entity.Payment.IsPending)
}

// Submit stores p and marks its user as paid.
func (s *PaymentStore) Submit(ctx context.Context, p entity.Payment, now time.Time) (entity.Payment, error) {
	if _, err := s.c.Create(ctx, p); err != nil {
		return entity.Payment{}, err
	}
	_, ok, err := s.users.MarkPaid(ctx, p.UserID, p.Method, p.QRCodeImage, now)
	if err == nil && !ok {
		err = usecase.ErrUserNotFound
	}
	if err != nil {
		return entity.Payment{}, recordstore.Compensate(ctx, s.log, "submit payment", err, func(ctx context.Context) error {
			_, derr := s.c.Delete(ctx, p.ID)
			return derr
		})
	}
	return p, nil
}

// Confirm completes a pending payment, then activates the user.
func (s *PaymentStore) Confirm(ctx context.Context, id, adminID string, now time.Time) (entity.Payment, error) {
	prev, next, err := s.review(ctx, id, entity.StateCompleted, adminID, now)
	if err != nil {
		return entity.Payment{}, err
	}
	_, ok, err := s.users.ConfirmPayment(ctx, next.UserID, now)
	if err == nil && !ok {
		err = usecase.ErrUserNotFound
	}
	if err != nil {
		return entity.Payment{}, s.restore(ctx, "confirm payment", err, prev)
	}
	return next, nil
}

// Reject fails a pending payment, then returns the user to payment pending.
func (s *PaymentStore) Reject(ctx context.Context, id, adminID string, now time.Time) (entity.Payment, error) {
	prev, next, err := s.review(ctx, id, entity.StateFailed, adminID, now)
	if err != nil {
		return entity.Payment{}, err
	}
	_, ok, err := s.users.ResetPayment(ctx, next.UserID, now)
	if err == nil && !ok {
		err = usecase.ErrUserNotFound
	}
	if err != nil {
		return entity.Payment{}, s.restore(ctx, "reject payment", err, prev)
	}
	return next, nil
}

// review moves a pending payment to state and returns it before and after.
func (s *PaymentStore) review(ctx context.Context, id string, state entity.PaymentState, adminID string, now time.Time) (prev, next entity.Payment, err error) {
	_, err = s.c.Modify(ctx, func(ps []entity.Payment) ([]entity.Payment, error) {
		i := slices.IndexFunc(ps, func(p entity.Payment) bool { return p.ID == id })
		if i < 0 {
			return nil, usecase.ErrPaymentNotFound
		}
		if !ps[i].IsPending() {
			return nil, usecase.ErrPaymentNotPending
		}
		prev = ps[i]
		ps[i].Status = state
		ps[i].ConfirmedBy = adminID
		ps[i].ConfirmedAt = &now
		next = ps[i]
		return ps, nil
	})
	return prev, next, err
}

func (s *PaymentStore) restore(ctx context.Context, op string, cause error, prev entity.Payment) error {
	return recordstore.Compensate(ctx, s.log, op, cause, func(ctx context.Context) error {
		_, _, err := s.c.Update(ctx, prev.ID, func(p *entity.Payment) { *p = prev })
		return err
	})
}
