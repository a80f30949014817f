// Package adapters provides the record store implementations of the auth
// repositories.
package adapters

import (
	"context"
	"time"

	"jobboard_backend/internal/feature/auth/domain/entity"
	"jobboard_backend/internal/feature/auth/usecase"
	"jobboard_backend/internal/platform/kv"
	"jobboard_backend/internal/platform/recordstore"
)

// UsersKey is the collection name under the namespace.
const UsersKey = "users"

// UserStore keeps all users in one collection.
type UserStore struct {
	c *recordstore.Collection[entity.User]
}

var _ usecase.UserRepository = (*UserStore)(nil)

// NewUserStore creates a UserStore under namespace+"users".
func NewUserStore(store kv.Store, namespace string, opts ...recordstore.Option) *UserStore {
	return &UserStore{
		c: recordstore.NewCollection(store, namespace+UsersKey, func(u entity.User) string { return u.ID }, opts...),
	}
}

// Collection exposes the underlying collection for seeding.
func (s *UserStore) Collection() *recordstore.Collection[entity.User] {
	return s.c
}

// All returns every user.
func (s *UserStore) All(ctx context.Context) ([]entity.User, error) {
	return s.c.All(ctx)
}

// Get returns the user with id.
func (s *UserStore) Get(ctx context.Context, id string) (entity.User, bool, error) {
	return s.c.Get(ctx, id)
}

// GetByEmail matches the stored email exactly, case included.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (entity.User, bool, error) {
	return s.c.Find(ctx, func(u entity.User) bool { return u.Email == email })
}

// ListByStatus returns the users in status.
func (s *UserStore) ListByStatus(ctx context.Context, status entity.UserStatus) ([]entity.User, error) {
	return s.c.Filter(ctx, func(u entity.User) bool { return u.Status == status })
}

// CreateUnique appends u unless the email is taken. Because the check runs
// inside the compare-and-set cycle, two concurrent registrations of the same
// email cannot both succeed.
func (s *UserStore) CreateUnique(ctx context.Context, u entity.User) (entity.User, error) {
	_, err := s.c.Modify(ctx, func(users []entity.User) ([]entity.User, error) {
		for _, existing := range users {
			if existing.Email == u.Email {
				return nil, usecase.ErrEmailTaken
			}
		}
		return append(users, u), nil
	})
	if err != nil {
		return entity.User{}, err
	}
	return u, nil
}

// Update applies mutate to the user with id.
func (s *UserStore) Update(ctx context.Context, id string, mutate func(*entity.User)) (entity.User, bool, error) {
	return s.c.Update(ctx, id, mutate)
}

// Delete removes the user with id.
func (s *UserStore) Delete(ctx context.Context, id string) (bool, error) {
	return s.c.Delete(ctx, id)
}

// MarkPaid records a submitted payment on the user.
func (s *UserStore) MarkPaid(ctx context.Context, id string, method entity.PaymentMethod, proof string, now time.Time) (entity.User, bool, error) {
	return s.c.Update(ctx, id, func(u *entity.User) {
		u.PaymentStatus = entity.PaymentPaid
		u.PaymentMethod = method
		u.PaymentProof = proof
		u.UpdatedAt = now
	})
}

// ConfirmPayment activates the user after an admin confirmed the fee.
func (s *UserStore) ConfirmPayment(ctx context.Context, id string, now time.Time) (entity.User, bool, error) {
	return s.c.Update(ctx, id, func(u *entity.User) {
		u.Status = entity.StatusActive
		u.PaymentStatus = entity.PaymentConfirmed
		u.UpdatedAt = now
	})
}

// ResetPayment returns a paid user's payment state to pending after a
// rejected payment. Confirmed users are left alone.
func (s *UserStore) ResetPayment(ctx context.Context, id string, now time.Time) (entity.User, bool, error) {
	return s.c.Update(ctx, id, func(u *entity.User) {
		if u.PaymentStatus != entity.PaymentPaid {
			return
		}
		u.PaymentStatus = entity.PaymentPending
		u.UpdatedAt = now
	})
}
