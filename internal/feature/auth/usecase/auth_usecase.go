// Package usecase implements the account lifecycle: registration, login,
// sessions, profile updates and the admin transitions on users.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"jobboard_backend/internal/feature/auth/domain/entity"
	"jobboard_backend/internal/platform/recordstore"
)

const (
	minPasswordLength = 8

	// dummyHash keeps the login timing the same whether or not the email exists.
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserRepository abstracts the persistence layer for user entities.
// Interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	All(ctx context.Context) ([]entity.User, error)
	Get(ctx context.Context, id string) (entity.User, bool, error)
	GetByEmail(ctx context.Context, email string) (entity.User, bool, error)
	ListByStatus(ctx context.Context, status entity.UserStatus) ([]entity.User, error)

	// CreateUnique stores u unless its email is already registered, in which
	// case it returns ErrEmailTaken. The check and the write are one
	// compare-and-set cycle.
	CreateUnique(ctx context.Context, u entity.User) (entity.User, error)

	Update(ctx context.Context, id string, mutate func(*entity.User)) (entity.User, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// SessionRepository stores one record per logged-in session.
type SessionRepository interface {
	Create(ctx context.Context, s entity.Session) error
	Get(ctx context.Context, id string) (entity.Session, bool, error)
	// Touch stamps LastValidatedAt. It reports false when the session is gone.
	Touch(ctx context.Context, id string, at time.Time) (bool, error)
	Delete(ctx context.Context, id string) error
}

// TokenGenerator issues signed access tokens.
type TokenGenerator interface {
	GenerateToken(userID, sessionID, role string) (string, error)
}

// Options tunes session lifetimes.
type Options struct {
	SessionTTL         time.Duration
	RevalidateInterval time.Duration
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Phone    string
}

// ProfileInput is what a user may change about themselves.
// Password is plaintext here and hashed before it is stored.
type ProfileInput struct {
	FullName *string
	Phone    *string
	Avatar   *string
	Password *string
}

// ClientMeta describes the caller of Login for the session record.
type ClientMeta struct {
	UserAgent string
	IPAddress string
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token   string
	Session entity.Session
	User    entity.User
}

// authUsecase implements the account lifecycle.
type authUsecase struct {
	users    UserRepository
	sessions SessionRepository
	tokens   TokenGenerator
	opts     Options
	now      func() time.Time
	log      *zap.Logger
}

// NewAuthUsecase creates a new authUsecase.
func NewAuthUsecase(users UserRepository, sessions SessionRepository, tokens TokenGenerator, opts Options, l *zap.Logger) *authUsecase {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	if l == nil {
		l = zap.NewNop()
	}
	return &authUsecase{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		opts:     opts,
		now:      time.Now,
		log:      l,
	}
}

// ValidatePassword checks the strength rules used at registration and on
// password change.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return ErrWeakPassword
	}
	return nil
}

// Register creates a pending user. It does not log the user in.
func (u *authUsecase) Register(ctx context.Context, in RegisterInput) (entity.User, error) {
	switch {
	case strings.TrimSpace(in.Email) == "":
		return entity.User{}, fmt.Errorf("%w: email", ErrMissingField)
	case in.Password == "":
		return entity.User{}, fmt.Errorf("%w: password", ErrMissingField)
	case strings.TrimSpace(in.FullName) == "":
		return entity.User{}, fmt.Errorf("%w: fullName", ErrMissingField)
	}
	if !emailPattern.MatchString(in.Email) {
		return entity.User{}, ErrInvalidEmail
	}
	// Checked before the password rules so a taken email is reported as such.
	// CreateUnique repeats the check atomically.
	if _, taken, err := u.users.GetByEmail(ctx, in.Email); err != nil {
		return entity.User{}, err
	} else if taken {
		return entity.User{}, ErrEmailTaken
	}
	if err := ValidatePassword(in.Password); err != nil {
		return entity.User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return entity.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := u.now().UTC()
	user := entity.User{
		ID:            recordstore.NewID("user-"),
		Email:         in.Email,
		PasswordHash:  string(hashed),
		FullName:      in.FullName,
		Phone:         in.Phone,
		Role:          entity.RoleUser,
		Status:        entity.StatusPending,
		PaymentStatus: entity.PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	created, err := u.users.CreateUnique(ctx, user)
	if err != nil {
		return entity.User{}, err
	}
	u.log.Info("user registered", zap.String("user_id", created.ID))
	return created, nil
}

// Login verifies the credentials and the account state, then opens a
// session and issues an access token for it.
// bcrypt runs even for unknown emails so response timing does not reveal
// which addresses are registered.
func (u *authUsecase) Login(ctx context.Context, email, password string, meta ClientMeta) (LoginResult, error) {
	user, found, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, err
	}

	passwordHash := dummyHash
	if found {
		passwordHash = user.PasswordHash
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if !found || compareErr != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	switch user.Status {
	case entity.StatusSuspended:
		return LoginResult{}, ErrAccountSuspended
	case entity.StatusPending:
		return LoginResult{}, ErrPaymentPending
	}

	now := u.now().UTC()
	session := entity.Session{
		ID:              recordstore.NewID("sess-"),
		UserID:          user.ID,
		UserAgent:       meta.UserAgent,
		IPAddress:       meta.IPAddress,
		CreatedAt:       now,
		LastValidatedAt: now,
		ExpiresAt:       now.Add(u.opts.SessionTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return LoginResult{}, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := u.tokens.GenerateToken(user.ID, session.ID, string(user.Role))
	if err != nil {
		// The session is useless without a token.
		if delErr := u.sessions.Delete(ctx, session.ID); delErr != nil {
			u.log.Warn("failed to drop session after token error", zap.String("session_id", session.ID), zap.Error(delErr))
		}
		return LoginResult{}, fmt.Errorf("failed to generate token: %w", err)
	}

	u.log.Info("user logged in", zap.String("user_id", user.ID), zap.String("session_id", session.ID))
	return LoginResult{Token: token, Session: session, User: user}, nil
}

// Logout clears the session. Logging out twice is not an error.
func (u *authUsecase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrNoSession
	}
	return u.sessions.Delete(ctx, sessionID)
}

// Authenticate resolves a session to its user, re-reading the user record on
// every call. A session whose user is gone, suspended or no longer active is
// cleared and ErrSessionInvalid is returned.
func (u *authUsecase) Authenticate(ctx context.Context, sessionID string) (entity.User, error) {
	if sessionID == "" {
		return entity.User{}, ErrNoSession
	}
	s, ok, err := u.sessions.Get(ctx, sessionID)
	if err != nil {
		return entity.User{}, err
	}
	if !ok {
		return entity.User{}, ErrSessionInvalid
	}

	now := u.now().UTC()
	if s.IsExpired(now) {
		return entity.User{}, u.invalidate(ctx, s, "expired")
	}

	user, found, err := u.users.Get(ctx, s.UserID)
	if err != nil {
		return entity.User{}, err
	}
	if !found {
		return entity.User{}, u.invalidate(ctx, s, "user deleted")
	}
	if !user.IsActive() {
		return entity.User{}, u.invalidate(ctx, s, "user "+string(user.Status))
	}

	if s.StaleAfter(u.opts.RevalidateInterval, now) {
		ok, err := u.sessions.Touch(ctx, s.ID, now)
		if err != nil {
			return entity.User{}, err
		}
		if !ok {
			return entity.User{}, ErrSessionInvalid
		}
	}
	return user, nil
}

func (u *authUsecase) invalidate(ctx context.Context, s entity.Session, reason string) error {
	if err := u.sessions.Delete(ctx, s.ID); err != nil {
		return err
	}
	u.log.Info("session invalidated", zap.String("session_id", s.ID), zap.String("user_id", s.UserID), zap.String("reason", reason))
	return ErrSessionInvalid
}

// UpdateProfile merges in into the authenticated user's record and returns
// the stored result.
func (u *authUsecase) UpdateProfile(ctx context.Context, sessionID string, in ProfileInput) (entity.User, error) {
	user, err := u.Authenticate(ctx, sessionID)
	if err != nil {
		return entity.User{}, err
	}

	patch := entity.UserPatch{FullName: in.FullName, Phone: in.Phone, Avatar: in.Avatar}
	if in.FullName != nil && strings.TrimSpace(*in.FullName) == "" {
		return entity.User{}, fmt.Errorf("%w: fullName", ErrMissingField)
	}
	if in.Password != nil {
		if err := ValidatePassword(*in.Password); err != nil {
			return entity.User{}, err
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return entity.User{}, fmt.Errorf("failed to hash password: %w", err)
		}
		h := string(hashed)
		patch.PasswordHash = &h
	}
	if patch.Empty() {
		return user, nil
	}

	now := u.now().UTC()
	updated, ok, err := u.users.Update(ctx, user.ID, func(cur *entity.User) {
		patch.Apply(cur, now)
	})
	if err != nil {
		return entity.User{}, err
	}
	if !ok {
		// Deleted between Authenticate and the write.
		return entity.User{}, ErrSessionInvalid
	}
	if _, err := u.sessions.Touch(ctx, sessionID, now); err != nil {
		return entity.User{}, err
	}
	return updated, nil
}

// ListUsers returns every user, or only those with the given status.
func (u *authUsecase) ListUsers(ctx context.Context, status entity.UserStatus) ([]entity.User, error) {
	if status == "" {
		return u.users.All(ctx)
	}
	return u.users.ListByStatus(ctx, status)
}

// ActivateUser makes a user active and marks the fee confirmed, bypassing
// the payment flow.
func (u *authUsecase) ActivateUser(ctx context.Context, id string) (entity.User, error) {
	now := u.now().UTC()
	return u.transition(ctx, id, func(cur *entity.User) {
		cur.Status = entity.StatusActive
		cur.PaymentStatus = entity.PaymentConfirmed
		cur.UpdatedAt = now
	})
}

// SuspendUser blocks a user from authenticating. Open sessions fail their
// next revalidation.
func (u *authUsecase) SuspendUser(ctx context.Context, adminID, id string) (entity.User, error) {
	if adminID == id {
		return entity.User{}, fmt.Errorf("%w: cannot suspend your own account", ErrInvalidInput)
	}
	now := u.now().UTC()
	return u.transition(ctx, id, func(cur *entity.User) {
		cur.Status = entity.StatusSuspended
		cur.UpdatedAt = now
	})
}

// DeleteUser removes a user record.
func (u *authUsecase) DeleteUser(ctx context.Context, adminID, id string) error {
	if adminID == id {
		return fmt.Errorf("%w: cannot delete your own account", ErrInvalidInput)
	}
	ok, err := u.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUserNotFound
	}
	u.log.Info("user deleted", zap.String("user_id", id), zap.String("admin_id", adminID))
	return nil
}

func (u *authUsecase) transition(ctx context.Context, id string, mutate func(*entity.User)) (entity.User, error) {
	updated, ok, err := u.users.Update(ctx, id, mutate)
	if err != nil {
		return entity.User{}, err
	}
	if !ok {
		return entity.User{}, ErrUserNotFound
	}
	u.log.Info("user status changed", zap.String("user_id", id), zap.String("status", string(updated.Status)))
	return updated, nil
}

// IsAuthError reports whether err means the caller must log in again.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrSessionInvalid) || errors.Is(err, ErrNoSession)
}
