// Package usecase implements applying to jobs and the admin review flow.
package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"jobboard_backend/internal/feature/applications/domain/entity"
	authentity "jobboard_backend/internal/feature/auth/domain/entity"
	jobentity "jobboard_backend/internal/feature/jobs/domain/entity"
	"jobboard_backend/internal/platform/recordstore"
)

// ApplicationRepository abstracts the persistence layer for applications.
// Interfaces are defined by the consumer (usecase), not the provider (adapters).
type ApplicationRepository interface {
	All(ctx context.Context) ([]entity.Application, error)
	ByUser(ctx context.Context, userID string) ([]entity.Application, error)
	ByJob(ctx context.Context, jobID string) ([]entity.Application, error)
	HasApplied(ctx context.Context, userID, jobID string) (bool, error)
	// Create stores a and bumps the job's applications counter. It returns
	// ErrAlreadyApplied when the user already applied to the job.
	Create(ctx context.Context, a entity.Application) (entity.Application, error)
	UpdateStatus(ctx context.Context, id string, status entity.ApplicationStatus, now time.Time) (entity.Application, bool, error)
}

type UserReader interface {
	Get(ctx context.Context, id string) (authentity.User, bool, error)
}

type JobReader interface {
	Get(ctx context.Context, id string) (jobentity.Job, bool, error)
}

// ApplyInput is what the applicant submits.
type ApplyInput struct {
	Resume      string
	CoverLetter string
}

type applicationUsecase struct {
	apps  ApplicationRepository
	users UserReader
	jobs  JobReader
	now   func() time.Time
	log   *zap.Logger
}

// NewApplicationUsecase returns an application usecase that checks users and jobs.
func NewApplicationUsecase(apps ApplicationRepository, users UserReader, jobs JobReader, l *zap.Logger) *applicationUsecase {
	if l == nil {
		l = zap.NewNop()
	}
	return &applicationUsecase{apps: apps, users: users, jobs: jobs, now: time.Now, log: l}
}

// Apply records an application of userID to jobID. The user must be active
// and the job must exist and be active.
func (u *applicationUsecase) Apply(ctx context.Context, userID, jobID string, in ApplyInput) (entity.Application, error) {
	user, ok, err := u.users.Get(ctx, userID)
	if err != nil {
		return entity.Application{}, err
	}
	if !ok || !user.IsActive() {
		return entity.Application{}, ErrAccountNotActive
	}

	job, ok, err := u.jobs.Get(ctx, jobID)
	if err != nil {
		return entity.Application{}, err
	}
	if !ok {
		return entity.Application{}, ErrJobNotFound
	}
	if !job.IsActive() {
		return entity.Application{}, ErrJobClosed
	}

	now := u.now().UTC()
	a, err := u.apps.Create(ctx, entity.Application{
		ID:          recordstore.NewID("app-"),
		JobID:       jobID,
		UserID:      userID,
		Resume:      in.Resume,
		CoverLetter: in.CoverLetter,
		Status:      entity.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return entity.Application{}, err
	}
	u.log.Info("application submitted",
		zap.String("application_id", a.ID),
		zap.String("job_id", jobID),
		zap.String("user_id", userID),
	)
	return a, nil
}

// ByUser returns the applications submitted by userID.
func (u *applicationUsecase) ByUser(ctx context.Context, userID string) ([]entity.Application, error) {
	return u.apps.ByUser(ctx, userID)
}

// ByJob returns the applications for jobID.
func (u *applicationUsecase) ByJob(ctx context.Context, jobID string) ([]entity.Application, error) {
	return u.apps.ByJob(ctx, jobID)
}

// HasApplied reports whether userID already applied to jobID.
func (u *applicationUsecase) HasApplied(ctx context.Context, userID, jobID string) (bool, error) {
	return u.apps.HasApplied(ctx, userID, jobID)
}

// All returns every application.
func (u *applicationUsecase) All(ctx context.Context) ([]entity.Application, error) {
	return u.apps.All(ctx)
}

// SetStatus moves an application through the review states.
func (u *applicationUsecase) SetStatus(ctx context.Context, id string, status entity.ApplicationStatus) (entity.Application, error) {
	if !status.Valid() {
		return entity.Application{}, fmt.Errorf("%w: status %q", ErrInvalidInput, status)
	}
	a, ok, err := u.apps.UpdateStatus(ctx, id, status, u.now().UTC())
	if err != nil {
		return entity.Application{}, err
	}
	if !ok {
		return entity.Application{}, ErrApplicationNotFound
	}
	return a, nil
}
