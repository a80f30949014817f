// Package adapters provides the record store implementation of the
// application repository.
package adapters

import (
	"context"
	"time"

	"go.uber.org/zap"

	"jobboard_backend/internal/feature/applications/domain/entity"
	"jobboard_backend/internal/feature/applications/usecase"
	jobentity "jobboard_backend/internal/feature/jobs/domain/entity"
	"jobboard_backend/internal/platform/kv"
	"jobboard_backend/internal/platform/recordstore"
)

const ApplicationsKey = "applications"

// JobCounter adjusts a job's applications counter.
type JobCounter interface {
	AdjustApplications(ctx context.Context, id string, delta int) (jobentity.Job, bool, error)
}

// ApplicationStore keeps all applications in one collection and mirrors each
// new application into the job's counter.
type ApplicationStore struct {
	c    *recordstore.Collection[entity.Application]
	jobs JobCounter
	log  *zap.Logger
}

var _ usecase.ApplicationRepository = (*ApplicationStore)(nil)

// NewApplicationStore returns an application collection that keeps job counters in step through jobs.
func NewApplicationStore(store kv.Store, namespace string, jobs JobCounter, l *zap.Logger, opts ...recordstore.Option) *ApplicationStore {
	if l == nil {
		l = zap.NewNop()
	}
	return &ApplicationStore{
		c:    recordstore.NewCollection(store, namespace+ApplicationsKey, func(a entity.Application) string { return a.ID }, opts...),
		jobs: jobs,
		log:  l,
	}
}

// Collection exposes the underlying collection for seeding.
func (s *ApplicationStore) Collection() *recordstore.Collection[entity.Application] {
	return s.c
}

// All returns every application.
func (s *ApplicationStore) All(ctx context.Context) ([]entity.Application, error) {
	return s.c.All(ctx)
}

// ByUser returns the applications submitted by userID.
func (s *ApplicationStore) ByUser(ctx context.Context, userID string) ([]entity.Application, error) {
	return s.c.Filter(ctx, func(a entity.Application) bool { return a.UserID == userID })
}

// ByJob returns the applications for jobID.
func (s *ApplicationStore) ByJob(ctx context.Context, jobID string) ([]entity.Application, error) {
	return s.c.Filter(ctx, func(a entity.Application) bool { return a.JobID == jobID })
}

// HasApplied reports whether userID already applied to jobID.
func (s *ApplicationStore) HasApplied(ctx context.Context, userID, jobID string) (bool, error) {
	_, ok, err := s.c.Find(ctx, func(a entity.Application) bool {
		return a.UserID == userID && a.JobID == jobID
	})
	return ok, err
}

// Create appends a unless the user already applied to the job, then adds one
// to the job's applications counter. If the counter update fails the
// application is deleted again.
func (s *ApplicationStore) Create(ctx context.Context, a entity.Application) (entity.Application, error) {
	_, err := s.c.Modify(ctx, func(apps []entity.Application) ([]entity.Application, error) {
		for _, existing := range apps {
			if existing.UserID == a.UserID && existing.JobID == a.JobID {
				return nil, usecase.ErrAlreadyApplied
			}
		}
		return append(apps, a), nil
	})
	if err != nil {
		return entity.Application{}, err
	}

	_, ok, err := s.jobs.AdjustApplications(ctx, a.JobID, 1)
	if err == nil && !ok {
		err = usecase.ErrJobNotFound
	}
	if err != nil {
		return entity.Application{}, recordstore.Compensate(ctx, s.log, "create application", err, func(ctx context.Context) error {
			_, derr := s.c.Delete(ctx, a.ID)
			return derr
		})
	}
	return a, nil
}

// UpdateStatus sets the status of the application with id and stamps now.
func (s *ApplicationStore) UpdateStatus(ctx context.Context, id string, status entity.ApplicationStatus, now time.Time) (entity.Application, bool, error) {
	return s.c.Update(ctx, id, func(a *entity.Application) {
		a.Status = status
		a.UpdatedAt = now
	})
}

// CountByJob tallies stored applications per job id.
func (s *ApplicationStore) CountByJob(ctx context.Context) (map[string]int, error) {
	apps, err := s.c.All(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(apps))
	for _, a := range apps {
		counts[a.JobID]++
	}
	return counts, nil
}
