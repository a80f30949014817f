// Package usecase implements job browsing and the admin catalog operations.
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"jobboard_backend/internal/feature/jobs/domain/entity"
	"jobboard_backend/internal/platform/recordstore"
)

const (
	// DefaultFeaturedLimit is how many featured jobs the landing page shows.
	DefaultFeaturedLimit = 6
	// DefaultJobLifetime is used when a new job has no expiry.
	DefaultJobLifetime = 30 * 24 * time.Hour
)

// JobDetail is a job together with the company record matching its name.
type JobDetail struct {
	Job     entity.Job
	Company *entity.Company
}

type jobUsecase struct {
	jobs      JobRepository
	companies CompanyRepository
	tally     ApplicationTally
	now       func() time.Time
	log       *zap.Logger
}

// NewJobUsecase creates a new jobUsecase. tally may be nil, in which case
// ReconcileApplicationCounts is unavailable.
func NewJobUsecase(jobs JobRepository, companies CompanyRepository, tally ApplicationTally, l *zap.Logger) *jobUsecase {
	if l == nil {
		l = zap.NewNop()
	}
	return &jobUsecase{jobs: jobs, companies: companies, tally: tally, now: time.Now, log: l}
}

// Featured returns up to limit active featured jobs. A non-positive limit
// uses DefaultFeaturedLimit.
func (u *jobUsecase) Featured(ctx context.Context, limit int) ([]entity.Job, error) {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	jobs, err := u.jobs.Featured(ctx)
	if err != nil {
		return nil, err
	}
	if len(jobs) > limit {
		jobs = jobs[:limit]
	}
	return jobs, nil
}

// ByCategory returns active jobs in the given category.
func (u *jobUsecase) ByCategory(ctx context.Context, category string) ([]entity.Job, error) {
	return u.jobs.ByCategory(ctx, category)
}

// Search validates f and returns the matching active jobs.
func (u *jobUsecase) Search(ctx context.Context, f JobFilters) ([]entity.Job, error) {
	if f.Type != "" && !f.Type.Valid() {
		return nil, fmt.Errorf("%w: type", ErrInvalidInput)
	}
	if f.SalaryMin != nil && f.SalaryMax != nil && *f.SalaryMin > *f.SalaryMax {
		return nil, fmt.Errorf("%w: salaryMin exceeds salaryMax", ErrInvalidInput)
	}
	return u.jobs.Search(ctx, f)
}

// List returns every job regardless of status.
func (u *jobUsecase) List(ctx context.Context) ([]entity.Job, error) {
	return u.jobs.All(ctx)
}

// Detail counts a view and returns the job with its company, if one with
// the same name exists.
func (u *jobUsecase) Detail(ctx context.Context, id string) (JobDetail, error) {
	j, ok, err := u.jobs.IncrementViews(ctx, id)
	if err != nil {
		return JobDetail{}, err
	}
	if !ok {
		return JobDetail{}, ErrJobNotFound
	}
	d := JobDetail{Job: j}
	c, found, err := u.companies.GetByName(ctx, j.Company)
	if err != nil {
		return JobDetail{}, err
	}
	if found {
		d.Company = &c
	}
	return d, nil
}

// Get returns a job without counting a view.
func (u *jobUsecase) Get(ctx context.Context, id string) (entity.Job, error) {
	j, ok, err := u.jobs.Get(ctx, id)
	if err != nil {
		return entity.Job{}, err
	}
	if !ok {
		return entity.Job{}, ErrJobNotFound
	}
	return j, nil
}

func validateJob(j entity.Job) error {
	switch {
	case strings.TrimSpace(j.Title) == "":
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	case strings.TrimSpace(j.Company) == "":
		return fmt.Errorf("%w: company is required", ErrInvalidInput)
	case !j.Type.Valid():
		return fmt.Errorf("%w: type", ErrInvalidInput)
	case !j.Status.Valid():
		return fmt.Errorf("%w: status", ErrInvalidInput)
	case j.Salary.Period != "" && !j.Salary.Period.Valid():
		return fmt.Errorf("%w: salary.period", ErrInvalidInput)
	case j.Salary.Min < 0 || j.Salary.Max < j.Salary.Min:
		return fmt.Errorf("%w: salary range", ErrInvalidInput)
	}
	return nil
}

// CreateJob stores a new posting by postedBy. Counters start at zero and a
// missing status defaults to active.
func (u *jobUsecase) CreateJob(ctx context.Context, postedBy string, j entity.Job) (entity.Job, error) {
	if j.Status == "" {
		j.Status = entity.JobActive
	}
	if err := validateJob(j); err != nil {
		return entity.Job{}, err
	}
	now := u.now().UTC()
	j.ID = recordstore.NewID("job-")
	j.PostedBy = postedBy
	j.Views, j.Applications = 0, 0
	j.CreatedAt, j.UpdatedAt = now, now
	if j.ExpiresAt.IsZero() {
		j.ExpiresAt = now.Add(DefaultJobLifetime)
	}
	for _, s := range []*[]string{&j.Requirements, &j.Responsibilities, &j.Benefits, &j.Tags} {
		if *s == nil {
			*s = []string{}
		}
	}

	created, err := u.jobs.Create(ctx, j)
	if err != nil {
		return entity.Job{}, err
	}
	u.log.Info("job created", zap.String("job_id", created.ID), zap.String("posted_by", postedBy))
	return created, nil
}

// UpdateJob merges p into the job. The merged record is validated against a
// snapshot first, so a rejected patch never reaches the store.
func (u *jobUsecase) UpdateJob(ctx context.Context, id string, p entity.JobPatch) (entity.Job, error) {
	now := u.now().UTC()
	cur, ok, err := u.jobs.Get(ctx, id)
	if err != nil {
		return entity.Job{}, err
	}
	if !ok {
		return entity.Job{}, ErrJobNotFound
	}
	p.Apply(&cur, now)
	if err := validateJob(cur); err != nil {
		return entity.Job{}, err
	}

	// The record may have moved since the snapshot; recheck on the fresh copy.
	var invalid error
	updated, ok, err := u.jobs.Update(ctx, id, func(j *entity.Job) {
		next := *j
		p.Apply(&next, now)
		if invalid = validateJob(next); invalid == nil {
			*j = next
		}
	})
	if err != nil {
		return entity.Job{}, err
	}
	if !ok {
		return entity.Job{}, ErrJobNotFound
	}
	if invalid != nil {
		return entity.Job{}, invalid
	}
	return updated, nil
}

// DeleteJob removes the job or returns ErrJobNotFound.
func (u *jobUsecase) DeleteJob(ctx context.Context, id string) error {
	ok, err := u.jobs.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrJobNotFound
	}
	u.log.Info("job deleted", zap.String("job_id", id))
	return nil
}

// ReconcileApplicationCounts recomputes every job's applications counter from
// the stored applications and returns how many jobs were corrected.
func (u *jobUsecase) ReconcileApplicationCounts(ctx context.Context) (int, error) {
	if u.tally == nil {
		return 0, fmt.Errorf("%w: no application source configured", ErrInvalidInput)
	}
	counts, err := u.tally.CountByJob(ctx)
	if err != nil {
		return 0, err
	}
	changed, err := u.jobs.SetApplicationCounts(ctx, counts)
	if err != nil {
		return 0, err
	}
	u.log.Info("application counters reconciled", zap.Int("jobs_changed", changed))
	return changed, nil
}
