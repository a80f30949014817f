package usecase

import (
	"context"

	"jobboard_backend/internal/feature/jobs/domain/entity"
)

// JobFilters narrows a job search. Empty strings and nil bounds skip their
// predicate.
type JobFilters struct {
	Keyword   string
	Location  string
	Category  string
	Type      entity.JobType
	SalaryMin *float64
	SalaryMax *float64
}

// JobRepository abstracts the persistence layer for jobs.
// Interfaces are defined by the consumer (usecase), not the provider (adapters).
type JobRepository interface {
	All(ctx context.Context) ([]entity.Job, error)
	Get(ctx context.Context, id string) (entity.Job, bool, error)
	Featured(ctx context.Context) ([]entity.Job, error)
	ByCategory(ctx context.Context, category string) ([]entity.Job, error)
	Search(ctx context.Context, f JobFilters) ([]entity.Job, error)
	Create(ctx context.Context, j entity.Job) (entity.Job, error)
	Update(ctx context.Context, id string, mutate func(*entity.Job)) (entity.Job, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	IncrementViews(ctx context.Context, id string) (entity.Job, bool, error)
	// SetApplicationCounts overwrites the applications counter of every job
	// and returns how many jobs changed.
	SetApplicationCounts(ctx context.Context, counts map[string]int) (int, error)
}

type CategoryRepository interface {
	All(ctx context.Context) ([]entity.Category, error)
	GetByName(ctx context.Context, name string) (entity.Category, bool, error)
	Create(ctx context.Context, c entity.Category) (entity.Category, error)
	Update(ctx context.Context, id string, mutate func(*entity.Category)) (entity.Category, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	// UpdateJobCount adds delta to the named category's count, clamping at zero.
	UpdateJobCount(ctx context.Context, name string, delta int) (entity.Category, bool, error)
}

type CompanyRepository interface {
	All(ctx context.Context) ([]entity.Company, error)
	Get(ctx context.Context, id string) (entity.Company, bool, error)
	GetByName(ctx context.Context, name string) (entity.Company, bool, error)
	Create(ctx context.Context, c entity.Company) (entity.Company, error)
	Update(ctx context.Context, id string, mutate func(*entity.Company)) (entity.Company, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type StatsRepository interface {
	// Get returns zero stats when none are stored.
	Get(ctx context.Context) (entity.Stats, error)
	Update(ctx context.Context, p entity.StatsPatch) (entity.Stats, error)
	Increment(ctx context.Context, key entity.StatKey, delta int) (entity.Stats, error)
}

// ApplicationTally counts stored applications per job id.
type ApplicationTally interface {
	CountByJob(ctx context.Context) (map[string]int, error)
}
