// Package adapters provides the record store implementations of the jobs
// repositories.
package adapters

import (
	"context"
	"slices"
	"strings"

	"jobboard_backend/internal/feature/jobs/domain/entity"
	"jobboard_backend/internal/feature/jobs/usecase"
	"jobboard_backend/internal/platform/kv"
	"jobboard_backend/internal/platform/recordstore"
)

const JobsKey = "jobs"

// JobStore keeps all jobs in one collection.
type JobStore struct {
	c *recordstore.Collection[entity.Job]
}

var _ usecase.JobRepository = (*JobStore)(nil)

// NewJobStore returns a job collection stored under namespace.
func NewJobStore(store kv.Store, namespace string, opts ...recordstore.Option) *JobStore {
	return &JobStore{
		c: recordstore.NewCollection(store, namespace+JobsKey, func(j entity.Job) string { return j.ID }, opts...),
	}
}

// Collection exposes the underlying collection for seeding.
func (s *JobStore) Collection() *recordstore.Collection[entity.Job] {
	return s.c
}

// All returns every job.
func (s *JobStore) All(ctx context.Context) ([]entity.Job, error) {
	return s.c.All(ctx)
}

// Get returns the job with id.
func (s *JobStore) Get(ctx context.Context, id string) (entity.Job, bool, error) {
	return s.c.Get(ctx, id)
}

// Featured returns active jobs flagged as featured.
func (s *JobStore) Featured(ctx context.Context) ([]entity.Job, error) {
	return s.c.Filter(ctx, func(j entity.Job) bool { return j.IsActive() && j.Featured })
}

// ByCategory returns active jobs whose category equals category.
func (s *JobStore) ByCategory(ctx context.Context, category string) ([]entity.Job, error) {
	return s.c.Filter(ctx, func(j entity.Job) bool { return j.IsActive() && j.Category == category })
}

// Search returns active jobs matching every filter that is set.
func (s *JobStore) Search(ctx context.Context, f usecase.JobFilters) ([]entity.Job, error) {
	return s.c.Filter(ctx, func(j entity.Job) bool { return matches(j, f) })
}

// matches applies the search predicates in order: active status, keyword
// over title, company or any tag, location, category, type, then the salary
// bounds. Text matches are case-insensitive substring matches; category and
// type match exactly.
func matches(j entity.Job, f usecase.JobFilters) bool {
	if !j.IsActive() {
		return false
	}
	if f.Keyword != "" {
		kw := strings.ToLower(f.Keyword)
		hit := strings.Contains(strings.ToLower(j.Title), kw) ||
			strings.Contains(strings.ToLower(j.Company), kw) ||
			slices.ContainsFunc(j.Tags, func(tag string) bool {
				return strings.Contains(strings.ToLower(tag), kw)
			})
		if !hit {
			return false
		}
	}
	if f.Location != "" && !strings.Contains(strings.ToLower(j.Location), strings.ToLower(f.Location)) {
		return false
	}
	if f.Category != "" && j.Category != f.Category {
		return false
	}
	if f.Type != "" && j.Type != f.Type {
		return false
	}
	if f.SalaryMin != nil && j.Salary.Max < *f.SalaryMin {
		return false
	}
	if f.SalaryMax != nil && j.Salary.Min > *f.SalaryMax {
		return false
	}
	return true
}

// Create appends j.
func (s *JobStore) Create(ctx context.Context, j entity.Job) (entity.Job, error) {
	return s.c.Create(ctx, j)
}

// Update applies mutate to the job with id.
func (s *JobStore) Update(ctx context.Context, id string, mutate func(*entity.Job)) (entity.Job, bool, error) {
	return s.c.Update(ctx, id, mutate)
}

// Delete removes the job with id.
func (s *JobStore) Delete(ctx context.Context, id string) (bool, error) {
	return s.c.Delete(ctx, id)
}

// IncrementViews adds one view inside a single compare-and-set cycle, so
// concurrent views are all counted.
func (s *JobStore) IncrementViews(ctx context.Context, id string) (entity.Job, bool, error) {
	return s.c.Update(ctx, id, func(j *entity.Job) { j.Views++ })
}

// AdjustApplications adds delta to the job's applications counter, never
// going below zero.
func (s *JobStore) AdjustApplications(ctx context.Context, id string, delta int) (entity.Job, bool, error) {
	return s.c.Update(ctx, id, func(j *entity.Job) {
		j.Applications = max(0, j.Applications+delta)
	})
}

// SetApplicationCounts overwrites each job's applications counter from counts.
func (s *JobStore) SetApplicationCounts(ctx context.Context, counts map[string]int) (int, error) {
	var changed int
	_, err := s.c.Modify(ctx, func(jobs []entity.Job) ([]entity.Job, error) {
		changed = 0
		for i := range jobs {
			if n := counts[jobs[i].ID]; jobs[i].Applications != n {
				jobs[i].Applications = n
				changed++
			}
		}
		return jobs, nil
	})
	return changed, err
}
