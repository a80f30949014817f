package adapters

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard_backend/internal/feature/jobs/domain/entity"
	"jobboard_backend/internal/feature/jobs/usecase"
	"jobboard_backend/internal/platform/kv"
	"jobboard_backend/internal/platform/recordstore"
)

const testNamespace = "cft_jobs_"

func sampleJobs() []entity.Job {
	return []entity.Job{
		{
			ID: "job-001", Title: "Senior Frontend Developer", Company: "TechCorp Solutions", Location: "San Francisco, CA",
			Type: entity.TypeFullTime, Category: "Technology", Tags: []string{"React", "TypeScript"},
			Salary: entity.Salary{Min: 120000, Max: 160000, Currency: "USD", Period: entity.PeriodYear},
			Status: entity.JobActive, Featured: true, Applications: 3,
		},
		{
			ID: "job-003", Title: "Marketing Manager", Company: "GrowthLabs", Location: "Austin, TX",
			Type: entity.TypeFullTime, Category: "Marketing", Tags: []string{"Digital", "Growth"},
			Salary: entity.Salary{Min: 85000, Max: 110000, Currency: "USD", Period: entity.PeriodYear},
			Status: entity.JobActive,
		},
		{
			ID: "job-009", Title: "Frontend Intern", Company: "Closed Co", Location: "Remote",
			Type: entity.TypeInternship, Category: "Technology", Tags: []string{"React"},
			Status: entity.JobClosed, Featured: true,
		},
	}
}

func newSeededJobStore(t *testing.T) *JobStore {
	t.Helper()
	s := NewJobStore(kv.NewMemoryStore(), testNamespace)
	ok, err := s.Collection().Seed(context.Background(), sampleJobs())
	require.NoError(t, err)
	require.True(t, ok)
	return s
}

func ids(jobs []entity.Job) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func TestJobStore_Search(t *testing.T) {
	s := newSeededJobStore(t)
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name    string
		filters usecase.JobFilters
		want    []string
	}{
		{"keyword matches title case-insensitively", usecase.JobFilters{Keyword: "frontend"}, []string{"job-001"}},
		{"category exact", usecase.JobFilters{Category: "Marketing"}, []string{"job-003"}},
		{"no match", usecase.JobFilters{Keyword: "zzz-no-match"}, []string{}},
		{"no filters returns active only", usecase.JobFilters{}, []string{"job-001", "job-003"}},
		{"keyword matches company", usecase.JobFilters{Keyword: "growthlabs"}, []string{"job-003"}},
		{"keyword matches tag", usecase.JobFilters{Keyword: "typescript"}, []string{"job-001"}},
		{"location containment", usecase.JobFilters{Location: "austin"}, []string{"job-003"}},
		{"category is case sensitive", usecase.JobFilters{Category: "marketing"}, []string{}},
		{"type", usecase.JobFilters{Type: entity.TypeInternship}, []string{}},
		{"salary floor compares against max", usecase.JobFilters{SalaryMin: f(150000)}, []string{"job-001"}},
		{"salary ceiling compares against min", usecase.JobFilters{SalaryMax: f(100000)}, []string{"job-003"}},
		{"filters are conjunctive", usecase.JobFilters{Keyword: "frontend", Category: "Marketing"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Search(context.Background(), tt.filters)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestJobStore_FeaturedAndByCategory(t *testing.T) {
	s := newSeededJobStore(t)
	ctx := context.Background()

	featured, err := s.Featured(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"job-001"}, ids(featured), "closed jobs are never featured")

	tech, err := s.ByCategory(ctx, "Technology")
	require.NoError(t, err)
	assert.Equal(t, []string{"job-001"}, ids(tech))
}

func TestJobStore_IncrementViewsConcurrently(t *testing.T) {
	s := NewJobStore(kv.NewMemoryStore(), testNamespace, recordstore.WithMaxRetries(100))
	ctx := context.Background()
	_, err := s.Create(ctx, entity.Job{ID: "job-1", Status: entity.JobActive})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := s.IncrementViews(ctx, "job-1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	j, ok, err := s.Get(ctx, "job-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 25, j.Views)

	_, ok, err = s.IncrementViews(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestJobStore_ApplicationCounters(t *testing.T) {
	s := newSeededJobStore(t)
	ctx := context.Background()

	j, ok, err := s.AdjustApplications(ctx, "job-001", 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 4, j.Applications)

	j, _, err = s.AdjustApplications(ctx, "job-003", -5)
	require.NoError(t, err)
	assert.Equal(t, 0, j.Applications, "clamped at zero")

	changed, err := s.SetApplicationCounts(ctx, map[string]int{"job-001": 2})
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	j, _, err = s.Get(ctx, "job-001")
	require.NoError(t, err)
	assert.Equal(t, 2, j.Applications)
}
